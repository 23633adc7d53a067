package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/auth"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/services"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// BulkResponse is returned by PUT /settings/bulk.
// @Description Result of a bulk settings write.
type BulkResponse struct {
	Updated int                    `json:"updated" example:"3"`
	Changes []models.SettingChange `json:"changes"`
}

// Handler serves the settings endpoints.
type Handler struct {
	module *Module
	logger *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(m *Module, logger *zap.Logger) *Handler {
	return &Handler{module: m, logger: logger}
}

// Routes returns the settings routes, relative to /api/v1/settings.
func (h *Handler) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: h.handleList},
		{Method: "PUT", Path: "/bulk", Handler: h.handleBulkUpsert},
		{Method: "GET", Path: "/audit", Handler: h.handleAudit},
		{Method: "GET", Path: "/theme.css", Handler: h.handleThemeCSS},
		{Method: "GET", Path: "/{key}", Handler: h.handleGet},
	}
}

// handleList returns every persisted setting.
//
//	@Summary		List settings
//	@Description	Get every persisted key/value setting. Public; the storefront reads its theme from here.
//	@Tags			settings
//	@Produce		json
//	@Success		200	{array}		models.Setting
//	@Failure		500	{object}	models.APIProblem
//	@Router			/settings [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.module.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGet returns one setting.
//
//	@Summary		Get setting
//	@Tags			settings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			key	path		string	true	"Setting key"
//	@Success		200	{object}	models.Setting
//	@Failure		404	{object}	models.APIProblem
//	@Router			/settings/{key} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	s, err := h.module.Repository().Get(r.Context(), key)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "setting not found: "+key)
		return
	}
	if err != nil {
		h.logger.Error("failed to get setting", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get setting")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// handleBulkUpsert writes an array of settings in one transaction.
//
//	@Summary		Bulk upsert settings
//	@Description	Insert or update every given key/value pair atomically.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		[]models.Setting	true	"Settings to write"
//	@Success		200		{object}	BulkResponse
//	@Failure		400		{object}	models.APIProblem
//	@Failure		500		{object}	models.APIProblem
//	@Router			/settings/bulk [put]
func (h *Handler) handleBulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req []models.Setting
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected an array of {key, value}")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "no settings to write")
		return
	}

	changes, err := h.module.Save(r.Context(), actorFrom(r), r.Header.Get(HeaderStudioSession), req)
	if errors.Is(err, services.ErrInvalidKey) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("bulk upsert failed", zap.Int("count", len(req)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	if changes == nil {
		changes = []models.SettingChange{}
	}
	writeJSON(w, http.StatusOK, BulkResponse{Updated: len(req), Changes: changes})
}

// handleAudit returns the most recent settings changes.
//
//	@Summary		Settings audit log
//	@Tags			settings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Max entries"	default(50)
//	@Success		200		{array}		models.SettingChange
//	@Failure		400		{object}	models.APIProblem
//	@Router			/settings/audit [get]
func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	entries, err := h.module.Repository().Audit(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list audit log", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list audit log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleThemeCSS renders the persisted theme as a stylesheet.
//
//	@Summary		Theme stylesheet
//	@Description	CSS custom properties for the persisted theme followed by the custom CSS block.
//	@Tags			settings
//	@Produce		text/css
//	@Success		200	{string}	string
//	@Router			/settings/theme.css [get]
func (h *Handler) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	list, err := h.module.List(r.Context())
	if err != nil {
		// The storefront still needs a usable stylesheet.
		h.logger.Warn("settings fetch failed, rendering default theme", zap.Error(err))
		list = nil
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(theme.RenderCSS(list)))
}

// HeaderStudioSession tags a write with the studio session that made it.
const HeaderStudioSession = "X-Studio-Session"

func actorFrom(r *http.Request) string {
	if c := auth.UserFromContext(r.Context()); c != nil && c.Username != "" {
		return c.Username
	}
	return "system"
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an RFC 7807 problem response.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://forzashop.id/problems/settings-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

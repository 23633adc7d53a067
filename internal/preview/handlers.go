package preview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"go.uber.org/zap"
)

const maxBodyBytes = 256 << 10

// RenderRequest selects a template and its values. Theme overrides the
// persisted tokens, which lets the studio preview an unsaved draft.
type RenderRequest struct {
	Type   string         `json:"type" example:"order_confirmation"`
	Values map[string]any `json:"values"`
	Theme  theme.Tokens   `json:"theme,omitempty"`
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/templates", Handler: m.handleTemplates},
		{Method: "POST", Path: "/render", Handler: m.handleRender},
	}
}

// handleTemplates lists renderable templates with sample values.
//
//	@Summary		List preview templates
//	@Tags			preview
//	@Produce		json
//	@Success		200	{array}	Template
//	@Router			/preview/templates [get]
func (m *Module) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.renderer.Templates())
}

// handleRender renders a template to HTML for iframe display.
//
//	@Summary		Render preview
//	@Description	Renders {type, values} with the current theme. Optional theme tokens override the persisted ones.
//	@Tags			preview
//	@Accept			json
//	@Produce		html
//	@Security		BearerAuth
//	@Param			request	body		RenderRequest	true	"Template and values"
//	@Success		200		{string}	string			"Rendered HTML"
//	@Failure		400		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Router			/preview/render [post]
func (m *Module) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	html, err := m.renderer.Render(req.Type, req.Values, m.Tokens(r.Context(), req.Theme))
	if err != nil {
		if errors.Is(err, ErrUnknownTemplate) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		m.logger.Warn("preview render failed", zap.String("type", req.Type), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; img-src * data:; style-src 'unsafe-inline'; font-src *")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an RFC 7807 problem detail response.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://forzashop.id/problems/preview-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

package studio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/auth"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/ws"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"go.uber.org/zap"
)

const maxBodyBytes = 256 << 10

// ChangeRequest sets one token, or several at once via Tokens.
type ChangeRequest struct {
	Key    string       `json:"key,omitempty" example:"theme_accent_color"`
	Value  string       `json:"value" example:"#111111"`
	Tokens theme.Tokens `json:"tokens,omitempty"`
}

// PresetRequest names the preset to apply.
type PresetRequest struct {
	Name string `json:"name" example:"midnight"`
}

// StepResponse is returned by undo and redo.
type StepResponse struct {
	Moved bool        `json:"moved"`
	State theme.State `json:"state"`
}

// SaveResponse is returned by save.
type SaveResponse struct {
	Saved int         `json:"saved" example:"1"`
	State theme.State `json:"state"`
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/presets", Handler: m.handleListPresets},
		{Method: "GET", Path: "/sessions", Handler: m.handleListSessions},
		{Method: "POST", Path: "/sessions", Handler: m.handleCreateSession},
		{Method: "GET", Path: "/sessions/{id}", Handler: m.handleGetSession},
		{Method: "DELETE", Path: "/sessions/{id}", Handler: m.handleCloseSession},
		{Method: "PATCH", Path: "/sessions/{id}/tokens", Handler: m.handleChange},
		{Method: "POST", Path: "/sessions/{id}/undo", Handler: m.handleUndo},
		{Method: "POST", Path: "/sessions/{id}/redo", Handler: m.handleRedo},
		{Method: "POST", Path: "/sessions/{id}/preset", Handler: m.handleApplyPreset},
		{Method: "POST", Path: "/sessions/{id}/save", Handler: m.handleSave},
		{Method: "GET", Path: "/sessions/{id}/css", Handler: m.handleCSS},
		{Method: "GET", Path: "/sessions/{id}/preview", Handler: m.handlePreview},
	}
}

// handleListPresets returns the preset catalog.
//
//	@Summary		List theme presets
//	@Tags			studio
//	@Produce		json
//	@Success		200	{array}	theme.Preset
//	@Router			/studio/presets [get]
func (m *Module) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.catalog.List())
}

// handleListSessions returns every open session.
//
//	@Summary		List studio sessions
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	Info
//	@Router			/studio/sessions [get]
func (m *Module) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := m.manager.List()
	out := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Info())
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateSession opens an editor over the persisted theme.
//
//	@Summary		Open studio session
//	@Description	Loads the persisted settings, merges them over the defaults and opens an editor.
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Info
//	@Failure		429	{object}	models.APIProblem
//	@Router			/studio/sessions [post]
func (m *Module) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	actor := "system"
	if c := auth.UserFromContext(r.Context()); c != nil {
		actor = c.Username
	}
	s, err := m.manager.Create(r.Context(), actor)
	if errors.Is(err, ErrTooManySessions) {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	if err != nil {
		m.logger.Error("failed to open studio session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	w.Header().Set("Location", "/api/v1/studio/sessions/"+s.ID)
	writeJSON(w, http.StatusCreated, s.Info())
}

// handleGetSession returns the draft, dirty keys, history position and save status.
//
//	@Summary		Get studio session
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	Info
//	@Failure		404	{object}	models.APIProblem
//	@Router			/studio/sessions/{id} [get]
func (m *Module) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Info())
}

// handleCloseSession discards a session and its unsaved changes.
//
//	@Summary		Close studio session
//	@Tags			studio
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	models.APIProblem
//	@Router			/studio/sessions/{id} [delete]
func (m *Module) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := m.manager.Close(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleChange updates draft tokens.
//
//	@Summary		Change tokens
//	@Description	Applies the change to the draft and previews at once; history records it after the debounce window.
//	@Tags			studio
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Session ID"
//	@Param			request	body		ChangeRequest	true	"Token change"
//	@Success		200		{object}	theme.State
//	@Failure		400		{object}	models.APIProblem
//	@Failure		404		{object}	models.APIProblem
//	@Router			/studio/sessions/{id}/tokens [patch]
func (m *Module) handleChange(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	var req ChangeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Key == "" && len(req.Tokens) == 0 {
		writeError(w, http.StatusBadRequest, "key or tokens is required")
		return
	}

	var err error
	if req.Key != "" {
		err = s.editor.Change(req.Key, req.Value)
	}
	for _, k := range req.Tokens.Keys() {
		if err != nil {
			break
		}
		err = s.editor.Change(k, req.Tokens[k])
	}
	if err != nil {
		writeError(w, http.StatusGone, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.editor.State())
}

// handleUndo steps the draft back one history entry.
//
//	@Summary		Undo
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	StepResponse
//	@Router			/studio/sessions/{id}/undo [post]
func (m *Module) handleUndo(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	moved := s.editor.Undo()
	writeJSON(w, http.StatusOK, StepResponse{Moved: moved, State: s.editor.State()})
}

// handleRedo steps the draft forward one history entry.
//
//	@Summary		Redo
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	StepResponse
//	@Router			/studio/sessions/{id}/redo [post]
func (m *Module) handleRedo(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	moved := s.editor.Redo()
	writeJSON(w, http.StatusOK, StepResponse{Moved: moved, State: s.editor.State()})
}

// handleApplyPreset merges a preset over the draft, keeping content keys.
//
//	@Summary		Apply preset
//	@Tags			studio
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Session ID"
//	@Param			request	body		PresetRequest	true	"Preset name"
//	@Success		200		{object}	theme.State
//	@Failure		404		{object}	models.APIProblem
//	@Router			/studio/sessions/{id}/preset [post]
func (m *Module) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	var req PresetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "preset name is required")
		return
	}
	p, err := m.catalog.Get(req.Name)
	if errors.Is(err, theme.ErrPresetNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.editor.ApplyPreset(p); err != nil {
		writeError(w, http.StatusGone, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.editor.State())
}

// handleSave persists the dirty keys in one bulk write.
//
//	@Summary		Save theme
//	@Description	Uploads exactly the keys whose draft value differs from the last saved value.
//	@Tags			studio
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SaveResponse
//	@Failure		409	{object}	models.APIProblem
//	@Failure		500	{object}	models.APIProblem
//	@Router			/studio/sessions/{id}/save [post]
func (m *Module) handleSave(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.Context(), cancel)
	defer stop()

	n, err := s.editor.Save(ctx)
	switch {
	case errors.Is(err, theme.ErrNoChanges):
		saveResults.WithLabelValues("noop").Inc()
	case errors.Is(err, theme.ErrSaveInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, theme.ErrClosed):
		writeError(w, http.StatusGone, err.Error())
		return
	case err != nil:
		saveResults.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	default:
		saveResults.WithLabelValues("ok").Inc()
	}
	writeJSON(w, http.StatusOK, SaveResponse{Saved: n, State: s.editor.State()})
}

// handleCSS renders the session's draft as a stylesheet.
//
//	@Summary		Draft stylesheet
//	@Tags			studio
//	@Produce		text/css
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{string}	string
//	@Router			/studio/sessions/{id}/css [get]
func (m *Module) handleCSS(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.editor.CSS()))
}

// handlePreview attaches a storefront preview frame to the session.
//
//	@Summary		Preview WebSocket
//	@Description	THEME_PREVIEW messages flow both ways. Authenticate with the token query parameter.
//	@Tags			studio
//	@Param			id		path	string	true	"Session ID"
//	@Param			token	query	string	true	"Access token"
//	@Success		101
//	@Failure		403	{string}	string	"origin not allowed"
//	@Router			/studio/sessions/{id}/preview [get]
func (m *Module) handlePreview(w http.ResponseWriter, r *http.Request) {
	s, ok := m.session(w, r)
	if !ok {
		return
	}
	previewFrames.Inc()
	defer previewFrames.Dec()

	ws.ServePreview(w, r, s.hub, ws.PreviewOptions{
		SiteOrigin: m.cfg.SiteOrigin,
		Initial:    s.editor.Draft,
		OnMessage: func(t theme.Tokens) {
			if err := s.editor.ApplyRemote(t); err != nil {
				m.logger.Debug("dropping preview message", zap.String("session_id", s.ID), zap.Error(err))
			}
		},
	}, m.logger.With(zap.String("session_id", s.ID)))
}

func (m *Module) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := m.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return s, true
}

// writeJSON writes a JSON response with the given status code.
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
		"type":   "https://forzashop.id/problems/studio-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

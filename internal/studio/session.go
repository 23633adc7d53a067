package studio

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/ws"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager errors.
var (
	ErrSessionNotFound = errors.New("studio session not found")
	ErrTooManySessions = errors.New("too many open studio sessions")
)

// SettingsBackend is the settings store the studio loads from and saves to.
type SettingsBackend = roles.SettingsStore

// Session is one open theme editor with its preview frames.
type Session struct {
	ID        string
	Actor     string
	CreatedAt time.Time

	editor   *theme.Editor
	hub      *ws.Hub
	ctx      context.Context
	cancel   context.CancelFunc
	lastSeen atomic.Int64 // unix nanos
}

// Editor returns the session's editor.
func (s *Session) Editor() *theme.Editor { return s.editor }

// Hub returns the preview fan-out for the session.
func (s *Session) Hub() *ws.Hub { return s.hub }

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

// LastSeen returns the last time the session was used.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// Info is the JSON view of a session.
type Info struct {
	ID            string      `json:"id" example:"3f2b8c1e-6a55-4c1e-9b43-0d7c1f3a2e10"`
	Actor         string      `json:"actor" example:"admin"`
	CreatedAt     time.Time   `json:"created_at"`
	LastSeen      time.Time   `json:"last_seen"`
	PreviewFrames int         `json:"preview_frames"`
	State         theme.State `json:"state"`
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	return Info{
		ID:            s.ID,
		Actor:         s.Actor,
		CreatedAt:     s.CreatedAt,
		LastSeen:      s.LastSeen(),
		PreviewFrames: s.hub.ClientCount(),
		State:         s.editor.State(),
	}
}

func (s *Session) close() {
	s.cancel()
	s.editor.Close()
	s.hub.Close()
}

// source reads persisted settings for Mount.
type source struct{ backend SettingsBackend }

func (s source) Fetch(ctx context.Context) ([]theme.Record, error) {
	return s.backend.List(ctx)
}

// writer persists a session's dirty keys on behalf of its actor.
type writer struct {
	backend SettingsBackend
	actor   string
	session string
	timeout time.Duration
}

func (w writer) BulkUpsert(ctx context.Context, records []theme.Record) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	_, err := w.backend.Save(ctx, w.actor, w.session, records)
	return err
}

// Manager owns the open studio sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	backend  SettingsBackend
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
	// afterFunc overrides editor timers in tests.
	afterFunc theme.AfterFunc
}

// NewManager creates a session manager over backend.
func NewManager(backend SettingsBackend, cfg Config, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		backend:  backend,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Create mounts a new editor over the persisted settings.
func (m *Manager) Create(ctx context.Context, actor string) (*Session, error) {
	m.mu.RLock()
	n := len(m.sessions)
	m.mu.RUnlock()
	if m.cfg.MaxSessions > 0 && n >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	id := uuid.New().String()
	logger := m.logger.With(zap.String("session_id", id))

	sctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        id,
		Actor:     actor,
		CreatedAt: m.now().UTC(),
		hub:       ws.NewHub(logger.Named("preview")),
		ctx:       sctx,
		cancel:    cancel,
	}
	s.touch(m.now())

	// The fetch is bound to both the request and the session.
	fetchCtx, stop := context.WithCancel(ctx)
	defer stop()
	unbind := context.AfterFunc(sctx, stop)
	defer unbind()

	s.editor = theme.Mount(fetchCtx,
		source{backend: m.backend},
		writer{backend: m.backend, actor: actor, session: id, timeout: 10 * time.Second},
		s.hub,
		theme.EditorConfig{
			Debounce:        m.cfg.Debounce,
			SavedClearAfter: m.cfg.SavedClearAfter,
			HistoryLimit:    m.cfg.HistoryLimit,
			AfterFunc:       m.afterFunc,
		},
		logger,
	)

	m.mu.Lock()
	m.sessions[id] = s
	count := len(m.sessions)
	m.mu.Unlock()
	sessionsActive.Set(float64(count))

	logger.Info("studio session opened", zap.String("actor", actor))
	return s, nil
}

// Get returns the session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.touch(m.now())
	return s, nil
}

// List returns every open session ordered by creation time.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Close discards a session without saving.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	count := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sessionsActive.Set(float64(count))
	s.close()
	m.logger.Info("studio session closed", zap.String("session_id", id))
	return nil
}

// Reap closes sessions idle longer than the configured timeout. Sessions
// with a connected preview frame are kept. It returns the number closed.
func (m *Manager) Reap() int {
	if m.cfg.SessionIdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.SessionIdleTimeout)

	var idle []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && s.hub.ClientCount() == 0 {
			delete(m.sessions, id)
			idle = append(idle, s)
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
		m.logger.Info("reaped idle studio session",
			zap.String("session_id", s.ID),
			zap.Time("last_seen", s.LastSeen()),
		)
	}
	if len(idle) > 0 {
		sessionsActive.Set(float64(count))
		sessionsReaped.Add(float64(len(idle)))
	}
	return len(idle)
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.close()
	}
	sessionsActive.Set(0)
}

// AdvanceBaselines tells every session except origin that settings were
// persisted elsewhere.
func (m *Manager) AdvanceBaselines(origin string, settings []models.Setting) {
	for _, s := range m.List() {
		if s.ID == origin {
			continue
		}
		s.editor.AdvanceBaseline(settings)
	}
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

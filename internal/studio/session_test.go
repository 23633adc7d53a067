package studio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// memBackend is an in-memory SettingsBackend.
type memBackend struct {
	mu      sync.Mutex
	values  []models.Setting
	listErr error
	saveErr error
	saves   []savedCall
}

type savedCall struct {
	actor, origin string
	settings      []models.Setting
}

func (b *memBackend) List(ctx context.Context) ([]models.Setting, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]models.Setting(nil), b.values...), nil
}

func (b *memBackend) Save(_ context.Context, actor, origin string, s []models.Setting) ([]models.SettingChange, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return nil, b.saveErr
	}
	b.saves = append(b.saves, savedCall{actor: actor, origin: origin, settings: append([]models.Setting(nil), s...)})
	return nil, nil
}

func (b *memBackend) Saves() []savedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]savedCall(nil), b.saves...)
}

// neverFire parks editor timers so tests control history through Flush.
func neverFire(time.Duration, func()) theme.Timer { return parkedTimer{} }

type parkedTimer struct{}

func (parkedTimer) Stop() bool { return true }

func newTestManager(t *testing.T, backend SettingsBackend) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	m := NewManager(backend, cfg, zap.NewNop())
	m.afterFunc = neverFire
	t.Cleanup(m.CloseAll)
	return m
}

func TestManager_CreateMergesPersistedSettings(t *testing.T) {
	backend := &memBackend{values: []models.Setting{
		{Key: theme.KeyAccentColor, Value: "#0ea5e9"},
		{Key: "theme_text_color", Value: ""},
	}}
	m := newTestManager(t, backend)

	s, err := m.Create(context.Background(), "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	draft := s.Editor().Draft()
	if draft[theme.KeyAccentColor] != "#0ea5e9" {
		t.Errorf("accent = %q, want persisted value", draft[theme.KeyAccentColor])
	}
	if draft["theme_text_color"] != theme.Defaults()["theme_text_color"] {
		t.Errorf("empty persisted value should fall back to the default, got %q", draft["theme_text_color"])
	}
	if len(s.Editor().Dirty()) != 0 {
		t.Errorf("fresh session is dirty: %v", s.Editor().Dirty())
	}
}

func TestManager_CreateFallsBackToDefaults(t *testing.T) {
	m := newTestManager(t, &memBackend{listErr: errors.New("db locked")})

	s, err := m.Create(context.Background(), "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if diff := cmp.Diff(theme.Defaults(), s.Editor().Draft()); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_MaxSessions(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	m.cfg.MaxSessions = 1

	if _, err := m.Create(context.Background(), "a"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := m.Create(context.Background(), "b"); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("second Create error = %v, want ErrTooManySessions", err)
	}
}

func TestManager_GetAndClose(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	s, _ := m.Create(context.Background(), "admin")

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get(%s) = %v, %v", s.ID, got, err)
	}

	if err := m.Close(s.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Context().Err() == nil {
		t.Error("session context not cancelled on close")
	}
	if err := s.Editor().Change(theme.KeyAccentColor, "#000000"); !errors.Is(err, theme.ErrClosed) {
		t.Errorf("Change after close error = %v, want ErrClosed", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after close error = %v, want ErrSessionNotFound", err)
	}
	if err := m.Close(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Close error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_SaveUploadsOnlyDirtyKeys(t *testing.T) {
	backend := &memBackend{}
	m := newTestManager(t, backend)
	s, _ := m.Create(context.Background(), "admin")
	ed := s.Editor()

	for _, v := range []string{"#aaaaaa", "#bbbbbb", "#111111"} {
		if err := ed.Change(theme.KeyAccentColor, v); err != nil {
			t.Fatalf("Change: %v", err)
		}
	}
	n, err := ed.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 1 {
		t.Errorf("Save() = %d keys, want 1", n)
	}

	saves := backend.Saves()
	if len(saves) != 1 {
		t.Fatalf("backend saw %d saves, want 1", len(saves))
	}
	want := savedCall{
		actor:    "admin",
		origin:   s.ID,
		settings: []models.Setting{{Key: theme.KeyAccentColor, Value: "#111111"}},
	}
	if diff := cmp.Diff(want, saves[0], cmp.AllowUnexported(savedCall{})); diff != "" {
		t.Errorf("save mismatch (-want +got):\n%s", diff)
	}
	if len(ed.Dirty()) != 0 {
		t.Errorf("dirty after save = %v", ed.Dirty())
	}
}

func TestManager_Reap(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	idle, _ := m.Create(context.Background(), "a")
	now = now.Add(45 * time.Minute)
	fresh, _ := m.Create(context.Background(), "b")

	if got := m.Reap(); got != 1 {
		t.Fatalf("Reap() = %d, want 1", got)
	}
	if _, err := m.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("idle session survived the reaper")
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Errorf("fresh session reaped: %v", err)
	}
}

func TestManager_ReapDisabled(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	m.cfg.SessionIdleTimeout = 0
	m.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, _ = m.Create(context.Background(), "a")
	if got := m.Reap(); got != 0 {
		t.Errorf("Reap() with no timeout = %d, want 0", got)
	}
}

func TestManager_AdvanceBaselinesSkipsOrigin(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	saver, _ := m.Create(context.Background(), "a")
	other, _ := m.Create(context.Background(), "b")

	// The other editor has its own unsaved edit on a different key.
	if err := other.Editor().Change("theme_text_color", "#333333"); err != nil {
		t.Fatal(err)
	}

	persisted := []models.Setting{{Key: theme.KeyAccentColor, Value: "#111111"}}
	m.AdvanceBaselines(saver.ID, persisted)

	if got := other.Editor().Draft()[theme.KeyAccentColor]; got != "#111111" {
		t.Errorf("other session accent = %q, want the persisted value", got)
	}
	if diff := cmp.Diff([]string{"theme_text_color"}, other.Editor().Dirty()); diff != "" {
		t.Errorf("other session dirty mismatch (-want +got):\n%s", diff)
	}
	if got := saver.Editor().Draft()[theme.KeyAccentColor]; got != "#e11d48" {
		t.Errorf("origin session was touched: accent = %q", got)
	}
}

func TestManager_ListOrdered(t *testing.T) {
	m := newTestManager(t, &memBackend{})
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { now = now.Add(time.Second); return now }

	a, _ := m.Create(context.Background(), "a")
	b, _ := m.Create(context.Background(), "b")

	list := m.List()
	if len(list) != 2 || list[0] != a || list[1] != b {
		t.Errorf("List() order wrong")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

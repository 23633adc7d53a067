package theme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeWriter struct {
	mu    sync.Mutex
	calls [][]Record
	err   error
}

func (w *fakeWriter) BulkUpsert(_ context.Context, records []Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, records)
	return w.err
}

type fakeSource struct {
	records []Record
	err     error
}

func (s fakeSource) Fetch(context.Context) ([]Record, error) { return s.records, s.err }

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []Tokens
}

func (b *recordingBroadcaster) Broadcast(t Tokens) {
	b.mu.Lock()
	b.sent = append(b.sent, t)
	b.mu.Unlock()
}

func (b *recordingBroadcaster) last() Tokens {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent[len(b.sent)-1]
}

func newTestEditor(t *testing.T) (*Editor, *manualClock, *fakeWriter, *recordingBroadcaster) {
	t.Helper()
	clock := &manualClock{}
	w := &fakeWriter{}
	b := &recordingBroadcaster{}
	e := NewEditor(Defaults(), w, b, EditorConfig{AfterFunc: clock.AfterFunc}, zaptest.NewLogger(t))
	t.Cleanup(e.Close)
	return e, clock, w, b
}

func TestEditor_AccentScenario(t *testing.T) {
	e, clock, w, b := newTestEditor(t)
	start := e.State().HistoryLen

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	}
	assert.Equal(t, start, e.State().HistoryLen, "nothing pushed before the window closes")
	assert.Equal(t, "#111111", b.last()[KeyAccentColor], "previews update immediately")

	clock.FireAll()
	st := e.State()
	assert.Equal(t, start+1, st.HistoryLen)
	assert.Equal(t, "#111111", st.Draft[KeyAccentColor])

	n, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, w.calls, 1)
	if diff := cmp.Diff([]Record{{Key: KeyAccentColor, Value: "#111111"}}, w.calls[0]); diff != "" {
		t.Errorf("uploaded records mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, e.Dirty())
}

func TestEditor_ChangeUpdatesDocument(t *testing.T) {
	e, _, _, _ := newTestEditor(t)
	require.NoError(t, e.Change(KeyAccentColor, "#123456"))
	assert.Contains(t, e.CSS(), "--color-accent: #123456;")
}

func TestEditor_UndoFlushesPendingEdit(t *testing.T) {
	e, _, _, b := newTestEditor(t)

	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	require.True(t, e.Undo(), "pending edit is committed then undone")

	st := e.State()
	assert.Equal(t, "#e11d48", st.Draft[KeyAccentColor])
	assert.Equal(t, 0, st.HistoryIndex)
	assert.Equal(t, 2, st.HistoryLen)
	assert.Equal(t, "#e11d48", b.last()[KeyAccentColor], "undo replays through the broadcaster")

	require.True(t, e.Redo())
	assert.Equal(t, "#111111", e.Draft()[KeyAccentColor])
	assert.False(t, e.Redo(), "redo at the newest entry is a no-op")
}

func TestEditor_UndoAtStartIsNoop(t *testing.T) {
	e, _, _, _ := newTestEditor(t)
	assert.False(t, e.Undo())
	assert.Equal(t, Defaults(), e.Draft())
}

func TestEditor_SeparateWindowsAreSeparateSteps(t *testing.T) {
	e, clock, _, _ := newTestEditor(t)

	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	clock.FireAll()
	require.NoError(t, e.Change(KeyAccentColor, "#222222"))
	clock.FireAll()

	assert.Equal(t, 3, e.State().HistoryLen)
	require.True(t, e.Undo())
	assert.Equal(t, "#111111", e.Draft()[KeyAccentColor])
}

func TestEditor_EditAfterUndoDropsRedo(t *testing.T) {
	e, clock, _, _ := newTestEditor(t)

	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	clock.FireAll()
	require.True(t, e.Undo())
	require.NoError(t, e.Change("theme_text_color", "#333333"))
	clock.FireAll()

	st := e.State()
	assert.False(t, st.CanRedo)
	assert.Equal(t, 2, st.HistoryLen)
	assert.Equal(t, "#e11d48", st.Draft[KeyAccentColor])
}

func TestEditor_ApplyPresetPushesImmediately(t *testing.T) {
	e, _, _, _ := newTestEditor(t)
	require.NoError(t, e.Change(KeyHeroTitle, "Mega Sale"))

	p := Preset{Name: "x", Tokens: Tokens{KeyAccentColor: "#00ff00", KeyHeroTitle: "nope"}}
	require.NoError(t, e.ApplyPreset(p))

	st := e.State()
	assert.Equal(t, 3, st.HistoryLen, "pending edit flushed, then one preset entry")
	assert.Equal(t, "#00ff00", st.Draft[KeyAccentColor])
	assert.Equal(t, "Mega Sale", st.Draft[KeyHeroTitle])
}

func TestEditor_SaveFailureKeepsBaseline(t *testing.T) {
	e, _, w, _ := newTestEditor(t)
	w.err = errors.New("backend down")

	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	_, err := e.Save(context.Background())
	require.Error(t, err)

	status, msg := e.Status()
	assert.Equal(t, StatusError, status)
	assert.Contains(t, msg, "backend down")
	assert.Equal(t, []string{KeyAccentColor}, e.Dirty())
	assert.Equal(t, "#e11d48", e.Baseline()[KeyAccentColor])

	// Retry succeeds.
	w.err = nil
	_, err = e.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, e.Dirty())
}

func TestEditor_SavedStatusClears(t *testing.T) {
	e, clock, _, _ := newTestEditor(t)
	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	_, err := e.Save(context.Background())
	require.NoError(t, err)

	status, _ := e.Status()
	assert.Equal(t, StatusSaved, status)

	clock.FireAll()
	status, _ = e.Status()
	assert.Equal(t, StatusIdle, status)
}

func TestEditor_SaveWithoutChanges(t *testing.T) {
	e, _, w, _ := newTestEditor(t)
	_, err := e.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Empty(t, w.calls)
	status, _ := e.Status()
	assert.Equal(t, StatusIdle, status)
}

func TestEditor_ApplyRemote(t *testing.T) {
	e, clock, _, b := newTestEditor(t)
	sent := len(b.sent)

	require.NoError(t, e.ApplyRemote(Tokens{KeyAccentColor: "#abcdef"}))
	assert.Equal(t, "#abcdef", e.Draft()[KeyAccentColor])
	assert.Contains(t, e.CSS(), "--color-accent: #abcdef;")
	assert.Equal(t, sent, len(b.sent), "remote updates are not echoed")

	clock.FireAll()
	assert.Equal(t, 2, e.State().HistoryLen)
}

func TestEditor_AdvanceBaseline(t *testing.T) {
	e, _, _, _ := newTestEditor(t)
	require.NoError(t, e.Change("theme_text_color", "#local"))

	e.AdvanceBaseline([]Record{
		{Key: KeyAccentColor, Value: "#remote"},
		{Key: "theme_text_color", Value: "#other"},
	})

	d := e.Draft()
	assert.Equal(t, "#remote", d[KeyAccentColor], "untouched keys follow the new baseline")
	assert.Equal(t, "#local", d["theme_text_color"], "local edits are kept")
	assert.Equal(t, []string{"theme_text_color"}, e.Dirty())
}

func TestEditor_AdvanceBaselineKeepsUndoSteps(t *testing.T) {
	e, clock, _, _ := newTestEditor(t)
	require.NoError(t, e.Change(KeyAccentColor, "#111111"))

	// Another session saves a different key while the edit is pending.
	e.AdvanceBaseline([]Record{{Key: "theme_body_font", Value: "serif"}})
	clock.FireAll()

	st := e.State()
	assert.Equal(t, 2, st.HistoryLen, "the remote save is not an undo step")
	assert.Equal(t, "#111111", e.Draft()[KeyAccentColor])

	require.True(t, e.Undo())
	d := e.Draft()
	assert.Equal(t, "#e11d48", d[KeyAccentColor], "undo reverts the local edit")
	assert.Equal(t, "serif", d["theme_body_font"], "undo keeps the other save")
	assert.Empty(t, e.Dirty())
	assert.False(t, e.Undo())

	require.True(t, e.Redo())
	assert.Equal(t, "#111111", e.Draft()[KeyAccentColor])
	assert.Equal(t, "serif", e.Draft()["theme_body_font"])
	assert.Equal(t, []string{KeyAccentColor}, e.Dirty())
}

func TestEditor_Closed(t *testing.T) {
	e, clock, _, _ := newTestEditor(t)
	require.NoError(t, e.Change(KeyAccentColor, "#111111"))
	e.Close()

	assert.ErrorIs(t, e.Change(KeyAccentColor, "#222222"), ErrClosed)
	_, err := e.Save(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, clock.FireAll(), "pending push was cancelled")
}

func TestMount_FallsBackToDefaults(t *testing.T) {
	e := Mount(context.Background(), fakeSource{err: errors.New("offline")}, &fakeWriter{}, nil,
		EditorConfig{}, zaptest.NewLogger(t))
	defer e.Close()
	assert.Equal(t, Defaults(), e.Draft())
	assert.Empty(t, e.Dirty())
}

func TestMount_MergesFetchedRecords(t *testing.T) {
	src := fakeSource{records: []Record{{Key: KeyAccentColor, Value: "#0000ff"}}}
	e := Mount(context.Background(), src, &fakeWriter{}, nil, EditorConfig{Debounce: time.Hour}, zaptest.NewLogger(t))
	defer e.Close()
	assert.Equal(t, "#0000ff", e.Draft()[KeyAccentColor])
	assert.Equal(t, "#0000ff", e.Baseline()[KeyAccentColor])
}

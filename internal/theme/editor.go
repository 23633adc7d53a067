package theme

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Editor errors.
var (
	ErrNoChanges      = errors.New("no unsaved changes")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrClosed         = errors.New("editor closed")
)

// Status is the save state shown next to the editor.
type Status string

// Save states: idle -> saving -> saved | error. Saved falls back to idle
// after EditorConfig.SavedClearAfter.
const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// Source loads the persisted settings records.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// SettingsWriter persists a set of records in one atomic call.
type SettingsWriter interface {
	BulkUpsert(ctx context.Context, records []Record) error
}

// Broadcaster fans a token mapping out to preview frames.
type Broadcaster interface {
	Broadcast(t Tokens)
}

// EditorConfig tunes timing. Zero values take the defaults.
type EditorConfig struct {
	Debounce        time.Duration // history coalescing window, default 500ms
	SavedClearAfter time.Duration // saved -> idle delay, default 2s
	HistoryLimit    int           // 0 keeps every entry
	AfterFunc       AfterFunc     // nil uses real timers
}

func (c EditorConfig) withDefaults() EditorConfig {
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.SavedClearAfter <= 0 {
		c.SavedClearAfter = 2 * time.Second
	}
	if c.AfterFunc == nil {
		c.AfterFunc = realAfterFunc
	}
	return c
}

// State is a point-in-time view of an editor.
type State struct {
	Draft        Tokens   `json:"draft"`
	Dirty        []string `json:"dirty"`
	HistoryIndex int      `json:"history_index"`
	HistoryLen   int      `json:"history_len"`
	CanUndo      bool     `json:"can_undo"`
	CanRedo      bool     `json:"can_redo"`
	Status       Status   `json:"status"`
	Error        string   `json:"error,omitempty"`
}

// Editor owns one draft: the live token mapping, its undo history, the
// persisted baseline and the document it is projected onto.
type Editor struct {
	mu        sync.Mutex
	draft     Tokens
	baseline  Tokens
	history   *History
	injector  *Injector
	debounce  *Debouncer
	writer    SettingsWriter
	broadcast Broadcaster
	cfg       EditorConfig
	logger    *zap.Logger

	status     Status
	lastErr    string
	clearTimer Timer
	clearGen   uint64
	saving     bool
	closed     bool
}

// NewEditor starts an editor whose draft and baseline both equal baseline.
// broadcast may be nil.
func NewEditor(baseline Tokens, writer SettingsWriter, broadcast Broadcaster, cfg EditorConfig, logger *zap.Logger) *Editor {
	cfg = cfg.withDefaults()
	e := &Editor{
		draft:     baseline.Clone(),
		baseline:  baseline.Clone(),
		history:   NewHistory(baseline, cfg.HistoryLimit),
		injector:  NewInjector(NewDocument()),
		writer:    writer,
		broadcast: broadcast,
		cfg:       cfg,
		logger:    logger,
		status:    StatusIdle,
	}
	e.debounce = NewDebouncer(cfg.Debounce, e.commitDraft, cfg.AfterFunc)
	e.injector.Apply(e.draft)
	return e
}

// Mount fetches the persisted settings and starts an editor over them. A
// failed fetch is logged and the editor falls back to the defaults.
func Mount(ctx context.Context, src Source, writer SettingsWriter, broadcast Broadcaster, cfg EditorConfig, logger *zap.Logger) *Editor {
	records, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("settings fetch failed, using default theme", zap.Error(err))
		records = nil
	}
	return NewEditor(Merge(records), writer, broadcast, cfg, logger)
}

// SetBroadcaster replaces the preview fan-out target.
func (e *Editor) SetBroadcaster(b Broadcaster) {
	e.mu.Lock()
	e.broadcast = b
	e.mu.Unlock()
}

// Change sets one token. The draft, document and previews update at once;
// the history entry is pushed when the debounce window closes.
func (e *Editor) Change(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.draft[key] = value
	e.publishLocked()
	e.debounce.Trigger()
	return nil
}

// ApplyRemote merges a mapping received from a preview frame over the draft
// and re-runs the injector. It is not echoed back to the frames.
func (e *Editor) ApplyRemote(t Tokens) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	maps.Copy(e.draft, t)
	e.injector.Apply(e.draft)
	e.debounce.Trigger()
	return nil
}

// Undo steps back one history entry. A pending debounced edit is committed
// first so it can be undone. It reports false at the oldest entry.
func (e *Editor) Undo() bool {
	e.debounce.Flush()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	snap, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.draft = snap
	e.publishLocked()
	return true
}

// Redo steps forward one history entry. It reports false at the newest.
func (e *Editor) Redo() bool {
	e.debounce.Flush()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	snap, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.draft = snap
	e.publishLocked()
	return true
}

// ApplyPreset merges p over the draft, keeping content keys, and records
// one history entry immediately.
func (e *Editor) ApplyPreset(p Preset) error {
	e.debounce.Flush()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.draft = ApplyPreset(e.draft, p)
	e.history.Push(e.draft)
	e.publishLocked()
	return nil
}

// Save uploads the dirty keys in one bulk call. On success the baseline
// advances to the draft as it was when the save started; on failure it is
// left alone and the status carries the error.
func (e *Editor) Save(ctx context.Context) (int, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return 0, ErrClosed
	}
	if e.saving {
		e.mu.Unlock()
		return 0, ErrSaveInProgress
	}
	dirty := DirtySet(e.draft, e.baseline)
	if len(dirty) == 0 {
		e.mu.Unlock()
		return 0, ErrNoChanges
	}
	snapshot := e.draft.Clone()
	e.saving = true
	e.setStatusLocked(StatusSaving, "")
	e.mu.Unlock()

	err := e.writer.BulkUpsert(ctx, Records(snapshot, dirty))

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		e.setStatusLocked(StatusError, err.Error())
		e.logger.Warn("theme save failed", zap.Int("keys", len(dirty)), zap.Error(err))
		return 0, fmt.Errorf("save theme: %w", err)
	}
	e.baseline = snapshot
	e.setStatusLocked(StatusSaved, "")
	e.logger.Info("theme saved", zap.Strings("keys", dirty))
	return len(dirty), nil
}

// AdvanceBaseline records values persisted elsewhere. Keys the draft has
// not diverged on follow the new value; local edits stay dirty. A pending
// debounced edit is committed first, and history entries are rebased
// rather than extended, so undo never reverts the other save.
func (e *Editor) AdvanceBaseline(records []Record) {
	e.debounce.Flush()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	changed := false
	for _, r := range records {
		old := e.baseline[r.Key]
		if e.draft[r.Key] == old && old != r.Value {
			e.draft[r.Key] = r.Value
			changed = true
		}
		e.history.Rebase(r.Key, old, r.Value)
		e.baseline[r.Key] = r.Value
	}
	if changed {
		e.publishLocked()
	}
}

// Draft returns a copy of the working mapping.
func (e *Editor) Draft() Tokens {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// Baseline returns a copy of the last persisted mapping.
func (e *Editor) Baseline() Tokens {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseline.Clone()
}

// Dirty returns the keys that differ from the baseline.
func (e *Editor) Dirty() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DirtySet(e.draft, e.baseline)
}

// Status returns the save state and, for StatusError, its message.
func (e *Editor) Status() (Status, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status, e.lastErr
}

// State returns a consistent snapshot of the editor.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Draft:        e.draft.Clone(),
		Dirty:        DirtySet(e.draft, e.baseline),
		HistoryIndex: e.history.Index(),
		HistoryLen:   e.history.Len(),
		CanUndo:      e.history.CanUndo(),
		CanRedo:      e.history.CanRedo(),
		Status:       e.status,
		Error:        e.lastErr,
	}
}

// CSS renders the editor's document.
func (e *Editor) CSS() string {
	return e.injector.Document().CSS()
}

// Flush commits a pending debounced edit to history now.
func (e *Editor) Flush() bool {
	return e.debounce.Flush()
}

// Close stops timers and rejects further edits. Unsaved changes are dropped.
func (e *Editor) Close() {
	e.debounce.Stop()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.clearGen++
	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}
}

// commitDraft is the debounced history push. A draft equal to the current
// entry is not pushed again.
func (e *Editor) commitDraft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if maps.Equal(e.draft, e.history.Current()) {
		return
	}
	e.history.Push(e.draft)
}

func (e *Editor) publishLocked() {
	e.injector.Apply(e.draft)
	if e.broadcast != nil {
		e.broadcast.Broadcast(e.draft.Clone())
	}
}

func (e *Editor) setStatusLocked(s Status, msg string) {
	e.status = s
	e.lastErr = msg
	e.clearGen++
	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}
	if s != StatusSaved {
		return
	}
	gen := e.clearGen
	e.clearTimer = e.cfg.AfterFunc(e.cfg.SavedClearAfter, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen == e.clearGen && e.status == StatusSaved {
			e.status = StatusIdle
			e.clearTimer = nil
		}
	})
}

package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound is returned for an unknown preset name.
var ErrPresetNotFound = errors.New("preset not found")

// LoadPresetFile parses one YAML preset. Content keys in the file are
// dropped since ApplyPreset would discard them anyway; any other key that
// does not map to a CSS variable is an error.
func LoadPresetFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %s: %w", path, err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if p.Label == "" {
		p.Label = p.Name
	}
	if len(p.Tokens) == 0 {
		return Preset{}, fmt.Errorf("preset %s: no tokens", path)
	}
	var unknown []string
	for k := range p.Tokens {
		if IsPreserved(k) {
			delete(p.Tokens, k)
			continue
		}
		if _, ok := CSSVar(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return Preset{}, fmt.Errorf("preset %s: unsupported tokens %s", path, strings.Join(unknown, ", "))
	}
	if len(p.Tokens) == 0 {
		return Preset{}, fmt.Errorf("preset %s: no style tokens", path)
	}
	return p, nil
}

// LoadPresetDir parses every *.yaml and *.yml file in dir. Files that fail
// to parse are returned in the joined error; the rest still load.
func LoadPresetDir(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read preset dir: %w", err)
	}
	var (
		presets []Preset
		errs    []error
	)
	for _, e := range entries {
		if e.IsDir() || !isPresetFile(e.Name()) {
			continue
		}
		p, err := LoadPresetFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		presets = append(presets, p)
	}
	return presets, errors.Join(errs...)
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// PresetCatalog serves built-in presets plus those loaded from a directory.
// Directory presets override built-ins of the same name.
type PresetCatalog struct {
	mu       sync.RWMutex
	dir      string
	builtin  []Preset
	loaded   []Preset
	logger   *zap.Logger
	onChange func()

	watcher *fsnotify.Watcher
	reload  *Debouncer
	done    chan struct{}
}

// NewPresetCatalog creates a catalog. An empty dir serves built-ins only.
func NewPresetCatalog(dir string, logger *zap.Logger) *PresetCatalog {
	return &PresetCatalog{
		dir:     dir,
		builtin: BuiltinPresets(),
		logger:  logger,
	}
}

// OnChange registers a callback run after every successful reload.
func (c *PresetCatalog) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Reload re-reads the preset directory.
func (c *PresetCatalog) Reload() error {
	if c.dir == "" {
		return nil
	}
	presets, err := LoadPresetDir(c.dir)
	if err != nil && presets == nil {
		return err
	}
	if err != nil {
		c.logger.Warn("some presets failed to load", zap.Error(err))
	}

	c.mu.Lock()
	c.loaded = presets
	cb := c.onChange
	c.mu.Unlock()

	c.logger.Info("preset catalog loaded",
		zap.String("dir", c.dir),
		zap.Int("custom", len(presets)),
	)
	if cb != nil {
		cb()
	}
	return nil
}

// List returns all presets sorted by name.
func (c *PresetCatalog) List() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byName := make(map[string]Preset, len(c.builtin)+len(c.loaded))
	for _, p := range c.builtin {
		byName[p.Name] = p
	}
	for _, p := range c.loaded {
		byName[p.Name] = p
	}
	out := make([]Preset, 0, len(byName))
	for _, p := range byName {
		p.Tokens = p.Tokens.Clone()
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Get returns the preset with the given name.
func (c *PresetCatalog) Get(name string) (Preset, error) {
	for _, p := range c.List() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// Watch starts reloading the directory whenever its YAML files change.
// Bursts of events collapse into one reload.
func (c *PresetCatalog) Watch() error {
	if c.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(c.dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", c.dir, err)
	}

	c.watcher = w
	c.done = make(chan struct{})
	c.reload = NewDebouncer(200*time.Millisecond, func() {
		if err := c.Reload(); err != nil {
			c.logger.Error("preset reload failed", zap.Error(err))
		}
	}, nil)

	go c.run()
	return nil
}

func (c *PresetCatalog) run() {
	defer close(c.done)
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !isPresetFile(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			c.logger.Debug("preset file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			c.reload.Trigger()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("preset watcher error", zap.Error(err))
		}
	}
}

// Close stops watching. Safe to call without Watch.
func (c *PresetCatalog) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	<-c.done
	c.reload.Stop()
	return err
}

// Package media stores uploaded storefront images (logos, hero banners,
// favicons) on local disk and serves them under /uploads/.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"go.uber.org/zap"
)

// PublicPrefix is the URL path prefix uploaded files are served from.
const PublicPrefix = "/uploads/"

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
	_ plugin.Validator    = (*Module)(nil)
	_ roles.MediaStore    = (*Module)(nil)
)

// Config holds media settings read from plugins.media.
type Config struct {
	Dir        string `mapstructure:"dir"`
	MaxBytes   int64  `mapstructure:"max_bytes"`
	UploadBase string `mapstructure:"upload_base"`
}

// DefaultConfig returns the media defaults.
func DefaultConfig() Config {
	return Config{
		Dir:      "data/uploads",
		MaxBytes: 5 << 20,
	}
}

// Module implements the media plugin.
type Module struct {
	logger *zap.Logger
	cfg    Config
}

// New creates a new media plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "media",
		Version:     "0.1.0",
		Description: "Image uploads for storefront branding",
		Roles:       []string{roles.RoleMedia},
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if d := deps.Config.GetString("dir"); d != "" {
			m.cfg.Dir = d
		}
		if deps.Config.IsSet("max_bytes") {
			m.cfg.MaxBytes = int64(deps.Config.GetInt("max_bytes"))
		}
		m.cfg.UploadBase = deps.Config.GetString("upload_base")
	}

	if err := os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("media: create upload dir: %w", err)
	}
	m.logger.Info("media module initialized",
		zap.String("dir", m.cfg.Dir),
		zap.Int64("max_bytes", m.cfg.MaxBytes),
	)
	return nil
}

// ValidateConfig implements plugin.Validator.
func (m *Module) ValidateConfig() error {
	if m.cfg.MaxBytes <= 0 {
		return errors.New("media: max_bytes must be positive")
	}
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

// URL returns the absolute link for a stored path.
func (m *Module) URL(path string) string {
	return strings.TrimRight(m.cfg.UploadBase, "/") + path
}

// RegisterRoutes serves stored files. Mounted outside /api/v1 so the
// storefront can link them without a token.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	files := http.StripPrefix(PublicPrefix, http.FileServer(noDirFS{http.Dir(m.cfg.Dir)}))
	mux.Handle("GET "+PublicPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		files.ServeHTTP(w, r)
	}))
}

// noDirFS hides directory listings.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

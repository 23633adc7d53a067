package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/config"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin/plugintest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func testDeps(t *testing.T, maxBytes int) plugin.Dependencies {
	t.Helper()
	v := viper.New()
	v.Set("dir", t.TempDir())
	v.Set("upload_base", "https://cdn.forza.example/")
	if maxBytes > 0 {
		v.Set("max_bytes", maxBytes)
	}
	return plugin.Dependencies{Config: config.New(v), Logger: zap.NewNop()}
}

func setup(t *testing.T, maxBytes int) (*Module, http.Handler) {
	t.Helper()
	m := New()
	require.NoError(t, m.Init(context.Background(), testDeps(t, maxBytes)))
	mux := http.NewServeMux()
	for _, r := range m.Routes() {
		mux.HandleFunc(r.Method+" /api/v1/media"+r.Path, r.Handler)
	}
	m.RegisterRoutes(mux)
	return m, mux
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() },
		func(t *testing.T, _ string) plugin.Dependencies { return testDeps(t, 0) })
}

func TestValidateConfig(t *testing.T) {
	m, _ := setup(t, 0)
	assert.NoError(t, m.ValidateConfig())
	assert.Equal(t, int64(5<<20), m.cfg.MaxBytes)

	m.cfg.MaxBytes = 0
	assert.Error(t, m.ValidateConfig())
}

func TestUpload_StoresAndServes(t *testing.T) {
	m, mux := setup(t, 0)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, uploadRequest(t, "file", "logo.bin", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var up Upload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&up))
	assert.True(t, strings.HasPrefix(up.Path, "/uploads/"))
	assert.True(t, strings.HasSuffix(up.Path, ".png"), "extension comes from content, not the client name")
	assert.Equal(t, "https://cdn.forza.example"+up.Path, up.URL)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, int64(len(pngHeader)), up.Size)

	stored, err := os.ReadFile(filepath.Join(m.cfg.Dir, strings.TrimPrefix(up.Path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	get := httptest.NewRecorder()
	mux.ServeHTTP(get, httptest.NewRequest(http.MethodGet, up.Path, http.NoBody))
	require.Equal(t, http.StatusOK, get.Code)
	body, _ := io.ReadAll(get.Body)
	assert.Equal(t, pngHeader, body)
	assert.Equal(t, "nosniff", get.Header().Get("X-Content-Type-Options"))
}

func TestUpload_Rejections(t *testing.T) {
	_, mux := setup(t, 64)

	tests := []struct {
		name    string
		field   string
		content []byte
		want    int
	}{
		{"wrong field", "image", pngHeader, http.StatusBadRequest},
		{"text file", "file", []byte("hello, not an image"), http.StatusUnsupportedMediaType},
		{"svg", "file", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), http.StatusUnsupportedMediaType},
		{"too large", "file", append(append([]byte{}, pngHeader...), make([]byte, 100)...), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, uploadRequest(t, tt.field, "x", tt.content))
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
		})
	}
}

func TestListAndDelete(t *testing.T) {
	_, mux := setup(t, 0)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, uploadRequest(t, "file", "a.gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var up Upload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&up))

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/media", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	var list []Upload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, up.Path, list[0].Path)
	assert.Equal(t, up.URL, list[0].URL)

	name := strings.TrimPrefix(up.Path, "/uploads/")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/media/"+name, http.NoBody))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/media/"+name, http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/media/.hidden", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServe_NoDirectoryListing(t *testing.T) {
	_, mux := setup(t, 0)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

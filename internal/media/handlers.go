package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// multipartOverhead is the slack allowed on top of max_bytes for the
// multipart envelope.
const multipartOverhead = 64 << 10

// allowedTypes are the sniffed content types accepted for upload. SVG is
// excluded since it can carry script.
var allowedTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/x-icon",
}

// Upload describes a stored file.
type Upload struct {
	Path        string    `json:"path" example:"/uploads/3f1c2a9e-5b7d-4c1e-9a0f-2d6e8b4c7a11.png"`
	URL         string    `json:"url" example:"https://api.forzashop.id/uploads/3f1c2a9e-5b7d-4c1e-9a0f-2d6e8b4c7a11.png"`
	ContentType string    `json:"content_type,omitempty" example:"image/png"`
	Size        int64     `json:"size" example:"20480"`
	ModifiedAt  time.Time `json:"modified_at,omitzero"`
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "POST", Path: "/upload", Handler: m.handleUpload},
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "DELETE", Path: "/{name}", Handler: m.handleDelete},
	}
}

// handleUpload stores one image from the multipart field "file".
//
//	@Summary		Upload image
//	@Description	Stores an image and returns its path and absolute URL.
//	@Tags			media
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	Upload
//	@Failure		400		{object}	models.APIProblem
//	@Failure		413		{object}	models.APIProblem
//	@Failure		415		{object}	models.APIProblem
//	@Router			/media/upload [post]
func (m *Module) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, m.cfg.MaxBytes+multipartOverhead)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", m.cfg.MaxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if hdr.Size > m.cfg.MaxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", m.cfg.MaxBytes))
		return
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if !allowed(mtype) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type "+mtype.String())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		m.logger.Error("failed to rewind upload", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	name := uuid.NewString() + mtype.Extension()
	size, err := m.store(name, file)
	if err != nil {
		m.logger.Error("failed to store upload", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	path := PublicPrefix + name
	m.logger.Info("stored upload",
		zap.String("path", path),
		zap.String("content_type", mtype.String()),
		zap.Int64("size", size),
		zap.String("original", hdr.Filename),
	)
	writeJSON(w, http.StatusCreated, Upload{
		Path:        path,
		URL:         m.URL(path),
		ContentType: mtype.String(),
		Size:        size,
	})
}

// store writes src to a new file in the upload dir.
func (m *Module) store(name string, src io.Reader) (int64, error) {
	dst := filepath.Join(m.cfg.Dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	return n, nil
}

func allowed(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// handleList returns the stored uploads, newest first.
//
//	@Summary		List uploads
//	@Tags			media
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	Upload
//	@Router			/media [get]
func (m *Module) handleList(w http.ResponseWriter, _ *http.Request) {
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		m.logger.Error("failed to list uploads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}
	out := make([]Upload, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := PublicPrefix + e.Name()
		out = append(out, Upload{Path: path, URL: m.URL(path), Size: info.Size(), ModifiedAt: info.ModTime()})
	}
	slices.SortFunc(out, func(a, b Upload) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	writeJSON(w, http.StatusOK, out)
}

// handleDelete removes a stored upload.
//
//	@Summary		Delete upload
//	@Tags			media
//	@Security		BearerAuth
//	@Param			name	path	string	true	"File name"
//	@Success		204
//	@Failure		400	{object}	models.APIProblem
//	@Failure		404	{object}	models.APIProblem
//	@Router			/media/{name} [delete]
func (m *Module) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}
	if err := os.Remove(filepath.Join(m.cfg.Dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "upload not found")
			return
		}
		m.logger.Error("failed to delete upload", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete upload")
		return
	}
	m.logger.Info("deleted upload", zap.String("name", name))
	w.WriteHeader(http.StatusNoContent)
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
		"type":   "https://forzashop.id/problems/media-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

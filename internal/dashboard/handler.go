package dashboard

import (
	"io/fs"
	"net/http"
	"strings"
)

// reserved paths are owned by the API server, never the SPA.
var reservedPrefixes = []string{"/api/", "/uploads/", "/swagger/"}

var reservedPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// Handler serves the built storefront and admin SPA. Unknown paths get
// index.html so the client router can resolve them.
func Handler() http.Handler {
	if distFS == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "storefront not available (dev build)", http.StatusNotFound)
		})
	}

	subFS, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("dashboard: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reserved(r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}
		if f, err := subFS.Open(path); err == nil {
			f.Close()
			if strings.HasPrefix(path, "assets/") {
				w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			}
			fileServer.ServeHTTP(w, r)
			return
		}

		// index.html must not be cached so theme.css and new bundles load.
		w.Header().Set("Cache-Control", "no-cache")
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}

func reserved(path string) bool {
	if reservedPaths[path] {
		return true
	}
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

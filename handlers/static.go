package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"silentsos-server/middleware"
	"silentsos-server/utils/errors"
)

// apiNotFound answers unknown /api paths with a JSON 404 instead of the SPA.
func apiNotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, errors.NotFound("Not found"))
}

// spaHandler serves the built frontend from dir and falls back to
// index.html so client-side routes resolve.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		apiNotFound(w, r)
		return
	}
	path := filepath.Join(h.dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		apiNotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

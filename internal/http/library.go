package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-mdshelf/internal/library"
)

type scanRequest struct {
	Path string `json:"path"`
}

type fileRequest struct {
	BasePath string `json:"basePath"`
	FilePath string `json:"filePath"`
}

func (api *API) registerLibraryRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "scan"), api.handleScan)
	mux.HandleFunc("POST "+joinPath(base, "read"), api.handleRead)
	mux.HandleFunc("POST "+joinPath(base, "render"), api.handleRender)
}

func (api *API) handleScan(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := api.library.Scan(r.Context(), req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *API) handleRead(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req fileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	file, err := api.library.Read(r.Context(), req.BasePath, req.FilePath)
	if err != nil {
		writeError(w, err)
		return
	}
	if writeCacheHeaders(w, r, file) {
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (api *API) handleRender(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req fileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rendered, err := api.library.Render(r.Context(), req.BasePath, req.FilePath)
	if err != nil {
		writeError(w, err)
		return
	}
	if writeCacheHeaders(w, r, rendered.FileResult) {
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// writeCacheHeaders sets ETag and Last-Modified for file and reports whether
// the request was answered with 304 Not Modified.
func writeCacheHeaders(w http.ResponseWriter, r *http.Request, file *library.FileResult) bool {
	etag := file.ETag()
	if etag == "" {
		return false
	}
	w.Header().Set("ETag", etag)
	if !file.LastModified.IsZero() {
		w.Header().Set("Last-Modified", file.LastModified.UTC().Format(http.TimeFormat))
	}
	w.Header().Set("Cache-Control", "no-cache")

	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func matchesETag(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	progresscmd "github.com/goliatone/go-mdshelf/internal/commands/progress"
	"github.com/goliatone/go-mdshelf/internal/progress"
)

type readStatusRequest struct {
	DirectoryID string `json:"directoryId"`
	FilePath    string `json:"filePath"`
	IsCompleted bool   `json:"isCompleted"`
}

type bookmarkRequest struct {
	DirectoryID  string `json:"directoryId"`
	FilePath     string `json:"filePath"`
	IsBookmarked bool   `json:"isBookmarked"`
}

type readStatusResponse struct {
	ReadStatus *progress.ReadStatus `json:"readStatus"`
}

type bookmarkResponse struct {
	Bookmark *progress.Bookmark `json:"bookmark"`
}

func (api *API) registerProgressRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "read-status"), api.handleGetProgress)
	mux.HandleFunc("POST "+joinPath(base, "read-status"), api.handleSetReadStatus)
	mux.HandleFunc("POST "+joinPath(base, "bookmarks"), api.handleSetBookmark)
}

func (api *API) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	if api.progress == nil {
		writeError(w, errServiceDisabled)
		return
	}
	raw := r.URL.Query().Get("directoryId")
	if strings.TrimSpace(raw) == "" {
		writeError(w, errDirectoryIDQuery)
		return
	}
	id, err := parseUUID(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := api.progress.ForDirectory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *API) handleSetReadStatus(w http.ResponseWriter, r *http.Request) {
	if api.progressCommands.SetReadStatus == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req readStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := directoryIDFromBody(req.DirectoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	var status *progress.ReadStatus
	err = api.progressCommands.SetReadStatus.Execute(r.Context(), progresscmd.SetReadStatusCommand{
		DirectoryID:    id,
		FilePath:       req.FilePath,
		IsCompleted:    req.IsCompleted,
		ResultCallback: func(stored *progress.ReadStatus) { status = stored },
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readStatusResponse{ReadStatus: status})
}

func (api *API) handleSetBookmark(w http.ResponseWriter, r *http.Request) {
	if api.progressCommands.SetBookmark == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req bookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := directoryIDFromBody(req.DirectoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	var bookmark *progress.Bookmark
	err = api.progressCommands.SetBookmark.Execute(r.Context(), progresscmd.SetBookmarkCommand{
		DirectoryID:    id,
		FilePath:       req.FilePath,
		IsBookmarked:   req.IsBookmarked,
		ResultCallback: func(stored *progress.Bookmark) { bookmark = stored },
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if bookmark == nil {
		writeJSON(w, http.StatusOK, successResponse{Success: true})
		return
	}
	writeJSON(w, http.StatusOK, bookmarkResponse{Bookmark: bookmark})
}

// directoryIDFromBody leaves a missing id as uuid.Nil for command
// validation to reject and reports a malformed one as an invalid id.
func directoryIDFromBody(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, nil
	}
	return parseUUID(raw)
}

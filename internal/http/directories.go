package http

import (
	"errors"
	"net/http"

	directoriescmd "github.com/goliatone/go-mdshelf/internal/commands/directories"
	"github.com/goliatone/go-mdshelf/internal/directories"
)

var errActiveFlagRequired = errors.New("isActive is required")

type createDirectoryRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type updateDirectoryRequest struct {
	IsActive *bool `json:"isActive"`
}

type directoryResponse struct {
	Directory *directories.Directory `json:"directory"`
}

func (api *API) registerDirectoryRoutes(mux *http.ServeMux, base string) {
	collection := joinPath(base, "directories")
	item := joinPath(collection, "{id}")

	mux.HandleFunc("GET "+collection, api.handleListDirectories)
	mux.HandleFunc("POST "+collection, api.handleCreateDirectory)
	mux.HandleFunc("PATCH "+item, api.handleUpdateDirectory)
	mux.HandleFunc("DELETE "+item, api.handleDeleteDirectory)
}

func (api *API) handleListDirectories(w http.ResponseWriter, r *http.Request) {
	if api.directories == nil {
		writeError(w, errServiceDisabled)
		return
	}
	listing, err := api.directories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (api *API) handleCreateDirectory(w http.ResponseWriter, r *http.Request) {
	if api.directoryCommands.Register == nil {
		writeError(w, errServiceDisabled)
		return
	}
	var req createDirectoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var dir *directories.Directory
	err := api.directoryCommands.Register.Execute(r.Context(), directoriescmd.RegisterDirectoryCommand{
		Name:           req.Name,
		Path:           req.Path,
		ResultCallback: func(stored *directories.Directory) { dir = stored },
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, directoryResponse{Directory: dir})
}

func (api *API) handleUpdateDirectory(w http.ResponseWriter, r *http.Request) {
	if api.directoryCommands.Activate == nil {
		writeError(w, errServiceDisabled)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateDirectoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.IsActive == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: errActiveFlagRequired.Error()})
		return
	}

	var dir *directories.Directory
	err = api.directoryCommands.Activate.Execute(r.Context(), directoriescmd.ActivateDirectoryCommand{
		ID:             id,
		Active:         *req.IsActive,
		ResultCallback: func(updated *directories.Directory) { dir = updated },
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, directoryResponse{Directory: dir})
}

func (api *API) handleDeleteDirectory(w http.ResponseWriter, r *http.Request) {
	if api.directoryCommands.Delete == nil {
		writeError(w, errServiceDisabled)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.directoryCommands.Delete.Execute(r.Context(), directoriescmd.DeleteDirectoryCommand{ID: id}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/directories"
	"github.com/goliatone/go-mdshelf/internal/domain"
	"github.com/goliatone/go-mdshelf/internal/library"
	"github.com/goliatone/go-mdshelf/internal/markdown"
	"github.com/goliatone/go-mdshelf/internal/progress"
)

var (
	errInvalidJSON      = errors.New("request body must be a JSON object")
	errInvalidID        = errors.New("invalid directory id")
	errServiceDisabled  = errors.New("service is not configured")
	errDirectoryIDQuery = errors.New("directory id is required")
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.Trim(strings.TrimSpace(base), "/")
	trimmedSuffix := strings.Trim(strings.TrimSpace(suffix), "/")
	switch {
	case trimmedBase == "" && trimmedSuffix == "":
		return "/"
	case trimmedBase == "":
		return "/" + trimmedSuffix
	case trimmedSuffix == "":
		return "/" + trimmedBase
	default:
		return "/" + trimmedBase + "/" + trimmedSuffix
	}
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return errInvalidJSON
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return errInvalidJSON
		}
		return errors.Join(errInvalidJSON, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError translates service and filesystem errors into a status code and
// response body.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden", Message: "invalid file path"}

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: domain.ErrNotFound.Error()}

	case errors.Is(err, domain.ErrNotADirectory),
		errors.Is(err, domain.ErrNotAFile):
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: domain.KindOf(err).Error()}

	case errors.Is(err, directories.ErrDirectoryNotFound),
		errors.Is(err, directories.ErrNoActiveDirectory):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}

	case errors.Is(err, directories.ErrDirectoryPathExists):
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}

	case errors.Is(err, errInvalidJSON),
		errors.Is(err, errInvalidID),
		errors.Is(err, errDirectoryIDQuery),
		errors.Is(err, library.ErrPathRequired),
		errors.Is(err, markdown.ErrBasePathRequired),
		errors.Is(err, directories.ErrDirectoryNameRequired),
		errors.Is(err, directories.ErrDirectoryPathRequired),
		errors.Is(err, directories.ErrDirectoryPathInvalid),
		errors.Is(err, progress.ErrDirectoryIDRequired),
		errors.Is(err, progress.ErrFilePathRequired):
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: rootMessage(err)}

	case errors.Is(err, errServiceDisabled):
		return http.StatusServiceUnavailable, errorResponse{Error: "unavailable", Message: err.Error()}

	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: validationMessage(err)}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// validationMessage reports the field errors of a rejected command rather
// than the wrapper text.
func validationMessage(err error) string {
	var wrapped *goerrors.Error
	if errors.As(err, &wrapped) && wrapped.Source != nil {
		return wrapped.Source.Error()
	}
	return err.Error()
}

// rootMessage reports the first line of joined errors so decode failures
// read as the request problem rather than the parser detail.
func rootMessage(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errInvalidID
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, errInvalidID
	}
	return parsed, nil
}

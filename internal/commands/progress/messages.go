package progresscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/progress"
)

const (
	setReadStatusMessageType = "mdshelf.progress.set_read_status"
	setBookmarkMessageType   = "mdshelf.progress.set_bookmark"
)

// SetReadStatusCommand marks a file completed or not completed.
type SetReadStatusCommand struct {
	DirectoryID uuid.UUID `json:"directoryId"`
	FilePath    string    `json:"filePath"`
	IsCompleted bool      `json:"isCompleted"`
	// ResultCallback, when set, receives the stored row.
	ResultCallback func(*progress.ReadStatus) `json:"-"`
}

// Type implements command.Message.
func (SetReadStatusCommand) Type() string { return setReadStatusMessageType }

// Validate ensures the directory and file are identified.
func (cmd SetReadStatusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DirectoryID, validation.By(requiredUUID)),
		validation.Field(&cmd.FilePath, validation.Required, validation.By(notBlankPath)),
	)
}

// SetBookmarkCommand adds or removes the bookmark on a file.
type SetBookmarkCommand struct {
	DirectoryID  uuid.UUID `json:"directoryId"`
	FilePath     string    `json:"filePath"`
	IsBookmarked bool      `json:"isBookmarked"`
	// ResultCallback receives the bookmark, or nil after a removal.
	ResultCallback func(*progress.Bookmark) `json:"-"`
}

// Type implements command.Message.
func (SetBookmarkCommand) Type() string { return setBookmarkMessageType }

// Validate ensures the directory and file are identified.
func (cmd SetBookmarkCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DirectoryID, validation.By(requiredUUID)),
		validation.Field(&cmd.FilePath, validation.Required, validation.By(notBlankPath)),
	)
}

func requiredUUID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("mdshelf.progress.directory_id_required", "directory id is required")
	}
	return nil
}

func notBlankPath(value any) error {
	if strings.TrimSpace(value.(string)) == "" {
		return validation.NewError("mdshelf.progress.file_path_required", "file path is required")
	}
	return nil
}

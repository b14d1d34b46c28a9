package directoriescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdshelf/internal/directories"
)

const (
	registerMessageType     = "mdshelf.directories.register"
	activateMessageType     = "mdshelf.directories.activate"
	deleteMessageType       = "mdshelf.directories.delete"
	syncBuiltInsMessageType = "mdshelf.directories.sync_builtins"
)

// DirectoryCallback receives the directory a command stored.
type DirectoryCallback func(*directories.Directory)

// RegisterDirectoryCommand adds a filesystem folder to the registry.
type RegisterDirectoryCommand struct {
	// Name is the display label.
	Name string `json:"name"`
	// Path is the folder location, relative paths resolve against the
	// working directory.
	Path string `json:"path"`
	// ResultCallback, when set, receives the registered directory.
	ResultCallback DirectoryCallback `json:"-"`
}

// Type implements command.Message.
func (RegisterDirectoryCommand) Type() string { return registerMessageType }

// Validate ensures name and path are present.
func (cmd RegisterDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.Required, validation.By(notBlank("name"))),
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank("path"))),
	)
}

// ActivateDirectoryCommand toggles the active flag of a directory.
type ActivateDirectoryCommand struct {
	ID     uuid.UUID `json:"id"`
	Active bool      `json:"isActive"`
	// ResultCallback, when set, receives the updated directory.
	ResultCallback DirectoryCallback `json:"-"`
}

// Type implements command.Message.
func (ActivateDirectoryCommand) Type() string { return activateMessageType }

// Validate ensures the directory id is set.
func (cmd ActivateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.By(requiredUUID)),
	)
}

// DeleteDirectoryCommand removes a directory and its progress rows.
type DeleteDirectoryCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteDirectoryCommand) Type() string { return deleteMessageType }

// Validate ensures the directory id is set.
func (cmd DeleteDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.By(requiredUUID)),
	)
}

// SyncBuiltInDirectoriesCommand registers the folders below the built-in
// root that are not yet known.
type SyncBuiltInDirectoriesCommand struct{}

// Type implements command.Message.
func (SyncBuiltInDirectoriesCommand) Type() string { return syncBuiltInsMessageType }

// Validate implements command validation; the command carries no input.
func (SyncBuiltInDirectoriesCommand) Validate() error { return nil }

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError("mdshelf.directories."+field+"_required", field+" is required")
		}
		return nil
	}
}

func invokeCallback(cb DirectoryCallback, dir *directories.Directory) {
	if cb == nil {
		return
	}
	cb(dir)
}

func requiredUUID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("mdshelf.directories.id_required", "directory id is required")
	}
	return nil
}

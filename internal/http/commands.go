package http

import (
	command "github.com/goliatone/go-command"

	directoriescmd "github.com/goliatone/go-mdshelf/internal/commands/directories"
	progresscmd "github.com/goliatone/go-mdshelf/internal/commands/progress"
)

// DirectoryCommands are the handlers behind the mutating directory routes.
type DirectoryCommands struct {
	Register command.Commander[directoriescmd.RegisterDirectoryCommand]
	Activate command.Commander[directoriescmd.ActivateDirectoryCommand]
	Delete   command.Commander[directoriescmd.DeleteDirectoryCommand]
}

// ProgressCommands are the handlers behind the read status and bookmark
// writes.
type ProgressCommands struct {
	SetReadStatus command.Commander[progresscmd.SetReadStatusCommand]
	SetBookmark   command.Commander[progresscmd.SetBookmarkCommand]
}

// WithDirectoryCommands routes directory writes through commands.
func WithDirectoryCommands(commands DirectoryCommands) Option {
	return func(api *API) {
		api.directoryCommands = commands
	}
}

// WithProgressCommands routes progress writes through commands.
func WithProgressCommands(commands ProgressCommands) Option {
	return func(api *API) {
		api.progressCommands = commands
	}
}

// defaultCommands fills missing handlers from the configured services so
// every write runs through validation and telemetry.
func (api *API) defaultCommands() {
	if api.directories != nil {
		if api.directoryCommands.Register == nil {
			api.directoryCommands.Register = directoriescmd.NewRegisterDirectoryHandler(api.directories, api.logger)
		}
		if api.directoryCommands.Activate == nil {
			api.directoryCommands.Activate = directoriescmd.NewActivateDirectoryHandler(api.directories, api.logger)
		}
		if api.directoryCommands.Delete == nil {
			api.directoryCommands.Delete = directoriescmd.NewDeleteDirectoryHandler(api.directories, api.logger)
		}
	}
	if api.progress != nil {
		if api.progressCommands.SetReadStatus == nil {
			api.progressCommands.SetReadStatus = progresscmd.NewSetReadStatusHandler(api.progress, api.logger)
		}
		if api.progressCommands.SetBookmark == nil {
			api.progressCommands.SetBookmark = progresscmd.NewSetBookmarkHandler(api.progress, api.logger)
		}
	}
}

package progresscmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdshelf/internal/commands"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/progress"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const (
	setReadStatusOperation = "progress.set_read_status"
	setBookmarkOperation   = "progress.set_bookmark"
)

var (
	_ command.Commander[SetReadStatusCommand] = (*SetReadStatusHandler)(nil)
	_ command.Commander[SetBookmarkCommand]   = (*SetBookmarkHandler)(nil)
)

// SetReadStatusHandler records completion through progress.Service.
type SetReadStatusHandler struct {
	inner *commands.Handler[SetReadStatusCommand]
}

// NewSetReadStatusHandler creates a handler bound to service.
func NewSetReadStatusHandler(service progress.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetReadStatusCommand]) *SetReadStatusHandler {
	exec := func(ctx context.Context, msg SetReadStatusCommand) error {
		status, err := service.SetCompleted(ctx, msg.DirectoryID, msg.FilePath, msg.IsCompleted)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(status)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SetReadStatusCommand]{
		commands.WithLogger[SetReadStatusCommand](logger),
		commands.WithOperation[SetReadStatusCommand](setReadStatusOperation),
		commands.WithMessageFields(func(msg SetReadStatusCommand) map[string]any {
			return map[string]any{
				logging.FieldDirectoryID: msg.DirectoryID.String(),
				logging.FieldFilePath:    msg.FilePath,
				"completed":              msg.IsCompleted,
			}
		}),
	}
	return &SetReadStatusHandler{
		inner: commands.NewHandler[SetReadStatusCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SetReadStatusCommand].
func (h *SetReadStatusHandler) Execute(ctx context.Context, msg SetReadStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SetBookmarkHandler toggles bookmarks through progress.Service.
type SetBookmarkHandler struct {
	inner *commands.Handler[SetBookmarkCommand]
}

// NewSetBookmarkHandler creates a handler bound to service.
func NewSetBookmarkHandler(service progress.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetBookmarkCommand]) *SetBookmarkHandler {
	exec := func(ctx context.Context, msg SetBookmarkCommand) error {
		bookmark, err := service.SetBookmarked(ctx, msg.DirectoryID, msg.FilePath, msg.IsBookmarked)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(bookmark)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SetBookmarkCommand]{
		commands.WithLogger[SetBookmarkCommand](logger),
		commands.WithOperation[SetBookmarkCommand](setBookmarkOperation),
		commands.WithMessageFields(func(msg SetBookmarkCommand) map[string]any {
			return map[string]any{
				logging.FieldDirectoryID: msg.DirectoryID.String(),
				logging.FieldFilePath:    msg.FilePath,
				"bookmarked":             msg.IsBookmarked,
			}
		}),
	}
	return &SetBookmarkHandler{
		inner: commands.NewHandler[SetBookmarkCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SetBookmarkCommand].
func (h *SetBookmarkHandler) Execute(ctx context.Context, msg SetBookmarkCommand) error {
	return h.inner.Execute(ctx, msg)
}

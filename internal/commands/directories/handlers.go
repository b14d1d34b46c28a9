package directoriescmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdshelf/internal/commands"
	"github.com/goliatone/go-mdshelf/internal/directories"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const (
	registerOperation     = "directories.register"
	activateOperation     = "directories.activate"
	deleteOperation       = "directories.delete"
	syncBuiltInsOperation = "directories.sync_builtins"
)

var (
	_ command.Commander[RegisterDirectoryCommand]      = (*RegisterDirectoryHandler)(nil)
	_ command.Commander[ActivateDirectoryCommand]      = (*ActivateDirectoryHandler)(nil)
	_ command.Commander[DeleteDirectoryCommand]        = (*DeleteDirectoryHandler)(nil)
	_ command.Commander[SyncBuiltInDirectoriesCommand] = (*SyncBuiltInDirectoriesHandler)(nil)
)

// RegisterDirectoryHandler registers directories through directories.Service.
type RegisterDirectoryHandler struct {
	inner *commands.Handler[RegisterDirectoryCommand]
}

// NewRegisterDirectoryHandler creates a handler bound to service.
func NewRegisterDirectoryHandler(service directories.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RegisterDirectoryCommand]) *RegisterDirectoryHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg RegisterDirectoryCommand) error {
		dir, err := service.Register(ctx, directories.RegisterInput{Name: msg.Name, Path: msg.Path})
		if err != nil {
			return err
		}
		logging.WithDirectory(logger, dir.ID.String(), dir.Path).
			Info("directories.command.register.completed", "active", dir.IsActive)
		invokeCallback(msg.ResultCallback, dir)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RegisterDirectoryCommand]{
		commands.WithLogger[RegisterDirectoryCommand](logger),
		commands.WithOperation[RegisterDirectoryCommand](registerOperation),
		commands.WithMessageFields(func(msg RegisterDirectoryCommand) map[string]any {
			return map[string]any{"name": msg.Name, logging.FieldDirectoryPath: msg.Path}
		}),
	}
	return &RegisterDirectoryHandler{
		inner: commands.NewHandler[RegisterDirectoryCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[RegisterDirectoryCommand].
func (h *RegisterDirectoryHandler) Execute(ctx context.Context, msg RegisterDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ActivateDirectoryHandler flips the active flag of a directory.
type ActivateDirectoryHandler struct {
	inner *commands.Handler[ActivateDirectoryCommand]
}

// NewActivateDirectoryHandler creates a handler bound to service.
func NewActivateDirectoryHandler(service directories.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ActivateDirectoryCommand]) *ActivateDirectoryHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg ActivateDirectoryCommand) error {
		dir, err := service.SetActive(ctx, msg.ID, msg.Active)
		if err != nil {
			return err
		}
		invokeCallback(msg.ResultCallback, dir)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ActivateDirectoryCommand]{
		commands.WithLogger[ActivateDirectoryCommand](logger),
		commands.WithOperation[ActivateDirectoryCommand](activateOperation),
		commands.WithMessageFields(func(msg ActivateDirectoryCommand) map[string]any {
			return map[string]any{logging.FieldDirectoryID: msg.ID.String(), "active": msg.Active}
		}),
	}
	return &ActivateDirectoryHandler{
		inner: commands.NewHandler[ActivateDirectoryCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ActivateDirectoryCommand].
func (h *ActivateDirectoryHandler) Execute(ctx context.Context, msg ActivateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteDirectoryHandler removes directories.
type DeleteDirectoryHandler struct {
	inner *commands.Handler[DeleteDirectoryCommand]
}

// NewDeleteDirectoryHandler creates a handler bound to service.
func NewDeleteDirectoryHandler(service directories.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteDirectoryCommand]) *DeleteDirectoryHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg DeleteDirectoryCommand) error {
		return service.Delete(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteDirectoryCommand]{
		commands.WithLogger[DeleteDirectoryCommand](logger),
		commands.WithOperation[DeleteDirectoryCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteDirectoryCommand) map[string]any {
			return map[string]any{logging.FieldDirectoryID: msg.ID.String()}
		}),
	}
	return &DeleteDirectoryHandler{
		inner: commands.NewHandler[DeleteDirectoryCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[DeleteDirectoryCommand].
func (h *DeleteDirectoryHandler) Execute(ctx context.Context, msg DeleteDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncBuiltInDirectoriesHandler registers missing built-in directories.
type SyncBuiltInDirectoriesHandler struct {
	inner *commands.Handler[SyncBuiltInDirectoriesCommand]
}

// NewSyncBuiltInDirectoriesHandler creates a handler bound to service.
func NewSyncBuiltInDirectoriesHandler(service directories.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncBuiltInDirectoriesCommand]) *SyncBuiltInDirectoriesHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, _ SyncBuiltInDirectoriesCommand) error {
		created, err := service.SyncBuiltIns(ctx)
		if err != nil {
			return err
		}
		logger.Info("directories.command.sync_builtins.completed", "registered", len(created))
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncBuiltInDirectoriesCommand]{
		commands.WithLogger[SyncBuiltInDirectoriesCommand](logger),
		commands.WithOperation[SyncBuiltInDirectoriesCommand](syncBuiltInsOperation),
	}
	return &SyncBuiltInDirectoriesHandler{
		inner: commands.NewHandler[SyncBuiltInDirectoriesCommand](exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SyncBuiltInDirectoriesCommand].
func (h *SyncBuiltInDirectoriesHandler) Execute(ctx context.Context, msg SyncBuiltInDirectoriesCommand) error {
	return h.inner.Execute(ctx, msg)
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

package logging

import (
	"context"

	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const (
	rootModule        = "mdshelf"
	libraryModule     = "mdshelf.library"
	directoriesModule = "mdshelf.directories"
	progressModule    = "mdshelf.progress"
	httpModule        = "mdshelf.http"
	commandsModule    = "mdshelf.commands"
)

// Field names shared by the module loggers.
const (
	FieldDirectoryID   = "directory_id"
	FieldDirectoryPath = "directory_path"
	FieldBasePath      = "base_path"
	FieldFilePath      = "file_path"
	FieldRequestID     = "request_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. Every entry carries the
// module name under the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LibraryLogger returns the logger used by scan, read and render.
func LibraryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, libraryModule)
}

// DirectoriesLogger returns the logger used by the directory registry.
func DirectoriesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, directoriesModule)
}

// ProgressLogger returns the logger used by read status and bookmarks.
func ProgressLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, progressModule)
}

// HTTPLogger returns the logger used by the JSON API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandLogger returns the logger for a single command handler, named
// mdshelf.commands.<name>.
func CommandLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	if name == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+name)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

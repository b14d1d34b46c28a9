package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

// WithFields attaches a copy of fields to logger. Nil loggers and empty maps
// are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	return logger.WithFields(maps.Clone(fields))
}

// WithDirectory scopes logger to a registered learning directory.
func WithDirectory(logger interfaces.Logger, directoryID, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(directoryID); trimmed != "" {
		fields[FieldDirectoryID] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[FieldDirectoryPath] = trimmed
	}
	return WithFields(logger, fields)
}

// WithFile scopes logger to a file path relative to a base directory.
func WithFile(logger interfaces.Logger, basePath, filePath string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(basePath); trimmed != "" {
		fields[FieldBasePath] = trimmed
	}
	if trimmed := strings.TrimSpace(filePath); trimmed != "" {
		fields[FieldFilePath] = trimmed
	}
	return WithFields(logger, fields)
}

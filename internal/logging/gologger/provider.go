// Package gologger backs the mdshelf logging contracts with go-logger.
package gologger

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/runtimeconfig"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const modulePrefix = "mdshelf"

// Provider hands out go-logger children named after mdshelf modules
// (mdshelf.library, mdshelf.http, mdshelf.commands.directories).
type Provider struct {
	root   *glog.BaseLogger
	level  string
	format string
	focus  []string
}

// NewProvider builds the root logger from the logging section of the
// runtime config. Focus entries may omit the "mdshelf." prefix, so
// "library" and "mdshelf.library" select the same module.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	level, err := levelFor(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, option, err := formatFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(
		glog.WithName(modulePrefix),
		glog.WithLevel(level),
		glog.WithAddSource(cfg.AddSource),
		option,
	)

	focus := moduleNames(cfg.Focus)
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, level: level, format: format, focus: focus}, nil
}

// Level reports the go-logger level in effect.
func (p *Provider) Level() string { return p.level }

// Format reports the output format in effect.
func (p *Provider) Format() string { return p.format }

// Focus lists the fully qualified module names that are allowed to log.
// Empty means every module logs.
func (p *Provider) Focus() []string { return append([]string(nil), p.focus...) }

// GetLogger returns the child logger for a module name. Blank names map to
// the root "mdshelf" logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" || name == modulePrefix {
		return &moduleLogger{inner: p.root}
	}
	return &moduleLogger{inner: p.root.GetLogger(qualify(name))}
}

type moduleLogger struct {
	inner glog.Logger
}

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields needs the go-logger FieldsLogger extension; loggers without it
// keep their current fields.
func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	withFields, ok := l.inner.(glog.FieldsLogger)
	if !ok {
		return l
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return &moduleLogger{inner: withFields.WithFields(copied)}
}

func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &moduleLogger{inner: l.inner.WithContext(ctx)}
}

func levelFor(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return glog.Info, nil
	case "trace":
		return glog.Trace, nil
	case "debug":
		return glog.Debug, nil
	case "info":
		return glog.Info, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	case "fatal":
		return glog.Fatal, nil
	default:
		return "", fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, level)
	}
}

func formatFor(format string) (string, glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", glog.LoggerTypeConsole:
		return glog.LoggerTypeConsole, glog.WithLoggerTypeConsole(), nil
	case glog.LoggerTypeJSON:
		return glog.LoggerTypeJSON, glog.WithLoggerTypeJSON(), nil
	case glog.LoggerTypePretty:
		return glog.LoggerTypePretty, glog.WithLoggerTypePretty(), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingFormatInvalid, format)
	}
}

func qualify(name string) string {
	if name == modulePrefix || strings.HasPrefix(name, modulePrefix+".") {
		return name
	}
	return modulePrefix + "." + name
}

func moduleNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		qualified := qualify(trimmed)
		if _, dup := seen[qualified]; dup {
			continue
		}
		seen[qualified] = struct{}{}
		out = append(out, qualified)
	}
	return out
}

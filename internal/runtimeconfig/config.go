package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrStorageDriverUnknown  = errors.New("mdshelf config: storage driver is invalid")
	ErrStorageDSNRequired    = errors.New("mdshelf config: storage dsn is required")
	ErrLibraryExtension      = errors.New("mdshelf config: library extension must start with a dot")
	ErrLibraryMaxDepth       = errors.New("mdshelf config: library max depth must be zero or positive")
	ErrHTTPAddrRequired      = errors.New("mdshelf config: http address is required")
	ErrHTTPTimeoutInvalid    = errors.New("mdshelf config: http timeouts must be zero or positive")
	ErrLoggingLevelInvalid   = errors.New("mdshelf config: logging level is invalid")
	ErrLoggingFormatInvalid  = errors.New("mdshelf config: logging format is invalid")
	ErrMetricsPathInvalid    = errors.New("mdshelf config: metrics path must start with a slash")
	ErrHighlightStyleMissing = errors.New("mdshelf config: highlight style is required when highlighting is enabled")
)

// Storage drivers accepted by Config.Storage.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates the runtime settings of the module. Field tags follow
// the keys used in config files and MDSHELF_ environment variables.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Library  LibraryConfig  `mapstructure:"library"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// StorageConfig selects the database holding directories and progress.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// LibraryConfig controls tree scanning and the built-in directory root.
type LibraryConfig struct {
	SkipDirs         []string `mapstructure:"skip_dirs"`
	Extension        string   `mapstructure:"extension"`
	CaseSensitiveExt bool     `mapstructure:"case_sensitive_ext"`
	CollationLocale  string   `mapstructure:"collation_locale"`
	MaxDepth         int      `mapstructure:"max_depth"`
	FollowSymlinks   bool     `mapstructure:"follow_symlinks"`
	BuiltInDir       string   `mapstructure:"builtin_dir"`
}

// MarkdownConfig mirrors interfaces.RenderOptions.
type MarkdownConfig struct {
	Extensions     []string `mapstructure:"extensions"`
	HardWraps      bool     `mapstructure:"hard_wraps"`
	SafeMode       bool     `mapstructure:"safe_mode"`
	Highlight      bool     `mapstructure:"highlight"`
	HighlightStyle string   `mapstructure:"highlight_style"`
}

// HTTPConfig configures the JSON API server.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	BasePath     string        `mapstructure:"base_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig captures go-logger options. A disabled logger yields no-op
// module loggers.
type LoggingConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// MetricsConfig toggles the prometheus collectors and their endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			DSN:         "file:mdshelf.db?cache=shared&_fk=1",
			AutoMigrate: true,
		},
		Library: LibraryConfig{
			SkipDirs:        []string{"node_modules"},
			Extension:       ".md",
			CollationLocale: "en",
			MaxDepth:        256,
			FollowSymlinks:  true,
			BuiltInDir:      "learning",
		},
		Markdown: MarkdownConfig{
			Extensions:     []string{"gfm"},
			Highlight:      true,
			HighlightStyle: "github",
		},
		HTTP: HTTPConfig{
			Addr:         "127.0.0.1:3000",
			BasePath:     "/api",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Format:  "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}

	if ext := strings.TrimSpace(cfg.Library.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %q", ErrLibraryExtension, ext)
	}
	if cfg.Library.MaxDepth < 0 {
		return ErrLibraryMaxDepth
	}

	if cfg.Markdown.Highlight && strings.TrimSpace(cfg.Markdown.HighlightStyle) == "" {
		return ErrHighlightStyleMissing
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.WriteTimeout < 0 {
		return ErrHTTPTimeoutInvalid
	}

	if cfg.Logging.Enabled {
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(strings.TrimSpace(cfg.Metrics.Path), "/") {
		return fmt.Errorf("%w: %q", ErrMetricsPathInvalid, cfg.Metrics.Path)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

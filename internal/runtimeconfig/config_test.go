package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-mdshelf/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "unknown storage driver",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Driver = "mysql" },
			want:   runtimeconfig.ErrStorageDriverUnknown,
		},
		{
			name:   "blank dsn",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.DSN = " " },
			want:   runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name:   "extension without dot",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Library.Extension = "md" },
			want:   runtimeconfig.ErrLibraryExtension,
		},
		{
			name:   "negative depth",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Library.MaxDepth = -1 },
			want:   runtimeconfig.ErrLibraryMaxDepth,
		},
		{
			name:   "highlight without style",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Markdown.HighlightStyle = "" },
			want:   runtimeconfig.ErrHighlightStyleMissing,
		},
		{
			name:   "missing addr",
			mutate: func(cfg *runtimeconfig.Config) { cfg.HTTP.Addr = "" },
			want:   runtimeconfig.ErrHTTPAddrRequired,
		},
		{
			name:   "negative timeout",
			mutate: func(cfg *runtimeconfig.Config) { cfg.HTTP.WriteTimeout = -time.Second },
			want:   runtimeconfig.ErrHTTPTimeoutInvalid,
		},
		{
			name:   "bad logging level",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "loud" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name:   "bad logging format",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Format = "xml" },
			want:   runtimeconfig.ErrLoggingFormatInvalid,
		},
		{
			name:   "relative metrics path",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Metrics.Path = "metrics" },
			want:   runtimeconfig.ErrMetricsPathInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidateSkipsDisabledSections(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Enabled = false
	cfg.Logging.Format = "xml"
	cfg.Metrics.Enabled = false
	cfg.Metrics.Path = ""
	cfg.Markdown.Highlight = false
	cfg.Markdown.HighlightStyle = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled sections to be ignored, got %v", err)
	}
}

func TestConfigValidateAcceptsPostgres(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "Postgres"
	cfg.Storage.DSN = "postgres://mdshelf@localhost/mdshelf?sslmode=disable"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-mdshelf"
)

const envPrefix = "MDSHELF"

// loadConfig merges defaults, the optional config file, MDSHELF_* variables
// and bound flags, in increasing precedence.
func loadConfig(cmd *cobra.Command, configFile string) (mdshelf.Config, error) {
	v := viper.New()
	setDefaults(v, mdshelf.DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return mdshelf.Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("mdshelf")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return mdshelf.Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := bindFlags(v, cmd); err != nil {
		return mdshelf.Config{}, err
	}

	var cfg mdshelf.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return mdshelf.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"db-driver":   "storage.driver",
	"db-dsn":      "storage.dsn",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"builtin-dir": "library.builtin_dir",
	"addr":        "http.addr",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	if quiet, err := cmd.Flags().GetBool("quiet"); err == nil && quiet {
		v.Set("logging.enabled", false)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg mdshelf.Config) {
	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.dsn", cfg.Storage.DSN)
	v.SetDefault("storage.auto_migrate", cfg.Storage.AutoMigrate)

	v.SetDefault("library.skip_dirs", cfg.Library.SkipDirs)
	v.SetDefault("library.extension", cfg.Library.Extension)
	v.SetDefault("library.case_sensitive_ext", cfg.Library.CaseSensitiveExt)
	v.SetDefault("library.collation_locale", cfg.Library.CollationLocale)
	v.SetDefault("library.max_depth", cfg.Library.MaxDepth)
	v.SetDefault("library.follow_symlinks", cfg.Library.FollowSymlinks)
	v.SetDefault("library.builtin_dir", cfg.Library.BuiltInDir)

	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safe_mode", cfg.Markdown.SafeMode)
	v.SetDefault("markdown.highlight", cfg.Markdown.Highlight)
	v.SetDefault("markdown.highlight_style", cfg.Markdown.HighlightStyle)

	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.base_path", cfg.HTTP.BasePath)
	v.SetDefault("http.read_timeout", cfg.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", cfg.HTTP.WriteTimeout)

	v.SetDefault("logging.enabled", cfg.Logging.Enabled)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}

// Package cli implements the mdshelf command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdshelf"
	"github.com/goliatone/go-mdshelf/internal/di"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree so tests can execute commands in isolation.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "mdshelf",
		Short:         "A local library for markdown learning material",
		Long:          `mdshelf browses folders of markdown files, renders them and tracks reading progress.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a config file (default ./mdshelf.{yaml,json,toml})")
	flags.String("db-driver", "", "storage driver: sqlite or postgres")
	flags.String("db-dsn", "", "storage data source name")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.Bool("quiet", false, "disable logging")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newScanCommand(opts),
		newReadCommand(opts),
		newRenderCommand(opts),
		newDirsCommand(opts),
		newMigrateCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// openModule loads the merged configuration and constructs the module.
func openModule(cmd *cobra.Command, opts *rootOptions, extra ...di.Option) (*mdshelf.Module, error) {
	cfg, err := loadConfig(cmd, opts.configFile)
	if err != nil {
		return nil, err
	}
	return mdshelf.New(cfg, extra...)
}

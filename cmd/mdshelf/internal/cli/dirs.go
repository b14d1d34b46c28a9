package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdshelf"
	directoriescmd "github.com/goliatone/go-mdshelf/internal/commands/directories"
)

func newDirsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirs",
		Short: "Manage registered directories",
	}
	cmd.PersistentFlags().String("builtin-dir", "", "folder whose children are synced as built-in directories")
	cmd.AddCommand(
		newDirsListCommand(opts),
		newDirsAddCommand(opts),
		newDirsActivateCommand(opts),
		newDirsRemoveCommand(opts),
		newDirsSyncCommand(opts),
	)
	return cmd
}

// openRegistry builds a module over the configured database and applies
// auto migration and the built-in sync before any registry command runs.
func openRegistry(cmd *cobra.Command, opts *rootOptions) (*mdshelf.Module, error) {
	module, err := openModule(cmd, opts)
	if err != nil {
		return nil, err
	}
	if err := module.Bootstrap(cmd.Context()); err != nil {
		module.Close()
		return nil, err
	}
	return module, nil
}

func newDirsListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered directories with progress counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			listing, err := module.Directories().List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, listing)
			}
			if len(listing.Directories) == 0 {
				fmt.Fprintln(out, MutedStyle.Render("no directories registered"))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tNAME\tPATH\tCOMPLETED\tBOOKMARKS")
			for _, dir := range listing.Directories {
				marker := " "
				if dir.IsActive {
					marker = "*"
				}
				name := dir.Name
				if dir.IsBuiltIn {
					name += " (built-in)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
					marker, dir.ID, name, dir.Path, dir.CompletedCount, dir.BookmarkCount)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newDirsAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			msg := directoriescmd.RegisterDirectoryCommand{Name: args[0], Path: args[1]}
			if err := module.Commands().RegisterDirectory.Execute(cmd.Context(), msg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("registered "+args[0]))
			return nil
		},
	}
}

func newDirsActivateCommand(opts *rootOptions) *cobra.Command {
	var inactive bool
	cmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Mark a directory as the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid directory id %q: %w", args[0], err)
			}

			module, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			msg := directoriescmd.ActivateDirectoryCommand{ID: id, Active: !inactive}
			if err := module.Commands().ActivateDirectory.Execute(cmd.Context(), msg); err != nil {
				return err
			}
			state := "activated"
			if inactive {
				state = "deactivated"
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(state+" "+id.String()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&inactive, "inactive", false, "clear the active flag instead")
	return cmd
}

func newDirsRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a directory and its progress records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid directory id %q: %w", args[0], err)
			}

			module, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			if err := module.Commands().DeleteDirectory.Execute(cmd.Context(), directoriescmd.DeleteDirectoryCommand{ID: id}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("removed "+id.String()))
			return nil
		},
	}
}

func newDirsSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Register the sub-directories of the built-in folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			listing, err := module.Directories().List(cmd.Context())
			if err != nil {
				return err
			}
			builtIns := 0
			for _, dir := range listing.Directories {
				if dir.IsBuiltIn {
					builtIns++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("%d built-in directories registered", builtIns)))
			return nil
		},
	}
}

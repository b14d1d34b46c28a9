package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdshelf"
	"github.com/goliatone/go-mdshelf/internal/di"
	"github.com/goliatone/go-mdshelf/internal/tree"
)

// openLibrary builds a module without a database; the library operations
// only touch the filesystem.
func openLibrary(cmd *cobra.Command, opts *rootOptions) (*mdshelf.Module, error) {
	return openModule(cmd, opts, di.WithMemoryStorage())
}

func newScanCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Print the markdown tree of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openLibrary(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			result, err := module.Library().Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, result)
			}

			fmt.Fprintln(out, TitleStyle.Render(result.BasePath))
			renderTree(out, result.Tree)
			folders, files := tree.Counts(result.Tree)
			fmt.Fprintln(out, MutedStyle.Render(fmt.Sprintf("\n%d folders, %d files", folders, files)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newReadCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "read <base> <file>",
		Short: "Print a markdown file and its frontmatter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openLibrary(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			file, err := module.Library().Read(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, file)
			}
			renderFrontMatter(out, file.FrontMatter)
			fmt.Fprint(out, file.Content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <base> <file>",
		Short: "Print the HTML rendering of a markdown file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openLibrary(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			rendered, err := module.Library().Render(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered.HTML)
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var status, rollback bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := openModule(cmd, opts)
			if err != nil {
				return err
			}
			defer module.Close()

			out := cmd.OutOrStdout()
			if status {
				rows, err := module.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}
				for _, row := range rows {
					mark := MutedStyle.Render("pending")
					if row.Applied {
						mark = SuccessStyle.Render("applied")
					}
					fmt.Fprintf(out, "%-8s %s\n", mark, row.Name)
				}
				return nil
			}

			if rollback {
				reverted, err := module.Rollback(cmd.Context())
				if err != nil {
					return err
				}
				if len(reverted) == 0 {
					fmt.Fprintln(out, MutedStyle.Render("nothing to roll back"))
				}
				for _, name := range reverted {
					fmt.Fprintln(out, SuccessStyle.Render("rolled back ")+name)
				}
				return nil
			}

			applied, err := module.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, MutedStyle.Render("database is up to date"))
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(out, SuccessStyle.Render("applied ")+name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "list migrations and whether they are applied")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "revert the last applied migration group")
	return cmd
}

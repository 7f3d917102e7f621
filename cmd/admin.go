package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"coursereg/registrar"
)

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Registrar staff views",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "enrollments",
		Short: "List every enrollment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(e, registrar.PageAdmin); err != nil {
				return err
			}
			roster := e.app.Roster(context.Background())
			if roster.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), roster.Message)
				return nil
			}
			renderRoster(cmd.OutOrStdout(), roster.Rows)
			return nil
		},
	})
	return cmd
}

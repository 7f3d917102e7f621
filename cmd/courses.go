package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"coursereg/registrar"
)

func newCoursesCmd(e *env) *cobra.Command {
	var filter registrar.Filter
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List course sections, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(e, registrar.PageBrowse); err != nil {
				return err
			}
			cards := e.app.Cards(filter)
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sections match the current filters.")
				return nil
			}
			renderCards(cmd.OutOrStdout(), cards)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match title or course code")
	cmd.Flags().StringVar(&filter.Subject, "subject", "", "exact subject, e.g. CS")
	cmd.Flags().StringVar(&filter.Credits, "credits", "", "exact credit count")
	cmd.Flags().StringVar(&filter.Day, "day", "", "meeting day code")
	cmd.Flags().StringVar(&filter.Term, "term", "", "term code, e.g. FALL2024")
	return cmd
}

// bootstrap runs the page-load flow and turns its failures into messages
// fit for the terminal.
func bootstrap(e *env, page registrar.Page) error {
	err := e.app.Bootstrap(context.Background(), page)
	if errors.Is(err, registrar.ErrSignInRequired) {
		return errors.New(msgNotSignedIn)
	}
	return err
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"coursereg/registrar"
)

func newScheduleCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show and change your term schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSchedule(cmd, e)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your schedule",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSchedule(cmd, e)
			},
		},
		&cobra.Command{
			Use:   "add <section-id>",
			Short: "Add a section to your schedule",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseSectionID(args[0])
				if err != nil {
					return err
				}
				if err := bootstrap(e, registrar.PageBrowse); err != nil {
					return err
				}
				return report(cmd, e.app.Workflow.Add(context.Background(), id), "Added section "+args[0]+".")
			},
		},
		&cobra.Command{
			Use:   "remove <section-id>",
			Short: "Remove a section from your schedule",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseSectionID(args[0])
				if err != nil {
					return err
				}
				if err := bootstrap(e, registrar.PageSchedule); err != nil {
					return err
				}
				return report(cmd, e.app.Workflow.Remove(context.Background(), id), "Removed section "+args[0]+".")
			},
		},
		newClearCmd(e),
		&cobra.Command{
			Use:   "confirm",
			Short: "Confirm your schedule with the registrar",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := bootstrap(e, registrar.PageSchedule); err != nil {
					return err
				}
				return report(cmd, e.app.Workflow.Confirm(context.Background()), "")
			},
		},
	)
	return cmd
}

func newClearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every section from your schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(e, registrar.PageSchedule); err != nil {
				return err
			}
			if !yes {
				prompt := promptui.Prompt{
					Label:     "Remove all courses from your schedule",
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			return report(cmd, e.app.Workflow.ClearAll(context.Background()), "Schedule cleared.")
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func showSchedule(cmd *cobra.Command, e *env) error {
	if err := bootstrap(e, registrar.PageSchedule); err != nil {
		return err
	}
	view := e.app.ScheduleView()
	if view.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), view.Message)
		return nil
	}
	renderSchedule(cmd.OutOrStdout(), view.Rows)
	return nil
}

// report prints a successful outcome's message, or success when it carries
// none, and turns a failed outcome into the command error.
func report(cmd *cobra.Command, outcome registrar.Outcome, success string) error {
	if !outcome.OK {
		return errors.New(outcome.Message)
	}
	msg := outcome.Message
	if msg == "" {
		msg = success
	}
	if msg != "" {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return nil
}

func parseSectionID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid section id %q", raw)
	}
	return id, nil
}

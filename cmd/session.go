package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coursereg/service"
	"coursereg/store"
)

const (
	msgLoginFailed     = "Invalid email or password."
	msgLoginUnexpected = "Unexpected error. Please try again."
	msgNotSignedIn     = "You must be logged in."
)

func newLoginCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if strings.TrimSpace(email) == "" {
				if email, err = promptEmail(); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(); err != nil {
					return err
				}
			}

			input, err := service.ValidateLogin(email, password)
			if err != nil {
				return err
			}

			user, err := e.client.Login(context.Background(), input.Email, input.Password)
			if err != nil {
				e.logger.Info("login_failed", zap.Error(err))
				if service.IsTransport(err) {
					return errors.New(msgLoginUnexpected)
				}
				return errors.New(service.ServerMessage(err, msgLoginFailed))
			}
			if err := store.SetUser(user); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in. Hi, %s!\n", store.DisplayName(&user))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.ClearUser(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := store.GetUser()
			if err != nil {
				return err
			}
			if user == nil {
				return errors.New(msgNotSignedIn)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> • %s\n", store.DisplayName(user), user.Email, store.CurrentRole())
			return nil
		},
	}
}

func promptEmail() (string, error) {
	prompt := promptui.Prompt{
		Label: "Email",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("email is required")
			}
			return nil
		},
	}
	return prompt.Run()
}

func promptPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '•',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("password is required")
			}
			return nil
		},
	}
	return prompt.Run()
}

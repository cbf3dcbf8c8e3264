// Command createadmin creates the site administrator, or resets the password and
// admin flag of an existing account.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"portfolio/internal/config"
	"portfolio/internal/logging"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/service"
)

const minPasswordLength = 8

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.Default().Error("createadmin failed", logging.FieldError, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:           "createadmin",
		Short:         "Create or reset the admin account",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PORTFOLIO_ADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimSpace(line)
			}
			if len(password) < minPasswordLength {
				return errors.New("password must be at least 8 characters")
			}
			return run(cmd, email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (or PORTFOLIO_ADMIN_PASSWORD, or prompt)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func run(cmd *cobra.Command, email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format))

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	auth := service.NewAuthService(postgres.NewUserRepo(db), cfg.JWT)
	user, created, err := auth.EnsureAdmin(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	verb := "updated"
	if created {
		verb = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s (%s)\n", verb, user.Email, user.ID)
	return nil
}

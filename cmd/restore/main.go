// Command restore loads a backup workbook produced by the admin export into the
// database. Records whose slug already exists are left untouched.
// Usage: go run ./cmd/restore backup.xlsx [--dry-run]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio/internal/config"
	"portfolio/internal/logging"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/service"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.Default().Error("restore failed", logging.FieldError, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:           "restore <workbook.xlsx>",
		Short:         "Restore projects, categories and posts from a backup workbook",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count records without writing")
	return cmd
}

func run(cmd *cobra.Command, path string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format))

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	exports := service.NewExportService(
		postgres.NewProjectRepo(db),
		postgres.NewCategoryRepo(db),
		postgres.NewPostRepo(db),
		nil, nil,
	)
	res, err := exports.Import(cmd.Context(), f, dryRun)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "projects: %d, categories: %d, posts: %d, skipped: %d, dry run: %v\n",
		res.Projects, res.Categories, res.Posts, res.Skipped, dryRun)
	return nil
}

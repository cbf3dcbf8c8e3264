// Command backfill fills missing English fields of existing projects and posts.
// Usage: go run ./cmd/backfill [--all] [--dry-run]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"portfolio/internal/app"
	"portfolio/internal/config"
	"portfolio/internal/logging"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/service"
	s3storage "portfolio/internal/storage/s3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.Default().Error("backfill failed", logging.FieldError, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts service.BackfillOptions

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Translate content whose English fields are missing",
		Long: `Translate every project and post that has an empty English field.

With --all every record is retranslated from its Spanish text.
With --dry-run the records are counted but not changed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.All, "all", false, "Retranslate every record")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Count records without translating")
	return cmd
}

func run(ctx context.Context, opts service.BackfillOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format))

	tr, err := app.NewTranslator(&cfg.Translation)
	if err != nil {
		return err
	}
	if tr == nil && !opts.DryRun {
		return errors.New("no translation provider is configured")
	}
	notifier, err := app.NewNotifier(&cfg.Email)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	translationSvc := service.NewTranslationService(tr, notifier, cfg.Translation)
	imageSvc := service.NewImageService(storage, &cfg.S3)
	backfill := service.NewBackfillService(
		service.NewProjectService(postgres.NewProjectRepo(db), translationSvc, imageSvc),
		service.NewPostService(postgres.NewPostRepo(db), translationSvc, imageSvc),
	)

	res, err := backfill.Backfill(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("projects: %d, posts: %d, failed: %d, dry run: %v\n", res.Projects, res.Posts, res.Failed, opts.DryRun)
	if res.Failed > 0 {
		return fmt.Errorf("%d records failed to translate", res.Failed)
	}
	return nil
}

// Package bootstrap provides dependency initialization for the media
// toolkit API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/maauso/media-toolkit-api/internal/config"
	"github.com/maauso/media-toolkit-api/internal/engine"
	"github.com/maauso/media-toolkit-api/internal/fetch"
	"github.com/maauso/media-toolkit-api/internal/job"
	"github.com/maauso/media-toolkit-api/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	JobService *job.Service
	Publisher  *storage.Publisher
	// Cron is the retention scheduler; nil when cleanup is disabled.
	Cron *cron.Cron
}

// NewDependencies creates and initializes all dependencies for the
// application. Both on-disk directories are created here if absent.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	fetcher, err := fetch.NewFetcher(cfg.TempDir, cfg.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	publisher, err := storage.NewPublisher(cfg.FilesDir)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	runner := engine.NewRunner(cfg.FFmpegPath, cfg.FFprobePath,
		engine.WithMaxConcurrentTransforms(cfg.MaxConcurrentTransforms),
		engine.WithTimeout(cfg.EngineTimeout),
		engine.WithLogger(logger),
	)

	var opts []job.Option
	if cfg.S3Enabled() {
		mirror, err := storage.NewS3Mirror(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 mirror: %w", err)
		}
		logger.Info("S3 mirror configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		opts = append(opts, job.WithMirror(mirror))
	}

	svc := job.NewService(fetcher, runner, publisher, logger, opts...)

	scheduler, err := newRetentionScheduler(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		JobService: svc,
		Publisher:  publisher,
		Cron:       scheduler,
	}, nil
}

// newRetentionScheduler builds the cron scheduler sweeping stale files
// from the temp and served directories. Returns nil when no schedule is
// configured; downloaded inputs and published artifacts then accumulate
// indefinitely.
func newRetentionScheduler(cfg *config.Config, logger *slog.Logger) (*cron.Cron, error) {
	if !cfg.CleanupEnabled() {
		return nil, nil
	}

	c := cron.New()
	sweep := func() {
		for _, dir := range []string{cfg.TempDir, cfg.FilesDir} {
			removed, err := storage.SweepOld(dir, cfg.RetentionMaxAge, logger)
			if err != nil {
				logger.Error("retention sweep failed",
					slog.String("dir", dir),
					slog.String("error", err.Error()),
				)
				continue
			}
			if removed > 0 {
				logger.Info("retention sweep removed files",
					slog.String("dir", dir),
					slog.Int("removed", removed),
				)
			}
		}
	}

	if _, err := c.AddFunc(cfg.CleanupSchedule, sweep); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", cfg.CleanupSchedule, err)
	}

	logger.Info("retention sweep scheduled",
		slog.String("schedule", cfg.CleanupSchedule),
		slog.Duration("max_age", cfg.RetentionMaxAge),
	)
	return c, nil
}

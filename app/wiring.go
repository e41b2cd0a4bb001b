package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/config"
	"github.com/ayoisaiah/ultradian/internal/lifecycle"
	"github.com/ayoisaiah/ultradian/internal/notify"
	"github.com/ayoisaiah/ultradian/internal/pathutil"
	"github.com/ayoisaiah/ultradian/internal/record"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/store"
)

var errAlreadyRunning = &apperr.Error{
	Message: "today's session is open in another terminal: %s",
}

// VibeScorer provides the external wellness score.
type VibeScorer interface {
	GetVibeScore(ctx context.Context) (*record.VibeScore, error)
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(path),
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)
}

func openStore(cfg *config.Config) (store.DB, error) {
	backend := store.Backend(cfg.Settings.Storage)

	path := pathutil.DBFilePath()
	if backend == store.BackendDisk {
		path = pathutil.StoreDirPath()
	}

	return store.Open(backend, path)
}

func newRecordClient(cfg *config.Config) *record.Client {
	return record.New(cfg.API.BaseURL, cfg.Credentials())
}

// newNotifier assembles the alerts configured for phase changes. Desktop
// notifications look for their icon under appDir.
func newNotifier(cfg *config.Config, appDir string) notify.Notifier {
	var m notify.Multi

	if cfg.Notifications.Enabled {
		m = append(m, notify.NewDesktop(appDir, cfg.ClockLayout()))

		if cfg.Notifications.Sound != "" {
			m = append(m, &notify.Sound{Path: cfg.Notifications.Sound})
		}
	}

	if cfg.Settings.Cmd != "" {
		m = append(m, &notify.Command{Cmd: cfg.Settings.Cmd})
	}

	if len(m) == 0 {
		return notify.Nop{}
	}

	return m
}

// todaysPlan resolves the plan for the session starting on the day of now.
// Today's baseline wake time replaces the configured one unless --wake was
// given, and the vibe score picks the cycle count when enabled and --cycles
// was not given. Either lookup failing leaves the configured value.
func todaysPlan(
	ctx context.Context,
	cfg *config.Config,
	baselines store.BaselineStore,
	vibe VibeScorer,
	now time.Time,
) session.Plan {
	plan := cfg.Plan()

	if !cfg.CLI.WakeTimeSet && baselines != nil {
		b, err := baselines.Baseline(now)
		if err != nil {
			slog.WarnContext(ctx, "reading today's baseline failed",
				slog.Any("error", err),
			)
		}

		if b != nil && b.WakeTime != "" {
			plan.WakeTime = b.WakeTime
		}
	}

	if cfg.Settings.RecommendCycles && !cfg.CLI.CyclesSet && vibe != nil {
		v, err := vibe.GetVibeScore(ctx)
		if err != nil {
			slog.WarnContext(ctx, "fetching vibe score failed",
				slog.Any("error", err),
			)

			return plan
		}

		plan.Cycles = lifecycle.RecommendCycles(v.Score)

		slog.InfoContext(ctx, "cycles recommended from vibe score",
			slog.Int("cycles", plan.Cycles),
			slog.String("zone", v.Zone),
		)
	}

	return plan
}

package service

import (
	"context"
	"time"

	"github.com/lshigami/ExamPortal/config"
	"github.com/lshigami/ExamPortal/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// ExpirySweeper periodically force-submits attempts whose clients never
// submitted, e.g. because the browser was closed mid-exam.
type ExpirySweeper struct {
	attempts AttemptService
	cron     *cron.Cron
	schedule string
}

func NewExpirySweeper(attempts AttemptService, cfg *config.Config) *ExpirySweeper {
	cronLog := cron.PrintfLogger(logger.Printf{Level: zerolog.WarnLevel, Component: "cron"})
	return &ExpirySweeper{
		attempts: attempts,
		cron:     cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.SkipIfStillRunning(cronLog))),
		schedule: cfg.Attempt.SweeperSchedule,
	}
}

// RunOnce sweeps a single time.
func (s *ExpirySweeper) RunOnce(ctx context.Context) {
	n, err := s.attempts.ExpireOverdue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Expiry sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int("expired", n).Msg("Expiry sweep submitted overdue attempts")
	}
}

// RegisterExpirySweeper ties the cron schedule to the application lifecycle.
func RegisterExpirySweeper(lc fx.Lifecycle, s *ExpirySweeper) error {
	if s.schedule == "" || s.schedule == "off" {
		log.Info().Msg("Expiry sweeper disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.cron.Start()
			log.Info().Str("schedule", s.schedule).Msg("Expiry sweeper started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-s.cron.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

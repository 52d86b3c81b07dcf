// Package jobs owns the scheduled maintenance work: expired-token purges
// and the weekly/monthly leaderboard resets.
package jobs

import (
	"log/slog"

	"github.com/recycletrack/recycletrack-backend/internal/services"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron         *cron.Cron
	auth         *services.AuthService
	gamification *services.GamificationService
}

func NewScheduler(auth *services.AuthService, gamification *services.GamificationService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		auth:         auth,
		gamification: gamification,
	}
}

func (s *Scheduler) Start() error {
	// Daily token purge at 03:00.
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		deleted, err := s.auth.PurgeExpiredTokens()
		if err != nil {
			slog.Error("token purge failed", "error", err)
			return
		}
		if deleted > 0 {
			slog.Info("expired refresh tokens purged", "deleted", deleted)
		}
	}); err != nil {
		return err
	}

	// Weekly points reset, Monday 00:00.
	if _, err := s.cron.AddFunc("0 0 * * 1", func() {
		if err := s.gamification.ResetWeeklyPoints(); err != nil {
			slog.Error("weekly points reset failed", "error", err)
			return
		}
		slog.Info("weekly points reset")
	}); err != nil {
		return err
	}

	// Monthly points reset, first of the month 00:00.
	if _, err := s.cron.AddFunc("0 0 1 * *", func() {
		if err := s.gamification.ResetMonthlyPoints(); err != nil {
			slog.Error("monthly points reset failed", "error", err)
			return
		}
		slog.Info("monthly points reset")
	}); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("cron scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

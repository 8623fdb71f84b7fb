package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gyansetu/internal/repository"
)

// SessionSweeper periodically removes expired sessions from storage.
type SessionSweeper struct {
	sessions repository.SessionRepository
	interval time.Duration
	lg       *zap.Logger
	now      func() time.Time
}

func NewSessionSweeper(sessions repository.SessionRepository, interval time.Duration, lg *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionSweeper{sessions: sessions, interval: interval, lg: lg, now: time.Now}
}

func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	removed, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		s.lg.Error("sweep expired sessions", zap.Error(err))
		return 0, err
	}
	if removed > 0 {
		s.lg.Info("expired sessions removed", zap.Int("count", removed))
	}
	return removed, nil
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	_, _ = s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Sweep(ctx)
		}
	}
}

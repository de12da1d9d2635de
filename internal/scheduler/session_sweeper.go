package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// ExpiredKeyLister is implemented by stores that cannot expire keys on
// their own. Redis evicts natively, so the sweeper only runs against the
// in-memory store.
type ExpiredKeyLister interface {
	ExpiredKeys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, keys ...string) error
}

// SessionSweeper periodically reclaims session cache entries whose TTL
// has lapsed.
type SessionSweeper struct {
	cron  *cron.Cron
	store ExpiredKeyLister
}

func NewSessionSweeper(store ExpiredKeyLister) *SessionSweeper {
	return &SessionSweeper{
		cron:  cron.New(),
		store: store,
	}
}

// Start schedules the sweep every 15 minutes.
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc("*/15 * * * *", s.Sweep)
	if err != nil {
		logger.Error("Failed to schedule session sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Session sweeper started (every 15 minutes)", nil)
	return nil
}

// Sweep deletes all expired session keys. Exposed so tests and shutdown
// paths can run it directly.
func (s *SessionSweeper) Sweep() {
	ctx := context.Background()

	keys, err := s.store.ExpiredKeys(ctx, cache.SessionKeyPrefix)
	if err != nil {
		logger.Error("Failed to list expired session keys", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.store.Delete(ctx, keys...); err != nil {
		logger.Error("Failed to delete expired session keys", err)
		return
	}

	logger.Info("Swept expired session keys", map[string]interface{}{
		"count": len(keys),
	})
}

func (s *SessionSweeper) Stop() {
	s.cron.Stop()
	logger.Info("Session sweeper stopped", nil)
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/observability/metrics"
	"github.com/aussiebroadwan/accounts/internal/account/store"
)

// HousekeepingService periodically clears verification links older than the
// link TTL. Accounts stay unverified; only the link sub-record is removed.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	LinkTTL  time.Duration
	Metrics  *metrics.Metrics

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Non-positive
// interval defaults to 1 hour and non-positive ttl to DefaultLinkTTL.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, ttl time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		LinkTTL:  ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval), slog.Duration("link_ttl", s.LinkTTL))
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background(), time.Now().UTC())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background(), time.Now().UTC())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup clears links created before now minus the TTL.
func (s *HousekeepingService) Cleanup(ctx context.Context, now time.Time) int64 {
	cutoff := now.Add(-s.LinkTTL)

	n, err := s.Store.Accounts().DeleteExpiredLinks(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired verification links", slog.Any("error", err))
		return 0
	}

	s.Metrics.LinksExpired(n)
	s.Logger.Info("housekeeping cleanup completed", slog.Int64("expired_links", n), slog.Time("cutoff", cutoff))
	return n
}

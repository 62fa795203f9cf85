package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure KeepaliveService implements the interface.
var _ driving.KeepaliveService = (*KeepaliveService)(nil)

// DefaultKeepaliveInterval is how long the database may sit idle before
// the next keepalive query. Hosted free tiers typically suspend after a
// week, so five days leaves slack.
const DefaultKeepaliveInterval = 5 * 24 * time.Hour

// KeepaliveService stops a hosted database from idling out. The last
// ping time is process-wide state guarded by a mutex so concurrent
// requests cannot double-ping.
type KeepaliveService struct {
	db       driven.Pinger
	interval time.Duration

	mu       sync.Mutex
	lastPing time.Time
}

// NewKeepaliveService creates a keepalive service. A non-positive
// interval falls back to the default.
func NewKeepaliveService(db driven.Pinger, interval time.Duration) *KeepaliveService {
	if interval <= 0 {
		interval = DefaultKeepaliveInterval
	}
	return &KeepaliveService{db: db, interval: interval}
}

// Ping runs the keepalive query if the interval has elapsed. It
// reports whether a query was actually issued and the time of the last
// successful ping.
func (s *KeepaliveService) Ping(ctx context.Context) (bool, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if !s.lastPing.IsZero() && now.Sub(s.lastPing) < s.interval {
		return false, s.lastPing, nil
	}

	if err := s.db.Ping(ctx); err != nil {
		return false, s.lastPing, fmt.Errorf("keepalive ping: %w", err)
	}

	s.lastPing = now
	slog.Info("database keepalive ping succeeded", "at", now)
	return true, now, nil
}

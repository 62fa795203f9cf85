package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// StatsService aggregates dashboard counters.
type StatsService interface {
	// Dashboard gathers the counters concurrently and returns them as
	// one snapshot.
	Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error)
}

package driving

import (
	"context"
	"time"
)

// KeepaliveService stops a hosted database from idling out by running a
// trivial query when enough time has passed since the last one.
type KeepaliveService interface {
	// Ping runs the keepalive query if the interval has elapsed.
	// It reports whether a query was actually issued and the time of
	// the last successful ping.
	Ping(ctx context.Context) (bool, time.Time, error)
}

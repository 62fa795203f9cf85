package driven

import "context"

// Pinger issues a trivial query against the database. The keepalive
// service uses it to stop hosted databases from idling out.
type Pinger interface {
	Ping(ctx context.Context) error
}

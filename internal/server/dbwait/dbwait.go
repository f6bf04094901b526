// Package dbwait blocks startup until the database accepts connections.
// Postgres in a fresh container takes a few seconds to become ready, so
// the server and the admin tool probe it before doing any real work.
package dbwait

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Pinger is the subset of *sql.DB needed to probe readiness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Wait pings the database every interval until it responds, the timeout
// elapses, or ctx is cancelled.
func Wait(ctx context.Context, db Pinger, interval, timeout time.Duration) error {
	backoff := retry.WithMaxDuration(timeout, retry.NewConstant(interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return nil
}

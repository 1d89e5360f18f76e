package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Every store call is bounded by this timeout on top of whatever
// deadline the request context already carries.
const queryTimeout = 5 * time.Second

// writeContext bounds a store mutation. Mutations are never retried;
// the order-creation path has no idempotency key.
func writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// readWithRetry bounds a read and retries it once on a transient
// failure. Reads are idempotent so the retry is safe. Not-found
// results and caller cancellation are returned immediately.
func readWithRetry(ctx context.Context, query func(ctx context.Context) error) error {
	attempt := func() error {
		rctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		return query(rctx)
	}

	err := attempt()
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) || ctx.Err() != nil {
		return err
	}
	return attempt()
}

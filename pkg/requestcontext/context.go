// Package requestcontext carries request-scoped values the engine needs but
// must not own, currently just the wall-clock instant the request arrived at.
// Pinning "now" per request keeps submission timestamps and transaction ids
// deterministic under test.
package requestcontext

import (
	"context"
	"time"
)

type nowKey struct{}

// WithTime pins the request time on the context.
func WithTime(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, now)
}

// Now returns the pinned request time, falling back to time.Now when the
// transport layer did not set one.
func Now(ctx context.Context) time.Time {
	if now, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return now
	}
	return time.Now()
}

// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// Sleeper pauses for d or until ctx is done. It is swapped out in tests to observe pacing.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
// A non-positive duration only checks the context.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Since returns the time elapsed since started, truncated to milliseconds for log output.
func Since(started time.Time) time.Duration {
	return time.Since(started).Truncate(time.Millisecond)
}

package clock

import (
	"context"
	"time"
)

// Every calls f once per interval until the context is cancelled or f
// fails. Returns the error from f, or nil on cancellation.
func Every(ctx context.Context, interval time.Duration, f func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := f(); err != nil {
				return err
			}
		}
	}
}

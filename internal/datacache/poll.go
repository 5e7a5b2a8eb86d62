package datacache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/creatorhub/internal/model"
)

// Poll refetches every interval until ctx is done or the store is disposed.
// Failed cycles are logged and polling continues.
func (s *Store) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.Refetch(ctx)
			switch {
			case err == nil:
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return ctx.Err()
			case errors.Is(err, model.ErrDisposed):
				return err
			default:
				s.logger.Warn("Data cache: periodic refetch failed", "error", err.Error())
			}
		}
	}
}

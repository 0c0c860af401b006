package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is implemented by backends that do not expire entries on their own.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Janitor purges expired entries of c every interval until ctx is done. It
// returns at once when c needs no sweeping or interval is not positive.
func Janitor(ctx context.Context, c Cache, interval time.Duration, logger *zap.Logger) {
	p, ok := c.(Purger)
	if !ok || interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("cache purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("cache purged", zap.Int64("entries", n))
			}
		}
	}
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/cmms-platform/cmms-service/internal/model"
)

// PortalLimiter enforces each portal's hourly and daily submission caps.
// Counters are in-memory; a zero or negative configured limit disables that
// window.
type PortalLimiter struct {
	store limiter.Store
}

func NewPortalLimiter() *PortalLimiter {
	return &PortalLimiter{store: memorystore.NewStore()}
}

// Allow consumes one submission slot for the portal. Returns false when
// either window is exhausted.
func (l *PortalLimiter) Allow(ctx context.Context, p *model.Portal) (bool, error) {
	windows := []struct {
		name   string
		period time.Duration
		limit  int
	}{
		{"hour", time.Hour, p.RateLimitPerHour},
		{"day", 24 * time.Hour, p.RateLimitPerDay},
	}
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		lim := limiter.New(l.store, limiter.Rate{Period: w.period, Limit: int64(w.limit)})
		c, err := lim.Get(ctx, fmt.Sprintf("portal:%d:%s", p.ID, w.name))
		if err != nil {
			return false, fmt.Errorf("ratelimit: %w", err)
		}
		if c.Reached {
			return false, nil
		}
	}
	return true, nil
}

package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmms-platform/cmms-service/internal/model"
)

func TestAllowExhaustsHourlyWindow(t *testing.T) {
	l := NewPortalLimiter()
	p := &model.Portal{ID: 1, RateLimitPerHour: 3, RateLimitPerDay: 100}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, p)
		require.NoError(t, err)
		require.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := l.Allow(ctx, p)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAllowZeroLimitDisablesWindow(t *testing.T) {
	l := NewPortalLimiter()
	p := &model.Portal{ID: 2, RateLimitPerHour: 0, RateLimitPerDay: 0}

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		ok, err := l.Allow(ctx, p)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestAllowPortalsAreIndependent(t *testing.T) {
	l := NewPortalLimiter()
	ctx := context.Background()

	a := &model.Portal{ID: 3, RateLimitPerHour: 1}
	b := &model.Portal{ID: 4, RateLimitPerHour: 1}

	ok, err := l.Allow(ctx, a)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Allow(ctx, a)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = l.Allow(ctx, b)
	require.NoError(t, err)
	require.True(t, ok)
}

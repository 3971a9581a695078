package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextAfterAdvancesPastReference(t *testing.T) {
	p := &PMSchedule{
		IntervalUnit:  IntervalWeek,
		IntervalCount: 2,
		NextDueAt:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	next := p.NextAfter(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC), next)
}

func TestNextAfterAlreadyInFuture(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &PMSchedule{IntervalUnit: IntervalMonth, IntervalCount: 1, NextDueAt: due}
	require.Equal(t, due, p.NextAfter(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestOccurrencesWithin(t *testing.T) {
	p := &PMSchedule{
		IntervalUnit:  IntervalDay,
		IntervalCount: 10,
		NextDueAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	from := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	got := p.OccurrencesWithin(from, to)
	require.Equal(t, []time.Time{
		time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}, got)
}

func TestOccurrencesWithinIsCapped(t *testing.T) {
	p := &PMSchedule{
		IntervalUnit:  IntervalDay,
		IntervalCount: 1,
		NextDueAt:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got := p.OccurrencesWithin(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, got, 366)
}

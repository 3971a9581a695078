package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{SubmissionStatusSubmitted, SubmissionStatusReviewed, true},
		{SubmissionStatusSubmitted, SubmissionStatusRejected, true},
		{SubmissionStatusSubmitted, SubmissionStatusCompleted, false},
		{SubmissionStatusSubmitted, SubmissionStatusInProgress, false},
		{SubmissionStatusReviewed, SubmissionStatusInProgress, true},
		{SubmissionStatusReviewed, SubmissionStatusRejected, true},
		{SubmissionStatusReviewed, SubmissionStatusSubmitted, false},
		{SubmissionStatusAssigned, SubmissionStatusInProgress, true},
		{SubmissionStatusAssigned, SubmissionStatusCompleted, true},
		{SubmissionStatusAssigned, SubmissionStatusRejected, true},
		{SubmissionStatusInProgress, SubmissionStatusCompleted, true},
		{SubmissionStatusInProgress, SubmissionStatusRejected, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []SubmissionStatus{
		SubmissionStatusSubmitted, SubmissionStatusReviewed, SubmissionStatusAssigned,
		SubmissionStatusInProgress, SubmissionStatusCompleted, SubmissionStatusRejected,
	}
	for _, terminal := range []SubmissionStatus{SubmissionStatusCompleted, SubmissionStatusRejected} {
		require.True(t, terminal.IsTerminal())
		for _, to := range all {
			require.False(t, CanTransition(terminal, to), "%s -> %s must be blocked", terminal, to)
		}
	}
	for _, s := range []SubmissionStatus{
		SubmissionStatusSubmitted, SubmissionStatusReviewed,
		SubmissionStatusAssigned, SubmissionStatusInProgress,
	} {
		require.False(t, s.IsTerminal(), s)
	}
}

func TestValidSubmissionStatus(t *testing.T) {
	require.True(t, ValidSubmissionStatus(SubmissionStatusReviewed))
	require.False(t, ValidSubmissionStatus("ARCHIVED"))
	require.False(t, ValidSubmissionStatus(""))
}

package model

// transitions is the submission lifecycle graph. ASSIGNED is not reachable
// through a direct status update: it is set only when a work order is created
// from the submission.
var transitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionStatusSubmitted:  {SubmissionStatusReviewed, SubmissionStatusRejected},
	SubmissionStatusReviewed:   {SubmissionStatusInProgress, SubmissionStatusRejected},
	SubmissionStatusAssigned:   {SubmissionStatusInProgress, SubmissionStatusCompleted, SubmissionStatusRejected},
	SubmissionStatusInProgress: {SubmissionStatusCompleted},
}

// ValidSubmissionStatus reports whether s is a known status value.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionStatusSubmitted, SubmissionStatusReviewed, SubmissionStatusAssigned,
		SubmissionStatusInProgress, SubmissionStatusCompleted, SubmissionStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusCompleted || s == SubmissionStatusRejected
}

// CanTransition reports whether the lifecycle allows moving from -> to.
func CanTransition(from, to SubmissionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

package errs

import "errors"

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrWorkOrderNotFound  = errors.New("work order not found")
	ErrPartNotFound       = errors.New("part not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPMScheduleNotFound = errors.New("pm schedule not found")

	ErrPortalNotFound     = errors.New("portal not found")
	ErrPortalInactive     = errors.New("portal is not active")
	ErrSlugTaken          = errors.New("portal slug already in use")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrInvalidTransition — запрошенный переход статуса не входит в граф жизненного цикла.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTerminalStatus — заявка уже в терминальном статусе, изменения запрещены.
	ErrTerminalStatus = errors.New("submission is in a terminal status")

	ErrWorkOrderRefused = errors.New("work order cannot be created for a rejected submission")
	ErrEmptyMessage     = errors.New("message text is required")
	// ErrValidation wraps submission data validation failures.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("submission rate limit exceeded")
)

package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidDuration = errors.New("training duration cannot be negative")
	ErrInvalidYear     = errors.New("year must be between 2000 and 9999")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidAction   = errors.New("unknown action type")

	// Not found errors
	ErrTrainerNotFound   = errors.New("trainer not found")
	ErrWorkYearNotFound  = errors.New("work year not found")
	ErrWorkMonthNotFound = errors.New("work month not found")
	ErrTrainingNotFound  = errors.New("training not found")

	// Business conflict errors
	ErrInsufficientHours = errors.New("cannot remove more hours than available")

	// Security errors
	ErrInvalidToken = errors.New("invalid or missing token")

	// Workload dependency errors
	ErrWorkloadUnavailable = errors.New("workload service unavailable")
	ErrWorkloadTimeout     = errors.New("workload service reply timed out")
)

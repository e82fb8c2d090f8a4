package planner

import "errors"

var (
	// ErrUnavailable indicates the Planner Service is unreachable.
	ErrUnavailable = errors.New("planner service unavailable")

	// ErrTimeout indicates the plan request exceeded the configured timeout.
	ErrTimeout = errors.New("planner request timed out")

	// ErrInvalidOutput indicates the service response could not be parsed
	// into a valid daily plan.
	ErrInvalidOutput = errors.New("invalid planner output")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("planner retry attempts exhausted")
)

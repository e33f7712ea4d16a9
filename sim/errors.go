package sim

import "errors"

var (
	// ErrInvalidParameter is returned when a run or pool is configured with a
	// non-positive server count, mean time or horizon.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDelay is returned when a process asks to be resumed in the past.
	// It indicates a defect in the process, not bad user input.
	ErrInvalidDelay = errors.New("invalid delay")
)

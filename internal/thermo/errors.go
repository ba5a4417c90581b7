package thermo

import "errors"

var (
	// ErrInvalidConstants indicates a physics table that cannot drive a simulation.
	ErrInvalidConstants = errors.New("thermo: invalid physics constants")

	// ErrInvalidConfig indicates a simulator configuration outside valid range.
	ErrInvalidConfig = errors.New("thermo: invalid simulator config")

	// ErrInvalidSchedule indicates an empty or malformed input schedule.
	ErrInvalidSchedule = errors.New("thermo: invalid input schedule")
)

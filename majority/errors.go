package majority

import "errors"

var (
	// ErrEmptySequence is returned when there are no sizes to analyze.
	ErrEmptySequence = errors.New("empty size sequence")
	// ErrInvalidCoefficient is returned for a majority coefficient outside (0, 1].
	ErrInvalidCoefficient = errors.New("majority coefficient must be in (0, 1]")
	// ErrNegativeSize is returned when an input size is below zero.
	ErrNegativeSize = errors.New("negative size")
	// ErrZeroTotal is returned by relative queries when the total mass is zero.
	ErrZeroTotal = errors.New("total mass is zero")
	// ErrInvalidRange is returned for a range that is empty after clamping.
	ErrInvalidRange = errors.New("invalid range")
	// ErrLengthMismatch is returned when values and prefix sums disagree on n.
	ErrLengthMismatch = errors.New("values and prefix sum length mismatch")
	// ErrNoQualifyingInterval is returned when no interval reaches the coefficient.
	ErrNoQualifyingInterval = errors.New("no interval reaches the majority coefficient")
	// ErrUnknownObjective is returned for an objective other than count or span.
	ErrUnknownObjective = errors.New("unknown objective")
	// ErrUnknownMass is returned for a mass other than bytes or files.
	ErrUnknownMass = errors.New("unknown mass")
)

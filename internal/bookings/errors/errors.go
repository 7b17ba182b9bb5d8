package errors

import "errors"

var (
	ErrInvalidDate = errors.New("invalid booking date")

	ErrInvalidTimeRange = errors.New("check-out must be after check-in")
)

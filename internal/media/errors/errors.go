package errors

import "errors"

var (
	ErrFetchFailed = errors.New("failed to fetch remote image")

	ErrNotImage = errors.New("content is not an image")

	ErrTooLarge = errors.New("image exceeds the size limit")

	ErrInvalidName = errors.New("invalid media name")
)

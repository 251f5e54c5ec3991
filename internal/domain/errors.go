package domain

import "errors"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrTrailerNotFound  = errors.New("trailer not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrDispatchRejected = errors.New("notification dispatch rejected")
)

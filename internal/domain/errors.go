package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrSegmentTaken is returned by a booking commit when at least one of the
	// segments it tried to claim was no longer available.
	ErrSegmentTaken = errors.New("segment no longer available")
)

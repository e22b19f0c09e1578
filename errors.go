package isoview

import "errors"

var (
	// ErrTooManyViewports is returned by Create once the registry is full.
	ErrTooManyViewports = errors.New("isoview: no more viewport slots")

	// ErrViewportNotFound is returned by Remove for a viewport that is not
	// registered.
	ErrViewportNotFound = errors.New("isoview: viewport not registered")

	// ErrEntityNotFound is returned when a focused entity no longer exists.
	ErrEntityNotFound = errors.New("isoview: entity not found")

	// ErrInvalidLocation is returned when a focus resolves to the null
	// location.
	ErrInvalidLocation = errors.New("isoview: invalid location")

	// ErrNoFocus is returned when resolving an empty Focus.
	ErrNoFocus = errors.New("isoview: no focus")
)

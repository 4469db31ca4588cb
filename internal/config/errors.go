package config

import "errors"

var (
	// ErrNoFiles is returned when no lintable path is left after expansion.
	ErrNoFiles = errors.New("No files were specified.")
	// ErrBadFilter is returned for a filter without a leading + or -.
	ErrBadFilter = errors.New("every filter must start with + or -")
	// ErrBadIncludeOrder is returned for an unknown includeorder value.
	ErrBadIncludeOrder = errors.New("invalid includeorder value")
)

package render

import "errors"

var (
	// ErrInvalidDimensions is returned when a state is created or resized
	// with a non-positive width or height. Startup treats it as fatal.
	ErrInvalidDimensions = errors.New("render: width and height must be positive")
)

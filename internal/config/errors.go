package config

import "errors"

var (
	ErrInvalidSize    = errors.New("config: invalid size")
	ErrInvalidQuantum = errors.New("config: quantum must be positive")
	ErrInvalidMap     = errors.New("config: invalid map parameters")
	ErrInvalidLook    = errors.New("config: invalid look")
	ErrInvalidColor   = errors.New("config: invalid colour")
	ErrUnknownPreset  = errors.New("config: unknown preset")
)

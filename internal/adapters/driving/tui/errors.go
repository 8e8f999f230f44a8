package tui

import "errors"

// ErrMissingValidationService is returned when the validation service is not provided.
var ErrMissingValidationService = errors.New("tui: validation service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrMissingSource is returned when no document reference is given.
var ErrMissingSource = errors.New("tui: document reference is required")

package tui

import "errors"

// ErrMissingLifecycleService is returned when the lifecycle service is not provided.
var ErrMissingLifecycleService = errors.New("tui: lifecycle service is required")

// ErrMissingTagService is returned when the tag service is not provided.
var ErrMissingTagService = errors.New("tui: tag service is required")

package tui

import "errors"

// ErrMissingFlows is returned when the flow factory is not provided.
var ErrMissingFlows = errors.New("tui: flows are required")

// ErrMissingLocalizer is returned when the localizer is not provided.
var ErrMissingLocalizer = errors.New("tui: localizer is required")

package tools

import "errors"

var (
	// ErrUnknownTool is returned for a tool name that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrMissingParam is returned when a required parameter is absent.
	ErrMissingParam = errors.New("missing param")

	// ErrInvalidParam is returned when a parameter has the wrong shape.
	ErrInvalidParam = errors.New("invalid param")

	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

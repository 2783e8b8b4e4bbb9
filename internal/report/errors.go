package report

import "errors"

var (
	// ErrInput covers an empty, unreadable or malformed request payload.
	ErrInput = errors.New("invalid input")

	// ErrValidation covers a well-formed request that cannot be served.
	ErrValidation = errors.New("invalid request")

	// ErrRender covers layout, encoding and file system failures while
	// producing the output file.
	ErrRender = errors.New("render failed")
)

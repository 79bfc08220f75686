package output

import "errors"

var (
	// ErrCreateOutput is returned when an output file cannot be created.
	ErrCreateOutput = errors.New("create output")
	// ErrWriterClosed is returned by Write after Close.
	ErrWriterClosed = errors.New("writer closed")
)

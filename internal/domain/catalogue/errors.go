package catalogue

import "errors"

var (
	// ErrNoMatch is returned when an amending observation names no admitted record.
	ErrNoMatch = errors.New("no matching record")
	// ErrUnknownMode is returned for an observation with an unsupported mode.
	ErrUnknownMode = errors.New("unknown observation mode")
)

package sources

import "errors"

var (
	// ErrMalformedLine marks a line that cannot be decoded. Such lines are skipped.
	ErrMalformedLine = errors.New("malformed line")
	// ErrSourceUnavailable is returned when a catalogue's files cannot be found or opened.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMissingColumn is returned when a CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrUnknownSource is returned for a catalogue name not in the ingestion order.
	ErrUnknownSource = errors.New("unknown source")

	// errSkip marks lines that carry no record, such as headers and comments.
	errSkip = errors.New("skip")
)

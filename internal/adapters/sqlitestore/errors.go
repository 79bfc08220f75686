package sqlitestore

import "errors"

var (
	// ErrOpen is returned when the database cannot be created.
	ErrOpen = errors.New("open sqlite database")
	// ErrExport is returned when writing the catalogue fails.
	ErrExport = errors.New("export catalogue")
)

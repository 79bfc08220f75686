package repository

import "errors"

// Sentinel kinds for index errors.
var (
	ErrNotFound         = errors.New("record not indexed")
	ErrInvalidLimit     = errors.New("invalid limit")
	ErrInvalidMagnitude = errors.New("magnitude is not a finite number")
	ErrDuplicateEntry   = errors.New("record already indexed")
)

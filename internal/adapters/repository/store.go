// Package repository keeps merged records in their emission order:
// reference magnitude ascending, then right ascension, then record ID.
package repository

import "context"

// Entry is one indexed record.
type Entry struct {
	// Rank is the 1-based position in emission order, filled in on reads.
	Rank      int
	ID        int
	Magnitude float64
	RA        float64
}

// Index provides ordered access to indexed records.
type Index interface {
	// Insert adds a record. Each ID may be inserted once.
	Insert(ctx context.Context, e Entry) error

	// Ascend calls fn for each entry in emission order until fn returns false.
	Ascend(ctx context.Context, fn func(Entry) bool) error

	// Rank returns the entry for id with its position.
	// Returns ErrNotFound if the id is unknown.
	Rank(ctx context.Context, id int) (Entry, error)

	// TopN returns the first n entries.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of indexed records.
	Count(ctx context.Context) int
}

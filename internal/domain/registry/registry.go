// Package registry maps catalogue identifiers to the record that owns them.
//
// There is one table per identifier kind. A value belongs to at most one
// record; binding it to a second record without unbinding it first is a
// programming error and panics.
package registry

import (
	"fmt"

	"github.com/dcf21/star-charter/internal/domain/types"
)

// table is a single identifier kind's index.
type table[K comparable] struct {
	owners map[K]int
}

func newTable[K comparable](hint int) table[K] {
	return table[K]{owners: make(map[K]int, hint)}
}

func (t *table[K]) lookup(k K) (int, bool) {
	id, ok := t.owners[k]
	return id, ok
}

func (t *table[K]) bind(k K, record int) error {
	if owner, ok := t.owners[k]; ok && owner != record {
		return fmt.Errorf("%w: %v owned by record %d, not %d", ErrBindingConflict, k, owner, record)
	}
	t.owners[k] = record
	return nil
}

func (t *table[K]) unbind(k K) { delete(t.owners, k) }

// Registry holds the five identifier tables. It is not safe for concurrent use;
// the merger is its only caller.
type Registry struct {
	hd    table[int]
	bs    table[int]
	hip   table[int]
	tycho table[string]
	dr2   table[string]
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	o := options{sizeHint: defaultSizeHint}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		hd:    newTable[int](o.sizeHint),
		bs:    newTable[int](o.sizeHint / 8),
		hip:   newTable[int](o.sizeHint),
		tycho: newTable[string](o.sizeHint),
		dr2:   newTable[string](o.sizeHint),
	}
}

// Lookup returns the record owning id.
func (r *Registry) Lookup(id types.Identifier) (int, bool) {
	if id.IsZero() {
		return 0, false
	}
	switch id.Type {
	case types.HD:
		return r.hd.lookup(id.Number)
	case types.BS:
		return r.bs.lookup(id.Number)
	case types.HIP:
		return r.hip.lookup(id.Number)
	case types.Tycho:
		return r.tycho.lookup(id.Name)
	case types.GaiaDR2:
		return r.dr2.lookup(id.Name)
	}
	return 0, false
}

// Bind records that id belongs to record. Rebinding to the same record is a
// no-op. Binding a value owned by another record panics.
func (r *Registry) Bind(id types.Identifier, record int) {
	if id.IsZero() {
		return
	}
	var err error
	switch id.Type {
	case types.HD:
		err = r.hd.bind(id.Number, record)
	case types.BS:
		err = r.bs.bind(id.Number, record)
	case types.HIP:
		err = r.hip.bind(id.Number, record)
	case types.Tycho:
		err = r.tycho.bind(id.Name, record)
	case types.GaiaDR2:
		err = r.dr2.bind(id.Name, record)
	}
	if err != nil {
		panic(fmt.Errorf("bind %s: %w", id, err))
	}
}

// Unbind removes id from its table.
func (r *Registry) Unbind(id types.Identifier) {
	switch id.Type {
	case types.HD:
		r.hd.unbind(id.Number)
	case types.BS:
		r.bs.unbind(id.Number)
	case types.HIP:
		r.hip.unbind(id.Number)
	case types.Tycho:
		r.tycho.unbind(id.Name)
	case types.GaiaDR2:
		r.dr2.unbind(id.Name)
	}
}

// Len returns the number of values bound for kind t.
func (r *Registry) Len(t types.IDType) int {
	switch t {
	case types.HD:
		return len(r.hd.owners)
	case types.BS:
		return len(r.bs.owners)
	case types.HIP:
		return len(r.hip.owners)
	case types.Tycho:
		return len(r.tycho.owners)
	case types.GaiaDR2:
		return len(r.dr2.owners)
	}
	return 0
}

// Package catalogue holds the merged star catalogue and the resolution
// algorithm that folds catalogue observations into it.
//
// Records are admitted with dense zero-based IDs and never removed. Each
// identifier value is owned by at most one record; when two records claim
// the same value the brighter one (in V) keeps it.
//
// A Catalogue is not safe for concurrent use. The merge pipeline feeds it from
// a single goroutine.
package catalogue

import (
	"context"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/registry"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Conflict outcomes, as reported to metrics.
const (
	conflictTransferred = "transferred"
	conflictRejected    = "rejected"
)

// Catalogue is the ordered collection of admitted records plus their identifier registry.
type Catalogue struct {
	records  []*model.Star
	registry *registry.Registry
	limit    *float64
	logger   logger.Logger
}

// Commit is the result of AddStar.
type Commit struct {
	// ID is the record's ID, or model.Unassigned when it was filtered out.
	ID int
	// Admitted is false when the magnitude filter turned the record away.
	Admitted bool
	// New is set when this call admitted the record.
	New bool
	// Rejected lists identifier kinds the record could not take from another record.
	Rejected types.IDSet
	// Transferred lists identifier kinds the record took from another record.
	Transferred types.IDSet
}

// New creates an empty catalogue.
func New(opts ...Option) *Catalogue {
	o := options{sizeHint: 1024}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("catalogue")
	}
	return &Catalogue{
		records:  make([]*model.Star, 0, o.sizeHint),
		registry: registry.New(registry.WithSizeHint(o.sizeHint)),
		limit:    o.limit,
		logger:   o.logger,
	}
}

// Len returns the number of admitted records.
func (c *Catalogue) Len() int { return len(c.records) }

// Star returns the record with the given ID.
func (c *Catalogue) Star(id int) (*model.Star, bool) {
	if id < 0 || id >= len(c.records) {
		return nil, false
	}
	return c.records[id], true
}

// Records returns the admitted records in ID order. The slice must not be modified.
func (c *Catalogue) Records() []*model.Star { return c.records }

// Lookup returns the record owning id.
func (c *Catalogue) Lookup(id types.Identifier) (*model.Star, bool) {
	owner, ok := c.registry.Lookup(id)
	if !ok {
		return nil, false
	}
	return c.records[owner], true
}

// Admits reports whether s passes the magnitude filter.
func (c *Catalogue) Admits(s *model.Star) bool {
	return c.limit == nil || s.AnyMagnitudeAtMost(*c.limit)
}

// AddStar admits s if it is new and bright enough, then registers its
// identifiers. A filtered-out record registers nothing.
//
// For each identifier kind: a free value is bound to s; a value bound to
// another record moves to s only when s has a known V magnitude strictly
// brighter than the incumbent's (an incumbent without V loses). A moved value
// is cleared on the incumbent. A value s fails to take is reported in
// Rejected and left on s for the caller to deal with.
func (c *Catalogue) AddStar(ctx context.Context, s *model.Star) Commit {
	var cm Commit
	if !s.Assigned() {
		if !c.Admits(s) {
			cm.ID = model.Unassigned
			return cm
		}
		s.ID = len(c.records)
		c.records = append(c.records, s)
		cm.New = true
		metrics.SetCatalogueRecords(len(c.records))
	}
	cm.ID = s.ID
	cm.Admitted = true

	for _, t := range types.IDTypes {
		id := s.Identifier(t)
		if id.IsZero() {
			continue
		}
		owner, ok := c.registry.Lookup(id)
		switch {
		case !ok:
			c.registry.Bind(id, s.ID)
		case owner == s.ID:
		default:
			incumbent := c.records[owner]
			if brighterInV(s, incumbent) {
				c.registry.Unbind(id)
				c.registry.Bind(id, s.ID)
				if incumbent.Identifier(t) == id {
					incumbent.ClearIdentifier(t)
				}
				cm.Transferred = cm.Transferred.Add(t)
				metrics.RecordIdentifierConflict(t.String(), conflictTransferred)
				c.logger.Debug(ctx, "identifier moved to brighter record",
					logger.String("identifier", id.String()),
					logger.Int("from", incumbent.ID),
					logger.Int("to", s.ID))
				continue
			}
			cm.Rejected = cm.Rejected.Add(t)
			metrics.RecordIdentifierConflict(t.String(), conflictRejected)
			c.logger.Debug(ctx, "identifier kept by brighter record",
				logger.String("identifier", id.String()),
				logger.Int("owner", incumbent.ID),
				logger.Int("challenger", s.ID))
		}
	}
	return cm
}

// brighterInV reports whether challenger's V is known and strictly brighter
// than incumbent's. An incumbent without V always loses to a known V.
func brighterInV(challenger, incumbent *model.Star) bool {
	cv, ok := challenger.Magnitude(types.BandV)
	if !ok {
		return false
	}
	iv, ok := incumbent.Magnitude(types.BandV)
	if !ok {
		return true
	}
	return cv < iv
}

// Counts summarises the catalogue for progress reporting.
type Counts struct {
	Records   int
	Bayer     int
	Flamsteed int
}

// Counts returns record, Bayer-letter and Flamsteed-number totals.
func (c *Catalogue) Counts() Counts {
	n := Counts{Records: len(c.records)}
	for _, s := range c.records {
		if s.Designation.BayerLetter != "" {
			n.Bayer++
		}
		if s.Designation.Flamsteed > 0 {
			n.Flamsteed++
		}
	}
	return n
}

// Package model contains the star record and the observation that decoders
// hand to the merger.
package model

import (
	"math"
	"slices"
	"strconv"

	"github.com/dcf21/star-charter/internal/domain/types"
)

// Unassigned is the ID of a record that has not been admitted to the catalogue.
const Unassigned = -1

// Magnitude is one band's measurement and the catalogue it came from.
type Magnitude struct {
	Value  float64
	Source string
	Set    bool
}

// Designation is a Bayer letter (TeX form), constellation and Flamsteed number.
type Designation struct {
	BayerLetter   string
	Constellation string
	Flamsteed     int
}

// DesignationChange describes an existing designation overwritten by a new value.
type DesignationChange struct {
	Kind string
	Old  string
	New  string
}

// Star is the merged record of one physical star.
type Star struct {
	ID int

	RA             float64
	Decl           float64
	SourcePosition string

	HD      int
	BS      int
	HIP     int
	Tycho   string
	GaiaDR2 string

	Parallax       *float64
	SourceParallax string
	Distance       *float64
	ProperMotion   *float64
	ProperMotionPA *float64
	ColorBV        *float64
	Magnitudes     [types.NumBands]Magnitude

	Presence       types.Presence
	EnglishNames   []string
	CatalogueNames []string
	Designation    Designation
	NSV            int
	Variable       bool
}

// NewStar returns an empty, unassigned record.
func NewStar() *Star {
	return &Star{ID: Unassigned}
}

// Assigned reports whether the record has been admitted.
func (s *Star) Assigned() bool { return s.ID != Unassigned }

// HasPosition reports whether any catalogue has supplied a position.
func (s *Star) HasPosition() bool { return s.SourcePosition != "" }

// Identifier returns the record's value for t, which may be zero.
func (s *Star) Identifier(t types.IDType) types.Identifier {
	switch t {
	case types.HD:
		return types.HDNumber(s.HD)
	case types.BS:
		return types.BSNumber(s.BS)
	case types.HIP:
		return types.HIPNumber(s.HIP)
	case types.Tycho:
		return types.TychoID(s.Tycho)
	case types.GaiaDR2:
		return types.DR2ID(s.GaiaDR2)
	}
	return types.Identifier{Type: t}
}

// SetIdentifier stores id in the field of its kind.
func (s *Star) SetIdentifier(id types.Identifier) {
	switch id.Type {
	case types.HD:
		s.HD = id.Number
	case types.BS:
		s.BS = id.Number
	case types.HIP:
		s.HIP = id.Number
	case types.Tycho:
		s.Tycho = id.Name
	case types.GaiaDR2:
		s.GaiaDR2 = id.Name
	}
}

// ClearIdentifier empties the field of kind t.
func (s *Star) ClearIdentifier(t types.IDType) {
	s.SetIdentifier(types.Identifier{Type: t})
}

// Identifiers returns the populated identifiers in resolution order.
func (s *Star) Identifiers() []types.Identifier {
	var out []types.Identifier
	for _, t := range types.IDTypes {
		if id := s.Identifier(t); !id.IsZero() {
			out = append(out, id)
		}
	}
	return out
}

// SetMagnitude records a measurement in band b.
func (s *Star) SetMagnitude(b types.Band, value float64, source string) {
	s.Magnitudes[b] = Magnitude{Value: value, Source: source, Set: true}
}

// Magnitude returns the value in band b and whether it is known.
func (s *Star) Magnitude(b types.Band) (float64, bool) {
	m := s.Magnitudes[b]
	return m.Value, m.Set
}

// AnyMagnitudeAtMost reports whether some populated band is at least as bright as limit.
func (s *Star) AnyMagnitudeAtMost(limit float64) bool {
	for _, m := range s.Magnitudes {
		if m.Set && m.Value <= limit {
			return true
		}
	}
	return false
}

// CatalogueName is the short label used in diagnostics.
func (s *Star) CatalogueName() string {
	switch {
	case s.HIP > 0:
		return "HIP " + strconv.Itoa(s.HIP)
	case s.Tycho != "":
		return "TYC " + s.Tycho
	default:
		return "No name"
	}
}

// PositionSeparation is the angular distance in degrees between the record's
// position and (ra, decl), with the RA term scaled by cos(ra).
func (s *Star) PositionSeparation(ra, decl float64) float64 {
	dDecl := s.Decl - decl
	dRA := (s.RA - ra) * math.Cos(ra*math.Pi/180)
	return math.Hypot(dDecl, dRA)
}

// SetPosition overwrites the position and its provenance.
func (s *Star) SetPosition(ra, decl float64, source string) {
	s.RA = ra
	s.Decl = decl
	s.SourcePosition = source
}

// AddEnglishName adds a common name, in front of the list when prepend is set.
// Duplicates are ignored.
func (s *Star) AddEnglishName(name string, prepend bool) {
	if name == "" || slices.Contains(s.EnglishNames, name) {
		return
	}
	if prepend {
		s.EnglishNames = append([]string{name}, s.EnglishNames...)
		return
	}
	s.EnglishNames = append(s.EnglishNames, name)
}

// AddCatalogueName appends a cross-reference designation.
func (s *Star) AddCatalogueName(name string) {
	if name == "" || slices.Contains(s.CatalogueNames, name) {
		return
	}
	s.CatalogueNames = append(s.CatalogueNames, name)
}

// ApplyDesignation merges d into the record and reports overwritten values.
// Empty parts of d leave the record untouched.
func (s *Star) ApplyDesignation(d Designation) []DesignationChange {
	var changes []DesignationChange
	if d.BayerLetter != "" {
		if old := s.Designation.BayerLetter; old != "" && old != d.BayerLetter {
			changes = append(changes, DesignationChange{Kind: "bayer", Old: old, New: d.BayerLetter})
		}
		s.Designation.BayerLetter = d.BayerLetter
	}
	if d.Flamsteed > 0 {
		if old := s.Designation.Flamsteed; old > 0 && old != d.Flamsteed {
			changes = append(changes, DesignationChange{Kind: "flamsteed", Old: strconv.Itoa(old), New: strconv.Itoa(d.Flamsteed)})
		}
		s.Designation.Flamsteed = d.Flamsteed
	}
	if d.Constellation != "" {
		s.Designation.Constellation = d.Constellation
	}
	return changes
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

package model

import "github.com/dcf21/star-charter/internal/domain/types"

// Mode selects how an observation finds the record it updates.
type Mode uint8

const (
	// ModeMatch resolves the record through the identifier registry, or creates one.
	ModeMatch Mode = iota
	// ModeCreate always starts a fresh record.
	ModeCreate
	// ModeAmend only updates an already admitted record found by identifier.
	ModeAmend
)

func (m Mode) String() string {
	switch m {
	case ModeMatch:
		return "match"
	case ModeCreate:
		return "create"
	case ModeAmend:
		return "amend"
	}
	return "unknown"
}

// BandValue is one measured magnitude.
type BandValue struct {
	Band  types.Band
	Value float64
}

// Observation is one catalogue line after decoding.
type Observation struct {
	Catalogue string
	Line      int
	Mode      Mode
	// Threshold is the position-sanity limit in degrees; zero disables the check.
	Threshold float64

	HasPosition bool
	RA          float64
	Decl        float64
	// Magnitude is an approximate brightness used in diagnostics only.
	Magnitude    float64
	HasMagnitude bool

	IDs        []types.Identifier
	Magnitudes []BandValue

	Parallax       *float64
	ParallaxSource string
	ProperMotion   *float64
	ProperMotionPA *float64
	ColorBV        *float64

	Presence      types.Presence
	Variable      bool
	NSV           int
	EnglishName   string
	CatalogueName string
	Designation   *Designation
}

// Identifier returns the observation's value for t, which may be zero.
func (o *Observation) Identifier(t types.IDType) types.Identifier {
	for _, id := range o.IDs {
		if id.Type == t && !id.IsZero() {
			return id
		}
	}
	return types.Identifier{Type: t}
}

// AddID appends id unless it is zero.
func (o *Observation) AddID(id types.Identifier) {
	if !id.IsZero() {
		o.IDs = append(o.IDs, id)
	}
}

// AddMagnitude appends a measurement.
func (o *Observation) AddMagnitude(b types.Band, v float64) {
	o.Magnitudes = append(o.Magnitudes, BandValue{Band: b, Value: v})
}

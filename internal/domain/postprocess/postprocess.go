// Package postprocess derives the values computed once every catalogue has
// been merged: distances from parallaxes, the reference magnitude used to
// order the output, and the magnitude histogram.
package postprocess

import (
	"context"
	"math"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/pkg/metrics"
)

const (
	// AU is the astronomical unit in metres.
	AU = 1.49598e11
	// LYR is the light year in metres.
	LYR = 9.4605284e15
	// MinParallax is the smallest parallax, in milliarcseconds, turned into a distance.
	MinParallax = 1e-7
)

// Gaia G/BP/RP to Johnson V transform coefficients.
const (
	gaiaOffset    = 0.0176
	gaiaLinear    = 0.1732
	gaiaQuadratic = 0.006860
)

// DistanceLY converts a parallax in milliarcseconds to light years.
func DistanceLY(parallax float64) (float64, bool) {
	if !(parallax > MinParallax) {
		return 0, false
	}
	return AU / (parallax * 1e-3 / 3600 / 180 * math.Pi) / LYR, true
}

// DeriveDistance sets s.Distance from s.Parallax, or clears a parallax too
// small to use. It reports whether a distance was derived.
func DeriveDistance(s *model.Star) bool {
	if s.Parallax == nil {
		s.Distance = nil
		return false
	}
	d, ok := DistanceLY(*s.Parallax)
	if !ok {
		s.Parallax = nil
		s.SourceParallax = ""
		s.Distance = nil
		return false
	}
	s.Distance = &d
	return true
}

// ReferenceMagnitude is V when known, else a V estimate from Gaia photometry.
func ReferenceMagnitude(s *model.Star) (float64, bool) {
	if v, ok := s.Magnitude(types.BandV); ok {
		return v, true
	}
	g, ok := s.Magnitude(types.BandG)
	if !ok {
		return 0, false
	}
	bp, okBP := s.Magnitude(types.BandBP)
	rp, okRP := s.Magnitude(types.BandRP)
	if okBP && okRP {
		c := bp - rp
		return g + gaiaOffset + gaiaLinear*c + gaiaQuadratic*c*c, true
	}
	return g + gaiaOffset, true
}

// Ranked pairs a record with its reference magnitude.
type Ranked struct {
	Star      *model.Star
	Magnitude float64
}

// Summary counts what Derive did.
type Summary struct {
	Distances         int
	ParallaxesDropped int
	// Unranked records have no reference magnitude and are left out of the output.
	Unranked int
}

// Derive computes distances for every record and returns those with a
// reference magnitude, in input order.
func Derive(ctx context.Context, stars []*model.Star) ([]Ranked, Summary) {
	var sum Summary
	ranked := make([]Ranked, 0, len(stars))
	for _, s := range stars {
		if ctx.Err() != nil {
			break
		}
		hadParallax := s.Parallax != nil
		if DeriveDistance(s) {
			sum.Distances++
			metrics.RecordDistanceDerived()
		} else if hadParallax {
			sum.ParallaxesDropped++
			metrics.RecordParallaxDropped()
		}
		m, ok := ReferenceMagnitude(s)
		if !ok {
			sum.Unranked++
			continue
		}
		ranked = append(ranked, Ranked{Star: s, Magnitude: m})
	}
	return ranked, sum
}

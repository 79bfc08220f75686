package catalogue

import (
	"context"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// matchOrder is the identifier priority of MatchStar. The first hit wins.
var matchOrder = [...]types.IDType{types.GaiaDR2, types.Tycho, types.HIP, types.HD}

// Match is the result of MatchStar.
type Match struct {
	// Star is the matched record, or a fresh unassigned one.
	Star *model.Star
	// Found is set when Star is an existing record.
	Found bool
	// By is the identifier kind that matched.
	By types.IDType
	// Voided lists kinds whose hit was discarded because another identifier disagreed.
	Voided types.IDSet
	// Separation is the distance in degrees the position moved, when checked.
	Separation float64
}

// MatchStar finds the record an observation refers to.
//
// Gaia DR2 and Tycho hits are accepted as they are. A HIP hit is voided when
// both sides carry different Tycho IDs. An HD hit is voided when both sides
// carry different HIP numbers or different Tycho IDs. Without an accepted hit
// a fresh unassigned record is returned.
//
// When the record already has a position that differs from the observation's
// by more than obs.Threshold degrees a warning is logged. The match stands.
func (c *Catalogue) MatchStar(ctx context.Context, obs *model.Observation) Match {
	var m Match
	for _, t := range matchOrder {
		id := obs.Identifier(t)
		if id.IsZero() {
			continue
		}
		owner, ok := c.registry.Lookup(id)
		if !ok {
			continue
		}
		candidate := c.records[owner]
		if voids(t, candidate, obs) {
			m.Voided = m.Voided.Add(t)
			metrics.RecordMatchVoided(t.String())
			continue
		}
		m.Star, m.Found, m.By = candidate, true, t
		break
	}
	if !m.Found {
		m.Star = model.NewStar()
		return m
	}

	if obs.HasPosition && m.Star.HasPosition() && obs.Threshold > 0 {
		m.Separation = m.Star.PositionSeparation(obs.RA, obs.Decl)
		if m.Separation > obs.Threshold {
			metrics.RecordPositionWarning(obs.Catalogue)
			c.logger.Warn(ctx, "position moved beyond threshold",
				logger.String("star", m.Star.CatalogueName()),
				logger.String("catalogue", obs.Catalogue),
				logger.Int("line", obs.Line),
				logger.Float64("magnitude", obs.Magnitude),
				logger.Float64("separation_deg", m.Separation),
				logger.Float64("threshold_deg", obs.Threshold),
				logger.String("from_source", m.Star.SourcePosition),
				logger.Float64("from_ra", m.Star.RA),
				logger.Float64("from_decl", m.Star.Decl),
				logger.Float64("to_ra", obs.RA),
				logger.Float64("to_decl", obs.Decl))
		}
	}
	return m
}

func voids(t types.IDType, candidate *model.Star, obs *model.Observation) bool {
	switch t {
	case types.HIP:
		return disagree(candidate, obs, types.Tycho)
	case types.HD:
		return disagree(candidate, obs, types.HIP) || disagree(candidate, obs, types.Tycho)
	}
	return false
}

// disagree reports whether both sides carry a value of kind t and the values differ.
func disagree(s *model.Star, obs *model.Observation, t types.IDType) bool {
	a, b := s.Identifier(t), obs.Identifier(t)
	return !a.IsZero() && !b.IsZero() && a != b
}

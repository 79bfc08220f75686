package catalogue

import (
	"context"
	"fmt"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Outcome classifies what an observation did to the catalogue.
type Outcome string

const (
	OutcomeMatched  Outcome = "matched"
	OutcomeCreated  Outcome = "created"
	OutcomeAmended  Outcome = "amended"
	OutcomeFiltered Outcome = "filtered"
)

// amendOrder is the lookup priority for observations that only amend records.
var amendOrder = [...]types.IDType{types.GaiaDR2, types.Tycho, types.HIP, types.HD, types.BS}

// Result describes one ingested observation.
type Result struct {
	Outcome Outcome
	Match   Match
	Commit  Commit
	Star    *model.Star
}

// Ingest folds one observation into the catalogue: it finds or creates the
// record, copies the observation's attributes onto it and commits it with
// AddStar. Identifier kinds the record failed to claim are rolled back to the
// value it held before, or cleared.
//
// Amending observations that name no admitted record return ErrNoMatch.
func (c *Catalogue) Ingest(ctx context.Context, obs *model.Observation) (Result, error) {
	var res Result
	switch obs.Mode {
	case model.ModeCreate:
		res.Star = model.NewStar()
	case model.ModeMatch:
		res.Match = c.MatchStar(ctx, obs)
		res.Star = res.Match.Star
	case model.ModeAmend:
		s, ok := c.resolve(obs)
		if !ok {
			return res, fmt.Errorf("%s line %d: %w", obs.Catalogue, obs.Line, ErrNoMatch)
		}
		res.Star = s
	default:
		return res, fmt.Errorf("%w: %d", ErrUnknownMode, obs.Mode)
	}

	s := res.Star
	wasAssigned := s.Assigned()
	previous := make([]types.Identifier, len(types.IDTypes))
	for i, t := range types.IDTypes {
		previous[i] = s.Identifier(t)
	}

	c.apply(ctx, s, obs)
	res.Commit = c.AddStar(ctx, s)

	for i, t := range types.IDTypes {
		if !res.Commit.Rejected.Has(t) {
			continue
		}
		if prev := previous[i]; !prev.IsZero() {
			if owner, ok := c.registry.Lookup(prev); ok && owner == s.ID {
				s.SetIdentifier(prev)
				continue
			}
		}
		s.ClearIdentifier(t)
	}

	switch {
	case !res.Commit.Admitted:
		res.Outcome = OutcomeFiltered
	case obs.Mode == model.ModeAmend:
		res.Outcome = OutcomeAmended
	case wasAssigned:
		res.Outcome = OutcomeMatched
	default:
		res.Outcome = OutcomeCreated
		if len(s.Identifiers()) == 0 {
			c.logger.Warn(ctx, "admitted record has no catalogue identifiers",
				logger.String("catalogue", obs.Catalogue),
				logger.Int("line", obs.Line),
				logger.Int("id", s.ID))
		}
	}
	return res, nil
}

// resolve finds the admitted record an amending observation refers to.
func (c *Catalogue) resolve(obs *model.Observation) (*model.Star, bool) {
	for _, t := range amendOrder {
		id := obs.Identifier(t)
		if id.IsZero() {
			continue
		}
		if s, ok := c.Lookup(id); ok {
			return s, true
		}
	}
	return nil, false
}

// apply copies the observation's attributes onto s.
func (c *Catalogue) apply(ctx context.Context, s *model.Star, obs *model.Observation) {
	if obs.HasPosition {
		s.SetPosition(obs.RA, obs.Decl, obs.Catalogue)
	}
	if obs.Mode != model.ModeAmend {
		for _, id := range obs.IDs {
			s.SetIdentifier(id)
		}
	}
	s.Presence |= obs.Presence
	for _, m := range obs.Magnitudes {
		s.SetMagnitude(m.Band, m.Value, obs.Catalogue)
	}
	if obs.ColorBV != nil {
		s.ColorBV = model.Float(*obs.ColorBV)
	}
	if obs.Parallax != nil {
		s.Parallax = model.Float(*obs.Parallax)
		s.SourceParallax = obs.ParallaxSource
		if s.SourceParallax == "" {
			s.SourceParallax = obs.Catalogue
		}
	}
	if obs.ProperMotion != nil {
		s.ProperMotion = model.Float(*obs.ProperMotion)
		if obs.ProperMotionPA != nil {
			s.ProperMotionPA = model.Float(*obs.ProperMotionPA)
		}
	}
	if obs.Variable {
		s.Variable = true
	}
	if obs.NSV > 0 {
		s.NSV = obs.NSV
	}
	s.AddEnglishName(obs.EnglishName, true)
	s.AddCatalogueName(obs.CatalogueName)
	if obs.Designation != nil {
		for _, ch := range s.ApplyDesignation(*obs.Designation) {
			metrics.RecordDesignationChange(ch.Kind)
			c.logger.Warn(ctx, "designation changed",
				logger.String("kind", ch.Kind),
				logger.String("star", s.CatalogueName()),
				logger.Int("hd", s.HD),
				logger.String("old", ch.Old),
				logger.String("new", ch.New))
		}
	}
}

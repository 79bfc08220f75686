package service

import (
	"context"
	"errors"
	"time"

	"github.com/dcf21/star-charter/internal/adapters/sources"
	"github.com/dcf21/star-charter/internal/domain/catalogue"
	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

const outcomeUnmatched = "unmatched"

// applier feeds the merger's observations into the catalogue and keeps the
// per-catalogue counts. Only the merger goroutine calls it.
type applier struct {
	cat      *catalogue.Catalogue
	stages   map[string]*CatalogueSummary
	decoders map[string]*sources.Decoder
	logger   logger.Logger
}

func (a *applier) Apply(ctx context.Context, o *model.Observation) error {
	sum := a.stages[o.Catalogue]
	res, err := a.cat.Ingest(ctx, o)
	switch {
	case errors.Is(err, catalogue.ErrNoMatch):
		sum.Unmatched++
		metrics.RecordMergeOutcome(o.Catalogue, outcomeUnmatched)
		a.logger.Debug(ctx, "no record to amend",
			logger.String("catalogue", o.Catalogue),
			logger.Int("line", o.Line))
		return nil
	case err != nil:
		return err
	}

	switch res.Outcome {
	case catalogue.OutcomeMatched:
		sum.Matched++
	case catalogue.OutcomeCreated:
		sum.Created++
	case catalogue.OutcomeAmended:
		sum.Amended++
	case catalogue.OutcomeFiltered:
		sum.Filtered++
	}
	sum.Rejections += len(res.Commit.Rejected.Types())
	metrics.RecordMergeOutcome(o.Catalogue, string(res.Outcome))
	return nil
}

// stageDone completes a catalogue's summary once the merger has drained it.
// The decoder has finished by then, so its counters are stable.
func (a *applier) stageDone(ctx context.Context, name string, _ int, elapsed time.Duration) {
	sum := a.stages[name]
	if d, ok := a.decoders[name]; ok {
		st := d.Stats()
		sum.Lines, sum.Decoded, sum.Malformed = st.Lines, st.Decoded, st.Malformed
	}
	n := a.cat.Counts()
	sum.Records, sum.Bayer, sum.Flamsteed = n.Records, n.Bayer, n.Flamsteed
	sum.Elapsed = elapsed
	sum.log(ctx, a.logger)
}

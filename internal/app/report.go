package service

import (
	"context"
	"time"

	"github.com/dcf21/star-charter/internal/domain/postprocess"
	"github.com/dcf21/star-charter/pkg/logger"
)

// CatalogueSummary counts what one catalogue contributed to a run.
type CatalogueSummary struct {
	Name string
	// Skipped is set when the catalogue's files were absent and the run went on without it.
	Skipped bool

	Lines     int
	Decoded   int
	Malformed int

	Matched   int
	Created   int
	Amended   int
	Unmatched int
	Filtered  int
	// Rejections counts identifiers a record failed to claim from a brighter one.
	Rejections int

	// Catalogue totals once this catalogue was merged.
	Records   int
	Bayer     int
	Flamsteed int

	Elapsed time.Duration
}

func (c *CatalogueSummary) log(ctx context.Context, l logger.Logger) {
	l.Info(ctx, "catalogue merged",
		logger.String("catalogue", c.Name),
		logger.Int("lines", c.Lines),
		logger.Int("decoded", c.Decoded),
		logger.Int("malformed", c.Malformed),
		logger.Int("matched", c.Matched),
		logger.Int("created", c.Created),
		logger.Int("amended", c.Amended),
		logger.Int("unmatched", c.Unmatched),
		logger.Int("filtered", c.Filtered),
		logger.Int("rejections", c.Rejections),
		logger.Int("records", c.Records),
		logger.Int("bayer", c.Bayer),
		logger.Int("flamsteed", c.Flamsteed),
		logger.Duration("elapsed", c.Elapsed))
}

// Report describes a finished run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration

	// Catalogues lists every selected catalogue in ingestion order.
	Catalogues []CatalogueSummary

	// Records is the number of admitted records.
	Records int
	// Ranked is the number of records with a reference magnitude, i.e. the emitted ones.
	Ranked  int
	Derived postprocess.Summary

	TextRecords int
	JSONRecords int
	TextPath    string
	JSONPath    string
	SQLitePath  string
}

// Catalogue returns the summary for the named catalogue.
func (r *Report) Catalogue(name string) (CatalogueSummary, bool) {
	for _, c := range r.Catalogues {
		if c.Name == name {
			return c, true
		}
	}
	return CatalogueSummary{}, false
}

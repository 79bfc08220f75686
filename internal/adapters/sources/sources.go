// Package sources decodes the input star catalogues into observations.
//
// Each catalogue has a Decoder that finds its files under the data directory,
// reads them line by line (gzip-compressed or plain) and emits one
// model.Observation per usable line. Lines that cannot be decoded are counted
// and skipped.
package sources

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Catalogue names, in ingestion order.
const (
	BrightStars  = "bright_stars"
	Hipparcos    = "hipparcos"
	Tycho1       = "tycho1"
	Tycho2       = "tycho2"
	HipparcosNew = "hipparcos_new"
	GaiaDR1      = "gaia_dr1"
	GaiaDR2      = "gaia_dr2"
	CrossIndex   = "cross_index"
	IAUNames     = "iau_names"
)

// ctxCheckLines is how often decoding checks for cancellation.
const ctxCheckLines = 1024

// parseFunc decodes one line. It returns errSkip for lines without a record
// and an error wrapping ErrMalformedLine for lines that cannot be read.
type parseFunc func(s *settings, line string) (model.Observation, error)

// Source describes one input catalogue.
type Source struct {
	Name string
	// Pattern is a path under the data directory and may contain glob characters.
	Pattern   string
	Mode      model.Mode
	Threshold float64
	// newParser returns the line parser for one file.
	newParser func() parseFunc
}

func stateless(p parseFunc) func() parseFunc {
	return func() parseFunc { return p }
}

var order = []Source{
	{Name: BrightStars, Pattern: "brightStars/catalog.gz", Mode: model.ModeCreate, newParser: stateless(parseBrightStar)},
	{Name: Hipparcos, Pattern: "tycho1/hip_main.dat.gz", Mode: model.ModeMatch, Threshold: 0.1, newParser: stateless(parseHipparcos)},
	{Name: Tycho1, Pattern: "tycho1/tyc_main.dat", Mode: model.ModeMatch, Threshold: 0.1, newParser: stateless(parseTycho1)},
	{Name: Tycho2, Pattern: "tycho2/tyc2.dat.*.gz", Mode: model.ModeMatch, Threshold: 0.01, newParser: stateless(parseTycho2)},
	{Name: HipparcosNew, Pattern: "hipparcosNewReduction/hip2.dat.gz", Mode: model.ModeAmend, newParser: stateless(parseHipparcosNew)},
	{Name: GaiaDR1, Pattern: "gaiaDR1/tgas.dat.gz", Mode: model.ModeMatch, Threshold: 0.01, newParser: stateless(parseGaiaDR1)},
	{Name: GaiaDR2, Pattern: "gaiaDR2/*.csv.gz", Mode: model.ModeMatch, Threshold: 0.01, newParser: newGaiaDR2Parser},
	{Name: CrossIndex, Pattern: "bayerAndFlamsteed/catalog.dat", Mode: model.ModeAmend, newParser: stateless(parseCrossIndex)},
	{Name: IAUNames, Pattern: "brightStars/starNames_iau.txt", Mode: model.ModeAmend, newParser: stateless(parseIAUName)},
}

// Names returns every catalogue name in ingestion order.
func Names() []string {
	out := make([]string, len(order))
	for i, src := range order {
		out[i] = src.Name
	}
	return out
}

// Lookup returns the description of the named catalogue.
func Lookup(name string) (Source, bool) {
	for _, src := range order {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// Stats counts what a decoder did. Read it only after Decode has returned.
type Stats struct {
	Lines     int
	Decoded   int
	Malformed int
}

// Decoder reads one catalogue.
type Decoder struct {
	source   Source
	dataDir  string
	settings settings
	logger   logger.Logger
	stats    Stats
}

// New returns a decoder for the named catalogue rooted at dataDir.
func New(name, dataDir string, opts ...Option) (*Decoder, error) {
	src, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	s := settings{parallaxErrorLimit: defaultParallaxErrorLimit}
	for _, opt := range opts {
		opt(&s)
	}
	l := s.logger
	if l == nil {
		l = logger.Named("sources")
	}
	return &Decoder{
		source:   src,
		dataDir:  dataDir,
		settings: s,
		logger:   l.With(logger.String("catalogue", name)),
	}, nil
}

// Default returns decoders for the selected catalogues in ingestion order.
// An empty selection means every catalogue.
func Default(dataDir string, selected []string, opts ...Option) ([]*Decoder, error) {
	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
		want[name] = true
	}
	var out []*Decoder
	for _, src := range order {
		if len(want) > 0 && !want[src.Name] {
			continue
		}
		d, err := New(src.Name, dataDir, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Name returns the catalogue name.
func (d *Decoder) Name() string { return d.source.Name }

// Source returns the catalogue description.
func (d *Decoder) Source() Source { return d.source }

// Stats returns the decoder's counters.
func (d *Decoder) Stats() Stats { return d.stats }

// Files returns the catalogue's files in sorted order.
func (d *Decoder) Files() ([]string, error) {
	pattern := filepath.Join(d.dataDir, filepath.FromSlash(d.source.Pattern))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", d.source.Name, ErrSourceUnavailable, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w: no files match %s", d.source.Name, ErrSourceUnavailable, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// Available reports whether the catalogue's files exist.
func (d *Decoder) Available() bool {
	_, err := d.Files()
	return err == nil
}

// Decode reads every file of the catalogue and passes each observation to emit.
// It stops at the first emit error.
func (d *Decoder) Decode(ctx context.Context, emit func(model.Observation) error) error {
	files, err := d.Files()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := d.decodeFile(ctx, path, emit); err != nil {
			return err
		}
	}
	d.logger.Debug(ctx, "catalogue read",
		logger.Int("files", len(files)),
		logger.Int("lines", d.stats.Lines),
		logger.Int("decoded", d.stats.Decoded),
		logger.Int("malformed", d.stats.Malformed))
	return nil
}

func (d *Decoder) decodeFile(ctx context.Context, path string, emit func(model.Observation) error) error {
	parse := d.source.newParser()
	lines := 0
	err := readLines(path, func(line string) error {
		d.stats.Lines++
		lines++
		if lines%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		obs, err := parse(&d.settings, line)
		switch {
		case errors.Is(err, errSkip):
			return nil
		case errors.Is(err, ErrMalformedLine):
			d.stats.Malformed++
			metrics.RecordMalformed(d.source.Name)
			d.logger.Debug(ctx, "rejecting line",
				logger.String("file", filepath.Base(path)),
				logger.Int("line", lines),
				logger.Error(err))
			return nil
		case err != nil:
			return fmt.Errorf("%s line %d: %w", filepath.Base(path), lines, err)
		}

		obs.Catalogue = d.source.Name
		obs.Line = d.stats.Lines
		obs.Mode = d.source.Mode
		obs.Threshold = d.source.Threshold
		d.stats.Decoded++
		metrics.RecordDecoded(d.source.Name)
		return emit(obs)
	})
	metrics.RecordLines(d.source.Name, lines)
	if err != nil {
		return fmt.Errorf("%s: %w", d.source.Name, err)
	}
	return nil
}

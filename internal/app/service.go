// Package service runs one merge of the star catalogues: it decodes the
// source catalogues, folds their observations into a single catalogue in a
// fixed order, derives distances and reference magnitudes and writes the
// outputs.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dcf21/star-charter/internal/adapters/mq/queue"
	"github.com/dcf21/star-charter/internal/adapters/mq/worker"
	"github.com/dcf21/star-charter/internal/adapters/output"
	"github.com/dcf21/star-charter/internal/adapters/repository"
	"github.com/dcf21/star-charter/internal/adapters/sources"
	"github.com/dcf21/star-charter/internal/adapters/sqlitestore"
	"github.com/dcf21/star-charter/internal/config"
	"github.com/dcf21/star-charter/internal/domain/catalogue"
	"github.com/dcf21/star-charter/internal/domain/postprocess"
	"github.com/dcf21/star-charter/pkg/logger"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// ctxCheckRecords is how often long loops over records look at the context.
const ctxCheckRecords = 4096

// Service runs merges with a fixed configuration.
type Service struct {
	cfg    config.Config
	logger logger.Logger
}

// New constructs a Service from cfg. A nil cfg means the defaults.
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Service{cfg: *cfg}
	s.cfg.Catalogues = append([]string(nil), cfg.Catalogues...)

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("merge")
	}
	return s
}

// Config returns the configuration the service runs with.
func (s *Service) Config() config.Config { return s.cfg }

// Run performs one complete merge. When ctx ends first it returns the
// context error and leaves no output files behind.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep := &Report{RunID: uuid.NewString(), StartedAt: start.UTC()}
	log := s.logger.With(logger.String("run_id", rep.RunID))

	fields := []logger.Field{
		logger.String("data_dir", s.cfg.DataDir),
		logger.String("output_dir", s.cfg.OutputDir),
		logger.Int("decode_workers", s.cfg.DecodeWorkers),
	}
	if s.cfg.MagnitudeLimit != nil {
		fields = append(fields, logger.Float64("magnitude_limit", *s.cfg.MagnitudeLimit))
	}
	log.Info(ctx, "starting merge", fields...)

	decoders, err := s.decoders(ctx, log, rep)
	if err != nil {
		return nil, err
	}

	catOpts := []catalogue.Option{catalogue.WithLogger(log.Named("catalogue"))}
	if s.cfg.MagnitudeLimit != nil {
		catOpts = append(catOpts, catalogue.WithMagnitudeLimit(*s.cfg.MagnitudeLimit))
	}
	cat := catalogue.New(catOpts...)

	if err := s.merge(ctx, log, cat, decoders, rep); err != nil {
		return nil, err
	}
	rep.Records = cat.Len()

	records, err := s.rank(ctx, log, cat, rep)
	if err != nil {
		return nil, err
	}

	if err := s.writeOutputs(ctx, records, rep); err != nil {
		metrics.RecordErrorByComponent("output", "write")
		return nil, err
	}

	if s.cfg.SQLitePath != "" {
		if err := s.export(ctx, log, records, rep); err != nil {
			metrics.RecordErrorByComponent("sqlite", "export")
			return nil, err
		}
	}

	if s.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics %s: %w", s.cfg.MetricsFile, err)
		}
	}

	rep.Elapsed = time.Since(start)
	log.Info(ctx, "merge complete",
		logger.Int("records", rep.Records),
		logger.Int("ranked", rep.Ranked),
		logger.Int("distances", rep.Derived.Distances),
		logger.Int("parallaxes_dropped", rep.Derived.ParallaxesDropped),
		logger.Int("text_records", rep.TextRecords),
		logger.Int("json_records", rep.JSONRecords),
		logger.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

// decoders builds the selected decoders and drops those whose files are
// missing, when that is allowed.
func (s *Service) decoders(ctx context.Context, log logger.Logger, rep *Report) ([]*sources.Decoder, error) {
	all, err := sources.Default(s.cfg.DataDir, s.cfg.Catalogues,
		sources.WithParallaxErrorLimit(s.cfg.ParallaxErrorLimit),
		sources.WithLogger(log.Named("sources")))
	if err != nil {
		return nil, err
	}

	out := make([]*sources.Decoder, 0, len(all))
	for _, d := range all {
		if _, err := d.Files(); err != nil {
			if !s.cfg.AllowMissingCatalogues {
				return nil, err
			}
			log.Warn(ctx, "catalogue missing, skipping", logger.String("catalogue", d.Name()), logger.Error(err))
			rep.Catalogues = append(rep.Catalogues, CatalogueSummary{Name: d.Name(), Skipped: true})
			continue
		}
		rep.Catalogues = append(rep.Catalogues, CatalogueSummary{Name: d.Name()})
		out = append(out, d)
	}
	return out, nil
}

// merge decodes every catalogue in parallel and feeds the merger, which
// applies them one at a time in ingestion order.
func (s *Service) merge(ctx context.Context, log logger.Logger, cat *catalogue.Catalogue, decoders []*sources.Decoder, rep *Report) error {
	app := &applier{
		cat:      cat,
		stages:   make(map[string]*CatalogueSummary, len(rep.Catalogues)),
		decoders: make(map[string]*sources.Decoder, len(decoders)),
		logger:   log,
	}
	for i := range rep.Catalogues {
		app.stages[rep.Catalogues[i].Name] = &rep.Catalogues[i]
	}

	queues := make([]worker.Queue, 0, len(decoders))
	jobs := make([]worker.Job, 0, len(decoders))
	for _, d := range decoders {
		app.decoders[d.Name()] = d
		q := queue.NewInMemoryQueue(d.Name(), queue.WithCapacity(s.cfg.QueueSize))
		queues = append(queues, q)
		jobs = append(jobs, worker.Job{
			Name: d.Name(),
			Sink: q,
			Decode: func(ctx context.Context, emit worker.Emit) error {
				return d.Decode(ctx, emit)
			},
		})
	}

	pool := worker.NewPool(s.cfg.DecodeWorkers, worker.WithPoolLogger(log.Named("decode-pool")))
	merger := worker.NewMerger(app,
		worker.WithLogger(log.Named("merger")),
		worker.WithStageHook(app.stageDone))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pool.Run(gctx, jobs) })
	g.Go(func() error { return merger.Run(gctx, queues) })
	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn(ctx, "merge cancelled", logger.Error(ctxErr))
		return ctxErr
	}
	return err
}

// rank derives distances and reference magnitudes and returns the emitted
// records in (reference magnitude, RA, ID) order.
func (s *Service) rank(ctx context.Context, log logger.Logger, cat *catalogue.Catalogue, rep *Report) ([]sqlitestore.Record, error) {
	ranked, sum := postprocess.Derive(ctx, cat.Records())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rep.Derived = sum
	rep.Ranked = len(ranked)

	hist := postprocess.NewHistogram()
	index := repository.NewTreapIndex(repository.WithSizeHint(len(ranked)))
	for _, r := range ranked {
		hist.Add(r.Magnitude)
		metrics.ObserveReferenceMagnitude(r.Magnitude)
		e := repository.Entry{ID: r.Star.ID, Magnitude: r.Magnitude, RA: r.Star.RA}
		if err := index.Insert(ctx, e); err != nil {
			return nil, fmt.Errorf("index record %d: %w", r.Star.ID, err)
		}
	}
	hist.Log(ctx, log.Named("histogram"))

	records := make([]sqlitestore.Record, 0, index.Count(ctx))
	var lost error
	err := index.Ascend(ctx, func(e repository.Entry) bool {
		st, ok := cat.Star(e.ID)
		if !ok {
			lost = fmt.Errorf("%w: %d", repository.ErrNotFound, e.ID)
			return false
		}
		records = append(records, sqlitestore.Record{Rank: e.Rank, Star: st, Magnitude: e.Magnitude})
		return true
	})
	if err = errors.Join(err, lost); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) writeOutputs(ctx context.Context, records []sqlitestore.Record, rep *Report) error {
	w, err := output.Create(s.cfg.OutputDir,
		output.WithCompression(s.cfg.CompressOutput),
		output.WithTextMagnitudeLimit(s.cfg.TextMagnitudeLimit))
	if err != nil {
		return err
	}
	for i, r := range records {
		if i%ctxCheckRecords == 0 {
			if err := ctx.Err(); err != nil {
				w.Abort()
				return err
			}
		}
		if err := w.Write(r.Star, r.Magnitude); err != nil {
			w.Abort()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	rep.TextRecords, rep.JSONRecords = w.Counts()
	rep.TextPath, rep.JSONPath = w.Paths()
	return nil
}

func (s *Service) export(ctx context.Context, log logger.Logger, records []sqlitestore.Record, rep *Report) error {
	st, err := sqlitestore.Open(s.cfg.SQLitePath,
		sqlitestore.WithBatchSize(s.cfg.SQLiteBatchSize),
		sqlitestore.WithLogger(log.Named("sqlite")))
	if err != nil {
		return err
	}
	run := sqlitestore.Run{ID: rep.RunID, StartedAt: rep.StartedAt, MagnitudeLimit: s.cfg.MagnitudeLimit}
	err = st.Export(ctx, run, records)
	if cerr := st.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}
	rep.SQLitePath = st.Path()
	return nil
}

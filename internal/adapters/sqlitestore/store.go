// Package sqlitestore exports the merged catalogue to an SQLite database.
package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/pkg/logger"
)

// nameSeparator joins name lists in a single column.
const nameSeparator = "|"

// Run identifies the merge being exported.
type Run struct {
	ID             string
	StartedAt      time.Time
	MagnitudeLimit *float64
}

// Record is one star in emission order.
type Record struct {
	Rank      int
	Star      *model.Star
	Magnitude float64
}

// Store is an SQLite database holding one exported catalogue.
type Store struct {
	db        *gorm.DB
	path      string
	batchSize int
	logger    logger.Logger
}

// Open creates the database at path, replacing any existing file, and
// creates its tables.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("sqlitestore")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: remove %s: %w", ErrOpen, p, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		CreateBatchSize:        s.batchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if err := db.AutoMigrate(&MergeRun{}, &StarRow{}, &MagnitudeRow{}); err != nil {
		s.db = db
		_ = s.Close()
		return nil, fmt.Errorf("%w: migrate: %w", ErrOpen, err)
	}
	s.db = db
	return s, nil
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB { return s.db }

// Path returns the database file name.
func (s *Store) Path() string { return s.path }

// Export writes the run and its records in one transaction.
func (s *Store) Export(ctx context.Context, run Run, records []Record) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mr := MergeRun{
			RunID:          run.ID,
			StartedAt:      run.StartedAt,
			MagnitudeLimit: run.MagnitudeLimit,
			Records:        len(records),
		}
		if err := tx.Create(&mr).Error; err != nil {
			return err
		}

		batch := make([]StarRow, 0, s.batchSize)
		for _, r := range records {
			batch = append(batch, toRow(mr.ID, r))
			if len(batch) < s.batchSize {
				continue
			}
			if err := tx.CreateInBatches(&batch, s.batchSize).Error; err != nil {
				return err
			}
			batch = batch[:0]
		}
		if len(batch) > 0 {
			return tx.CreateInBatches(&batch, s.batchSize).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	s.logger.Info(ctx, "catalogue exported to sqlite",
		logger.String("path", s.path),
		logger.Int("records", len(records)),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(runID uint, r Record) StarRow {
	st := r.Star
	row := StarRow{
		MergeRunID:     runID,
		Rank:           r.Rank,
		StarID:         st.ID,
		HD:             st.HD,
		BS:             st.BS,
		HIP:            st.HIP,
		Tycho:          st.Tycho,
		GaiaDR2:        st.GaiaDR2,
		RA:             st.RA,
		Decl:           st.Decl,
		RefMagnitude:   r.Magnitude,
		ColorBV:        st.ColorBV,
		Parallax:       st.Parallax,
		Distance:       st.Distance,
		ProperMotion:   st.ProperMotion,
		ProperMotionPA: st.ProperMotionPA,
		SourcePosition: st.SourcePosition,
		SourceParallax: st.SourceParallax,
		Constellation:  st.Designation.Constellation,
		BayerLetter:    st.Designation.BayerLetter,
		Flamsteed:      st.Designation.Flamsteed,
		EnglishNames:   strings.Join(st.EnglishNames, nameSeparator),
		CatalogueNames: strings.Join(st.CatalogueNames, nameSeparator),
		NSV:            st.NSV,
		Variable:       st.Variable,
		Presence:       strings.Join(st.Presence.Names(), ","),
	}
	for _, b := range types.Bands {
		if m := st.Magnitudes[b]; m.Set {
			row.Magnitudes = append(row.Magnitudes, MagnitudeRow{Band: b.String(), Value: m.Value, Source: m.Source})
		}
	}
	return row
}

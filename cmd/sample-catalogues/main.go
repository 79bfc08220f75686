package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/pflag"

	"github.com/dcf21/star-charter/internal/testcatalogs"
	"github.com/dcf21/star-charter/pkg/logger"
)

func main() {
	defaults := testcatalogs.DefaultSampleConfig()
	var (
		dir        = pflag.StringP("out", "o", "sample-data", "Directory to write the source tree into")
		stars      = pflag.Int("stars", defaults.Stars, "Number of stars with Hipparcos entries")
		faintStars = pflag.Int("faint-stars", defaults.FaintStars, "Number of extra Tycho-2/Gaia stars without HIP numbers")
		brightMag  = pflag.Float64("bright-mag", defaults.BrightMag, "Stars brighter than this also go into the Bright Star Catalogue")
		seed       = pflag.Uint64("seed", defaults.Seed, "Random seed")
		verbose    = pflag.BoolP("verbose", "v", false, "List every file written")
	)
	pflag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithLevel(level)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	l := logger.Named("sample-catalogues")

	tree := testcatalogs.Sample(testcatalogs.SampleConfig{
		Stars:      *stars,
		FaintStars: *faintStars,
		BrightMag:  *brightMag,
		Seed:       *seed,
	})
	if err := tree.Write(*dir); err != nil {
		l.Error(ctx, "writing sample tree failed", logger.Error(err))
		os.Exit(1)
	}

	files := tree.Files()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l.Debug(ctx, "wrote catalogue file",
			logger.String("path", filepath.Join(*dir, filepath.FromSlash(name))),
			logger.Int("lines", len(files[name])))
	}
	l.Info(ctx, "sample source tree written",
		logger.String("dir", *dir),
		logger.Int("files", len(files)),
		logger.Int("stars", *stars),
		logger.Int("faint_stars", *faintStars))
}

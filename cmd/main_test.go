package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/dcf21/star-charter/internal/adapters/output"
	"github.com/dcf21/star-charter/internal/config"
	"github.com/dcf21/star-charter/internal/testcatalogs"
)

func sampleEnv(t *testing.T) (dataDir, outDir string) {
	t.Helper()
	dataDir = t.TempDir()
	outDir = filepath.Join(t.TempDir(), "out")
	tree := testcatalogs.Sample(testcatalogs.SampleConfig{Stars: 30, FaintStars: 30, BrightMag: 6, Seed: 5})
	if err := tree.Write(dataDir); err != nil {
		t.Fatalf("write sample tree: %v", err)
	}
	t.Setenv(config.EnvPrefix+"DATA_DIR", dataDir)
	t.Setenv(config.EnvPrefix+"OUTPUT_DIR", outDir)
	t.Setenv(config.EnvPrefix+"LOG_LEVEL", "error")
	return dataDir, outDir
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the merge command and a sample source tree", t, func() {
		_, outDir := sampleEnv(t)
		cmd := newRootCommand()

		convey.Convey("When it runs with a magnitude limit", func() {
			cmd.SetArgs([]string{"--magnitude-limit", "6.5"})
			err := cmd.ExecuteContext(context.Background())

			convey.Convey("Then both compressed outputs are written", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, name := range []string{output.TextFile, output.JSONFile} {
					_, statErr := os.Stat(filepath.Join(outDir, name+".gz"))
					convey.So(statErr, convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When it is given a positional argument", func() {
			cmd.SetArgs([]string{"extra"})
			err := cmd.ExecuteContext(context.Background())

			convey.Convey("Then it refuses to run", func() {
				convey.So(err, convey.ShouldNotBeNil)
				_, statErr := os.Stat(outDir)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the magnitude limit is not a number", func() {
			cmd.SetArgs([]string{"--magnitude-limit", "bright"})
			err := cmd.ExecuteContext(context.Background())

			convey.Convey("Then flag parsing fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a configuration that selects a single catalogue", t, func() {
		sampleEnv(t)
		t.Setenv(config.EnvPrefix+"CATALOGUES", "hipparcos")
		t.Setenv(config.EnvPrefix+"COMPRESS_OUTPUT", "false")

		convey.Convey("When run is called without flags", func() {
			rep, err := run(context.Background(), nil)

			convey.Convey("Then only that catalogue is merged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rep.Catalogues, convey.ShouldHaveLength, 1)
				convey.So(rep.Records, convey.ShouldEqual, 30)
				convey.So(rep.TextPath, convey.ShouldEndWith, output.TextFile)
			})
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		sampleEnv(t)
		t.Setenv(config.EnvPrefix+"QUEUE_SIZE", "0")

		convey.Convey("When run is called", func() {
			_, err := run(context.Background(), nil)

			convey.Convey("Then it reports the configuration error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

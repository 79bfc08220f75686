package config_test

import (
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/dcf21/star-charter/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.DataDir, convey.ShouldEqual, "..")
			convey.So(cfg.OutputDir, convey.ShouldEqual, "output")
			convey.So(cfg.CompressOutput, convey.ShouldBeTrue)
			convey.So(cfg.MagnitudeLimit, convey.ShouldBeNil)
			convey.So(cfg.TextMagnitudeLimit, convey.ShouldEqual, 12)
			convey.So(cfg.Catalogues, convey.ShouldBeEmpty)
			convey.So(cfg.DecodeWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.QueueSize, convey.ShouldEqual, 4096)
			convey.So(cfg.ParallaxErrorLimit, convey.ShouldEqual, 0.3)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an invalid config", t, func() {
		cfg := config.New()
		nan := math.NaN()

		cases := []struct {
			name   string
			mutate func()
		}{
			{"empty data dir", func() { cfg.DataDir = "" }},
			{"empty output dir", func() { cfg.OutputDir = "" }},
			{"zero queue", func() { cfg.QueueSize = 0 }},
			{"negative workers", func() { cfg.DecodeWorkers = -1 }},
			{"parallax limit 0", func() { cfg.ParallaxErrorLimit = 0 }},
			{"parallax limit 1.5", func() { cfg.ParallaxErrorLimit = 1.5 }},
			{"NaN magnitude limit", func() { cfg.MagnitudeLimit = &nan }},
			{"unknown log format", func() { cfg.LogFormat = "xml" }},
			{"unknown catalogue", func() { cfg.Catalogues = []string{"hipparcos", "sdss"} }},
			{"zero sqlite batch", func() { cfg.SQLiteBatchSize = 0 }},
			{"infinite text limit", func() { cfg.TextMagnitudeLimit = math.Inf(1) }},
		}
		for _, tc := range cases {
			convey.Convey("When it has "+tc.name, func() {
				tc.mutate()
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

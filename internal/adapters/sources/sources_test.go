package sources_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcf21/star-charter/internal/adapters/sources"
	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/internal/testcatalogs"
	"github.com/dcf21/star-charter/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

func collect(ctx context.Context, d *sources.Decoder) ([]model.Observation, error) {
	var out []model.Observation
	err := d.Decode(ctx, func(o model.Observation) error {
		out = append(out, o)
		return nil
	})
	return out, err
}

func TestDefault(t *testing.T) {
	Convey("Given the default decoder set", t, func() {
		Convey("Then every catalogue is present in ingestion order", func() {
			decoders, err := sources.Default("data", nil)
			So(err, ShouldBeNil)
			names := make([]string, len(decoders))
			for i, d := range decoders {
				names[i] = d.Name()
			}
			So(names, ShouldResemble, sources.Names())
			So(names[0], ShouldEqual, sources.BrightStars)
			So(names[len(names)-1], ShouldEqual, sources.IAUNames)
		})

		Convey("Then a selection keeps ingestion order", func() {
			decoders, err := sources.Default("data", []string{sources.IAUNames, sources.Hipparcos})
			So(err, ShouldBeNil)
			So(decoders, ShouldHaveLength, 2)
			So(decoders[0].Name(), ShouldEqual, sources.Hipparcos)
			So(decoders[1].Name(), ShouldEqual, sources.IAUNames)
		})

		Convey("Then an unknown catalogue is an error", func() {
			_, err := sources.Default("data", []string{"sdss"})
			So(errors.Is(err, sources.ErrUnknownSource), ShouldBeTrue)
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a source tree on disk", t, func() {
		dir := t.TempDir()
		tree := testcatalogs.Tree{
			Hipparcos: []testcatalogs.Hipparcos{
				{HIP: 1, V: 5, RA: 10, Decl: 10},
				{HIP: 2, V: 6, RA: 20, Decl: 20},
			},
			Tycho2: []testcatalogs.Tycho2{{Region: 1, Number: 1, Component: 1, RA: 1, Decl: 1, BT: 9, VT: 8}},
			Extra: map[string][]string{
				testcatalogs.HipparcosFile: {"H|garbage"},
			},
		}
		So(tree.Write(dir), ShouldBeNil)

		Convey("When the Hipparcos catalogue is decoded", func() {
			d, err := sources.New(sources.Hipparcos, dir)
			So(err, ShouldBeNil)
			obs, err := collect(context.Background(), d)
			So(err, ShouldBeNil)

			Convey("Then good lines become observations tagged with the catalogue", func() {
				So(obs, ShouldHaveLength, 2)
				So(obs[0].Catalogue, ShouldEqual, sources.Hipparcos)
				So(obs[0].Mode, ShouldEqual, model.ModeMatch)
				So(obs[0].Threshold, ShouldEqual, 0.1)
				So(obs[0].Line, ShouldEqual, 1)
				So(obs[1].Line, ShouldEqual, 2)
				So(obs[1].Identifier(types.HIP), ShouldResemble, types.HIPNumber(2))
			})

			Convey("Then malformed lines are counted and skipped", func() {
				So(d.Stats(), ShouldResemble, sources.Stats{Lines: 3, Decoded: 2, Malformed: 1})
			})
		})

		Convey("When several Tycho-2 files exist they are read in name order", func() {
			second := testcatalogs.Tycho2{Region: 2, Number: 2, Component: 1, RA: 2, Decl: 2, BT: 9, VT: 8}
			So(testcatalogs.WriteFile(filepath.Join(dir, "tycho2", "tyc2.dat.01.gz"), []string{second.Line()}), ShouldBeNil)

			d, err := sources.New(sources.Tycho2, dir)
			So(err, ShouldBeNil)
			obs, err := collect(context.Background(), d)
			So(err, ShouldBeNil)
			So(obs, ShouldHaveLength, 2)
			So(obs[0].Identifier(types.Tycho).Name, ShouldEqual, "1-1-1")
			So(obs[1].Identifier(types.Tycho).Name, ShouldEqual, "2-2-1")
			So(obs[1].Line, ShouldEqual, 2)
		})

		Convey("When the IAU names file has only a comment", func() {
			d, err := sources.New(sources.IAUNames, dir)
			So(err, ShouldBeNil)
			obs, err := collect(context.Background(), d)
			So(err, ShouldBeNil)
			So(obs, ShouldBeEmpty)
			So(d.Stats().Malformed, ShouldEqual, 0)
		})

		Convey("When a catalogue's file is missing", func() {
			So(os.Remove(filepath.Join(dir, filepath.FromSlash(testcatalogs.CrossIndexFile))), ShouldBeNil)
			d, err := sources.New(sources.CrossIndex, dir)
			So(err, ShouldBeNil)
			So(d.Available(), ShouldBeFalse)
			_, err = collect(context.Background(), d)
			So(errors.Is(err, sources.ErrSourceUnavailable), ShouldBeTrue)
		})

		Convey("When emit fails decoding stops with that error", func() {
			d, err := sources.New(sources.Hipparcos, dir)
			So(err, ShouldBeNil)
			stop := errors.New("stop")
			err = d.Decode(context.Background(), func(model.Observation) error { return stop })
			So(errors.Is(err, stop), ShouldBeTrue)
		})
	})
}

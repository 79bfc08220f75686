package postprocess_test

import (
	"context"
	"testing"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/postprocess"
	"github.com/dcf21/star-charter/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given a parallax of 10 mas", t, func() {
		d, ok := postprocess.DistanceLY(10)

		Convey("Then the distance is about 326 light years", func() {
			So(ok, ShouldBeTrue)
			So(d, ShouldAlmostEqual, 326.1636, 0.01)
		})
	})

	Convey("Given unusable parallaxes", t, func() {
		Convey("Then no distance is derived and the parallax is cleared", func() {
			for _, p := range []float64{0, 5e-8, -3} {
				s := model.NewStar()
				s.Parallax = model.Float(p)
				s.SourceParallax = "hipparcos"

				So(postprocess.DeriveDistance(s), ShouldBeFalse)
				So(s.Parallax, ShouldBeNil)
				So(s.Distance, ShouldBeNil)
				So(s.SourceParallax, ShouldEqual, "")
			}
		})
	})
}

func TestReferenceMagnitude(t *testing.T) {
	Convey("Given stars with different photometry", t, func() {
		Convey("When V is known", func() {
			s := model.NewStar()
			s.SetMagnitude(types.BandV, 4.2, "hipparcos")
			s.SetMagnitude(types.BandG, 3.0, "gaia_dr2")
			m, ok := postprocess.ReferenceMagnitude(s)

			Convey("Then V is used", func() {
				So(ok, ShouldBeTrue)
				So(m, ShouldEqual, 4.2)
			})
		})

		Convey("When only G, BP and RP are known", func() {
			s := model.NewStar()
			s.SetMagnitude(types.BandG, 10, "gaia_dr2")
			s.SetMagnitude(types.BandBP, 10.5, "gaia_dr2")
			s.SetMagnitude(types.BandRP, 9.5, "gaia_dr2")
			m, _ := postprocess.ReferenceMagnitude(s)

			Convey("Then the colour transform is applied", func() {
				So(m, ShouldAlmostEqual, 10+0.0176+0.1732+0.006860, 1e-12)
			})
		})

		Convey("When only G is known", func() {
			s := model.NewStar()
			s.SetMagnitude(types.BandG, 12, "gaia_dr2")
			m, _ := postprocess.ReferenceMagnitude(s)

			Convey("Then the constant offset is applied", func() {
				So(m, ShouldAlmostEqual, 12.0176, 1e-12)
			})
		})

		Convey("When only Tycho bands are known", func() {
			s := model.NewStar()
			s.SetMagnitude(types.BandVT, 8, "tycho2")
			_, ok := postprocess.ReferenceMagnitude(s)

			Convey("Then there is no reference magnitude", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestDerive(t *testing.T) {
	Convey("Given a mixed set of records", t, func() {
		a := model.NewStar()
		a.SetMagnitude(types.BandV, 1, "bright_stars")
		a.Parallax = model.Float(100)
		b := model.NewStar()
		b.Parallax = model.Float(0)
		c := model.NewStar()
		c.SetMagnitude(types.BandG, 15, "gaia_dr2")

		ranked, sum := postprocess.Derive(context.Background(), []*model.Star{a, b, c})

		Convey("Then ranked records keep input order and counts are reported", func() {
			So(ranked, ShouldHaveLength, 2)
			So(ranked[0].Star, ShouldEqual, a)
			So(ranked[1].Magnitude, ShouldAlmostEqual, 15.0176, 1e-12)
			So(sum, ShouldResemble, postprocess.Summary{Distances: 1, ParallaxesDropped: 1, Unranked: 1})
			So(*a.Distance, ShouldAlmostEqual, 32.61636, 0.001)
		})
	})
}

func TestHistogram(t *testing.T) {
	Convey("Given the default histogram", t, func() {
		h := postprocess.NewHistogram()
		for _, m := range []float64{-2, -1.9, 0.1, 0.25, 19.99, 20, -3} {
			h.Add(m)
		}
		bins := h.Bins()

		Convey("Then it has 88 quarter-magnitude bins", func() {
			So(bins, ShouldHaveLength, 88)
			So(bins[0].Low, ShouldEqual, -2)
			So(bins[0].High, ShouldEqual, -1.75)
			So(bins[87].High, ShouldEqual, 20)
		})

		Convey("Then magnitudes land in their bins with running totals of the covered range", func() {
			So(bins[0].Count, ShouldEqual, 2)
			So(bins[8].Count, ShouldEqual, 1)
			So(bins[9].Count, ShouldEqual, 1)
			So(bins[87].Count, ShouldEqual, 1)
			So(bins[0].Cumulative, ShouldEqual, 2)
			So(bins[9].Cumulative, ShouldEqual, 4)
			So(bins[87].Cumulative, ShouldEqual, 5)
			below, above := h.OutOfRange()
			So(below, ShouldEqual, 1)
			So(above, ShouldEqual, 1)
		})
	})
}

package sources

import (
	"errors"
	"math"
	"testing"

	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/internal/testcatalogs"
	. "github.com/smartystreets/goconvey/convey"
)

func defaults() *settings {
	return &settings{parallaxErrorLimit: defaultParallaxErrorLimit}
}

// blank clears columns [from, to) of line.
func blank(line string, from, to int) string {
	b := []byte(line)
	for i := from; i < to && i < len(b); i++ {
		b[i] = ' '
	}
	return string(b)
}

func TestParseBrightStar(t *testing.T) {
	Convey("Given a Bright Star Catalogue line", t, func() {
		star := testcatalogs.BrightStar{
			BS: 15, HD: 358, Flamsteed: 21, Bayer: "Alp", BayerNumber: 2, Constellation: "And",
			Variability: "12345", RA: 15, Decl: -30.5, V: 2.06,
		}

		Convey("When it is decoded", func() {
			obs, err := parseBrightStar(defaults(), star.Line())
			So(err, ShouldBeNil)

			Convey("Then position and magnitude are read", func() {
				So(obs.HasPosition, ShouldBeTrue)
				So(obs.RA, ShouldAlmostEqual, 15, 1e-3)
				So(obs.Decl, ShouldAlmostEqual, -30.5, 1e-3)
				So(obs.Magnitudes, ShouldHaveLength, 1)
				So(obs.Magnitudes[0].Band, ShouldEqual, types.BandV)
				So(obs.Magnitudes[0].Value, ShouldAlmostEqual, 2.06)
				So(obs.Presence.Has(types.InYBSC), ShouldBeTrue)
			})

			Convey("Then identifiers and designations are read", func() {
				So(obs.Identifier(types.BS), ShouldResemble, types.BSNumber(15))
				So(obs.Identifier(types.HD), ShouldResemble, types.HDNumber(358))
				So(obs.Designation, ShouldNotBeNil)
				So(obs.Designation.BayerLetter, ShouldEqual, `\alpha^2`)
				So(obs.Designation.Constellation, ShouldEqual, "And")
				So(obs.Designation.Flamsteed, ShouldEqual, 21)
			})

			Convey("Then a numeric variability designation becomes the NSV number", func() {
				So(obs.NSV, ShouldEqual, 12345)
				So(obs.Variable, ShouldBeTrue)
				So(obs.CatalogueName, ShouldBeEmpty)
			})
		})

		Convey("When the variability designation names another catalogue", func() {
			star.Variability = "PV Cep"
			obs, err := parseBrightStar(defaults(), star.Line())
			So(err, ShouldBeNil)
			So(obs.CatalogueName, ShouldEqual, "PV Cep")
			So(obs.Variable, ShouldBeTrue)
		})

		Convey("When the variability is uncertain or just 'var'", func() {
			star.Variability = "V341 Cep?"
			obs, err := parseBrightStar(defaults(), star.Line())
			So(err, ShouldBeNil)
			So(obs.Variable, ShouldBeFalse)

			star.Variability = "Var"
			obs, err = parseBrightStar(defaults(), star.Line())
			So(err, ShouldBeNil)
			So(obs.Variable, ShouldBeTrue)
			So(obs.CatalogueName, ShouldBeEmpty)
		})

		Convey("When the magnitude is blank", func() {
			_, err := parseBrightStar(defaults(), blank(star.Line(), 102, 107))
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})

		Convey("When the star has neither Bayer letter nor Flamsteed number", func() {
			star.Bayer, star.Flamsteed, star.HD = "", 0, 0
			obs, err := parseBrightStar(defaults(), star.Line())
			So(err, ShouldBeNil)
			So(obs.Designation, ShouldBeNil)
			So(obs.Identifier(types.HD).IsZero(), ShouldBeTrue)
		})
	})
}

func TestParseHipparcos(t *testing.T) {
	Convey("Given a Hipparcos line", t, func() {
		h := testcatalogs.Hipparcos{
			HIP: 32349, HD: 48915, V: -1.44, RA: 101.28715539, Decl: -16.71611582,
			BT: testcatalogs.F(-1.088), VT: testcatalogs.F(-1.413), BV: testcatalogs.F(0.009),
			Astrometry: testcatalogs.Astro(379.21, 1.58, 3, 4),
		}

		Convey("Then every column is decoded", func() {
			obs, err := parseHipparcos(defaults(), h.Line())
			So(err, ShouldBeNil)
			So(obs.Identifier(types.HIP), ShouldResemble, types.HIPNumber(32349))
			So(obs.Identifier(types.HD), ShouldResemble, types.HDNumber(48915))
			So(obs.RA, ShouldAlmostEqual, 101.28715539)
			So(obs.Decl, ShouldAlmostEqual, -16.71611582)
			So(obs.Magnitudes, ShouldHaveLength, 3)
			So(*obs.ColorBV, ShouldAlmostEqual, 0.009)
			So(*obs.Parallax, ShouldAlmostEqual, 379.21)
			So(*obs.ProperMotion, ShouldAlmostEqual, 5)
			So(*obs.ProperMotionPA, ShouldAlmostEqual, math.Atan2(3, 4)*180/math.Pi)
			So(obs.Presence.Has(types.InHipparcos), ShouldBeTrue)
		})

		Convey("Then an imprecise parallax is dropped", func() {
			h.Astrometry = testcatalogs.Astro(10, 4, 0, 0)
			obs, err := parseHipparcos(defaults(), h.Line())
			So(err, ShouldBeNil)
			So(obs.Parallax, ShouldBeNil)

			obs, err = parseHipparcos(&settings{parallaxErrorLimit: 0.5}, h.Line())
			So(err, ShouldBeNil)
			So(*obs.Parallax, ShouldAlmostEqual, 10)
		})

		Convey("Then a zero parallax is ignored", func() {
			h.Astrometry = testcatalogs.Astro(0, 1, 0, 0)
			obs, err := parseHipparcos(defaults(), h.Line())
			So(err, ShouldBeNil)
			So(obs.Parallax, ShouldBeNil)
		})

		Convey("Then a missing position is malformed", func() {
			_, err := parseHipparcos(defaults(), blank(h.Line(), 51, 63))
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})
}

func TestProperMotion(t *testing.T) {
	Convey("Position angles are measured east of north within [0, 360)", t, func() {
		total, angle := properMotion(0, 2)
		So(total, ShouldAlmostEqual, 2)
		So(angle, ShouldAlmostEqual, 0)

		_, angle = properMotion(-1, 0)
		So(angle, ShouldAlmostEqual, 270)

		_, angle = properMotion(0, -1)
		So(angle, ShouldAlmostEqual, 180)
	})
}

func TestParseTycho(t *testing.T) {
	Convey("Given a Tycho-1 line", t, func() {
		line := testcatalogs.Tycho1{
			Region: 5949, Number: 2777, Component: 1, HIP: 32349, HD: 48915,
			V: -1.44, BV: 0.01, RA: 101.28, Decl: -16.71,
		}.Line()

		obs, err := parseTycho1(defaults(), line)
		So(err, ShouldBeNil)
		So(obs.Identifier(types.Tycho), ShouldResemble, types.TychoID("5949-2777-1"))
		So(obs.Identifier(types.HIP), ShouldResemble, types.HIPNumber(32349))
		So(obs.Identifier(types.HD), ShouldResemble, types.HDNumber(48915))
		So(*obs.ColorBV, ShouldAlmostEqual, 0.01)
		So(obs.Parallax, ShouldBeNil)
		So(obs.ProperMotion, ShouldBeNil)

		Convey("Then a missing B-V is malformed", func() {
			_, err := parseTycho1(defaults(), blank(line, 245, 251))
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})

	Convey("Given a Tycho-2 line", t, func() {
		line := testcatalogs.Tycho2{Region: 12, Number: 345, Component: 1, RA: 10.5, Decl: 20.25, BT: 6.0, VT: 5.0}.Line()

		obs, err := parseTycho2(defaults(), line)
		So(err, ShouldBeNil)

		Convey("Then V and B-V come from the Tycho photometry", func() {
			So(obs.Identifier(types.Tycho), ShouldResemble, types.TychoID("12-345-1"))
			So(obs.Identifier(types.HIP).IsZero(), ShouldBeTrue)
			So(obs.Magnitude, ShouldAlmostEqual, 4.91)
			So(*obs.ColorBV, ShouldAlmostEqual, 0.85)
			So(obs.Magnitudes, ShouldHaveLength, 3)
		})
	})
}

func TestParseGaiaDR1(t *testing.T) {
	Convey("Given a TGAS line", t, func() {
		g := testcatalogs.GaiaDR1{Tycho: "1-2-1", RA: 45, Decl: 10, G: 9.5, Astrometry: testcatalogs.Astro(5, 0.3, 1, 1)}

		Convey("Then the G magnitude is diagnostic only", func() {
			obs, err := parseGaiaDR1(defaults(), g.Line())
			So(err, ShouldBeNil)
			So(obs.Magnitude, ShouldAlmostEqual, 9.5)
			So(obs.Magnitudes, ShouldBeEmpty)
			So(obs.Identifier(types.Tycho), ShouldResemble, types.TychoID("1-2-1"))
			So(*obs.Parallax, ShouldAlmostEqual, 5)
		})

		Convey("Then a line with neither HIP nor TYC is rejected", func() {
			g.Tycho = ""
			_, err := parseGaiaDR1(defaults(), g.Line())
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})
}

func TestParseGaiaDR2(t *testing.T) {
	Convey("Given a Gaia DR2 file", t, func() {
		parse := newGaiaDR2Parser()

		_, err := parse(defaults(), testcatalogs.GaiaDR2Header)
		So(errors.Is(err, errSkip), ShouldBeTrue)

		Convey("Then rows are read by column name", func() {
			row := testcatalogs.GaiaDR2{
				SourceID: "2947050466531873024", Tycho: "5949-2777-1", HIP: 32349, RA: 101.28, Decl: -16.71,
				G: testcatalogs.F(8.5), RP: testcatalogs.F(8.1), Astrometry: testcatalogs.Astro(2, 0.1, 1, 0),
			}
			obs, err := parse(defaults(), row.Line())
			So(err, ShouldBeNil)
			So(obs.Identifier(types.GaiaDR2), ShouldResemble, types.DR2ID("2947050466531873024"))
			So(obs.Identifier(types.HIP), ShouldResemble, types.HIPNumber(32349))
			So(obs.Magnitudes, ShouldHaveLength, 2)
			So(obs.Magnitude, ShouldAlmostEqual, 8.5)
			So(*obs.ProperMotionPA, ShouldAlmostEqual, 90)
		})

		Convey("Then a row without a position is malformed", func() {
			_, err := parse(defaults(), "1,,,,,,,,,,,")
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})

	Convey("A header without the required columns fails the file", t, func() {
		_, err := newGaiaDR2Parser()(defaults(), "source_id,ra")
		So(errors.Is(err, ErrMissingColumn), ShouldBeTrue)
	})
}

func TestParseCrossIndex(t *testing.T) {
	Convey("Given cross index lines", t, func() {
		Convey("Then a separate letter and number combine", func() {
			obs, err := parseCrossIndex(defaults(), testcatalogs.CrossIndex{HD: 358, Bayer: "alf", BayerNumber: "2", Constellation: "And", Flamsteed: 21}.Line())
			So(err, ShouldBeNil)
			So(obs.Identifier(types.HD), ShouldResemble, types.HDNumber(358))
			So(obs.Designation.BayerLetter, ShouldEqual, `\alpha^2`)
			So(obs.Designation.Flamsteed, ShouldEqual, 21)
			So(obs.Designation.Constellation, ShouldEqual, "And")
		})

		Convey("Then a run-together letter and number are split", func() {
			obs, err := parseCrossIndex(defaults(), testcatalogs.CrossIndex{HD: 100, Bayer: "c01", Constellation: "Pup"}.Line())
			So(err, ShouldBeNil)
			So(obs.Designation.BayerLetter, ShouldEqual, "c^1")
		})

		Convey("Then a line with only an HD number has no designation", func() {
			obs, err := parseCrossIndex(defaults(), testcatalogs.CrossIndex{HD: 7}.Line())
			So(err, ShouldBeNil)
			So(obs.Designation, ShouldBeNil)
		})

		Convey("Then a line without an HD number is malformed", func() {
			_, err := parseCrossIndex(defaults(), testcatalogs.CrossIndex{Bayer: "alf"}.Line())
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})
}

func TestParseIAUName(t *testing.T) {
	Convey("Given IAU star name lines", t, func() {
		Convey("Then comments and short lines are skipped", func() {
			_, err := parseIAUName(defaults(), "# HR number parallax name")
			So(errors.Is(err, errSkip), ShouldBeTrue)
			_, err = parseIAUName(defaults(), "HR")
			So(errors.Is(err, errSkip), ShouldBeTrue)
		})

		Convey("Then the name is normalised and a parallax is manual", func() {
			obs, err := parseIAUName(defaults(), testcatalogs.IAUName{Catalogue: "HD", Number: 48915, Parallax: 379.21, Name: "Sirius "}.Line())
			So(err, ShouldBeNil)
			So(obs.Identifier(types.HD), ShouldResemble, types.HDNumber(48915))
			So(obs.EnglishName, ShouldEqual, "Sirius")
			So(*obs.Parallax, ShouldAlmostEqual, 379.21)
			So(obs.ParallaxSource, ShouldEqual, ParallaxSourceManual)
		})

		Convey("Then a zero parallax is left alone", func() {
			obs, err := parseIAUName(defaults(), testcatalogs.IAUName{Catalogue: "HR", Number: 2491, Name: "Sirius"}.Line())
			So(err, ShouldBeNil)
			So(obs.Identifier(types.BS), ShouldResemble, types.BSNumber(2491))
			So(obs.Parallax, ShouldBeNil)
		})

		Convey("Then an unknown catalogue is malformed", func() {
			_, err := parseIAUName(defaults(), testcatalogs.IAUName{Catalogue: "GJ", Number: 551, Name: "Proxima"}.Line())
			So(errors.Is(err, ErrMalformedLine), ShouldBeTrue)
		})
	})
}

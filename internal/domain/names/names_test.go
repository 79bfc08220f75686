package names_test

import (
	"testing"

	"github.com/dcf21/star-charter/internal/domain/names"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBayerTeX(t *testing.T) {
	Convey("Given catalogue abbreviations", t, func() {
		Convey("Then both catalogue spellings map to TeX", func() {
			So(names.BayerTeX("Alp", 0), ShouldEqual, `\alpha`)
			So(names.BayerTeX("alf", 0), ShouldEqual, `\alpha`)
			So(names.BayerTeX("mu.", 0), ShouldEqual, `\mu`)
			So(names.BayerTeX("ksi", 0), ShouldEqual, `\xi`)
			So(names.BayerTeX("Omi", 2), ShouldEqual, "O^2")
			So(names.BayerTeX("Bet", 1), ShouldEqual, `\beta^1`)
		})

		Convey("Then unknown or empty abbreviations pass through", func() {
			So(names.BayerTeX("b", 0), ShouldEqual, "b")
			So(names.BayerTeX("  ", 3), ShouldEqual, "")
			So(names.KnownAbbreviation("Alp"), ShouldBeTrue)
			So(names.KnownAbbreviation("A"), ShouldBeFalse)
		})
	})
}

func TestConversions(t *testing.T) {
	Convey("Given TeX Bayer names", t, func() {
		Convey("When converted to HTML", func() {
			Convey("Then letters and superscripts become entities", func() {
				So(names.HTML(`\alpha`), ShouldEqual, "&alpha;")
				So(names.HTML(`\pi^5`), ShouldEqual, "&pi;&#x2075;")
				So(names.HTML(`$\phi$`), ShouldEqual, "&phi;")
				So(names.HTML(""), ShouldEqual, "")
			})
		})

		Convey("When converted to ASCII", func() {
			Convey("Then letters are spelled out", func() {
				So(names.ASCII(`\upsilon^2`), ShouldEqual, "Upsilon2")
				So(names.ASCII(`\eta`), ShouldEqual, "Eta")
				So(names.ASCII("O"), ShouldEqual, "Omicron")
				So(names.ASCII("O^1"), ShouldEqual, "Omicron1")
				So(names.ASCII("O^3"), ShouldEqual, "O3")
			})
		})

		Convey("When converted to UTF-8 glyphs", func() {
			Convey("Then entities become characters and the name is cut at a dash", func() {
				So(names.Glyph(`\alpha`), ShouldEqual, "α")
				So(names.Glyph(`\theta^1`), ShouldEqual, "θ¹")
				So(names.UTF8("&omega;-Cen"), ShouldEqual, "ω")
			})
		})
	})
}

func TestCleanAndToken(t *testing.T) {
	Convey("Given free-text names", t, func() {
		Convey("Then they are trimmed and NFC-normalised", func() {
			So(names.Clean("  Gacrux "), ShouldEqual, "Gacrux")
			So(names.Clean("Zube\u0301n"), ShouldEqual, "Zub\u00e9n")
		})

		Convey("Then tokens have no spaces and empty names become a dash", func() {
			So(names.Token("Barnard's Star"), ShouldEqual, "Barnard's_Star")
			So(names.Token(""), ShouldEqual, "-")
		})
	})
}

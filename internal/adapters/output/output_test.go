package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/dcf21/star-charter/internal/adapters/output"
	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
	"github.com/dcf21/star-charter/internal/testcatalogs"
	. "github.com/smartystreets/goconvey/convey"
)

func sirius() *model.Star {
	s := model.NewStar()
	s.ID = 0
	s.HD, s.BS, s.HIP = 48915, 2491, 32349
	s.Tycho = "5949-2777-1"
	s.GaiaDR2 = "2947050466531873024"
	s.SetPosition(101.28715533, -16.71611586, "gaia_dr2")
	s.SetMagnitude(types.BandV, -1.46, "hipparcos")
	s.SetMagnitude(types.BandG, -1.2, "gaia_dr2")
	s.ColorBV = model.Float(0.009)
	s.Parallax = model.Float(379.21)
	s.SourceParallax = "hipparcos_new"
	s.Distance = model.Float(8.6)
	s.ProperMotion = model.Float(1339.4)
	s.ProperMotionPA = model.Float(204.1)
	s.Designation = model.Designation{BayerLetter: `\alpha`, Constellation: "CMa", Flamsteed: 9}
	s.EnglishNames = []string{"Sirius"}
	s.CatalogueNames = []string{"Dog Star"}
	s.Variable = true
	return s
}

func TestTextLine(t *testing.T) {
	Convey("Given a fully named record", t, func() {
		line := output.TextLine(sirius(), -1.46)
		fields := strings.Fields(line)

		Convey("Then the columns follow the fixed layout", func() {
			So(line, ShouldEndWith, "\n")
			So(fields, ShouldHaveLength, 14)
			So(fields[:3], ShouldResemble, []string{"48915", "2491", "32349"})
			So(fields[3], ShouldEqual, "101.287155330000")
			So(fields[5], ShouldEqual, "-1.460000000000")
			So(fields[6], ShouldEqual, "0.009000000000")
			So(fields[7], ShouldEqual, "379.210000000000")
		})

		Convey("Then name columns are whitespace safe", func() {
			So(fields[9:], ShouldResemble, []string{"α", "α-CMa", "Sirius", "Dog_Star", "9"})
		})
	})

	Convey("Given a record without constellation or names", t, func() {
		s := model.NewStar()
		s.HIP = 7
		s.Designation.BayerLetter = `\beta`
		s.Designation.Flamsteed = 3
		fields := strings.Fields(output.TextLine(s, 9))

		Convey("Then every name column is a placeholder", func() {
			So(fields[9:], ShouldResemble, []string{"-", "-", "-", "-", "-"})
			So(fields[7], ShouldEqual, "0.000000000000")
			So(fields[8], ShouldEqual, "0.000000000000")
		})
	})
}

func TestJSONRecord(t *testing.T) {
	Convey("Given a fully named record", t, func() {
		line, err := output.JSONLine(sirius())
		So(err, ShouldBeNil)
		So(string(line), ShouldEndWith, "]\n")

		var fields []any
		So(json.Unmarshal(line, &fields), ShouldBeNil)

		Convey("Then it is a positional array of 22 fields", func() {
			So(fields, ShouldHaveLength, 22)
			So(fields[5], ShouldEqual, 2491.0)
			So(fields[6], ShouldEqual, 48915.0)
			So(fields[7], ShouldEqual, 32349.0)
			So(fields[8], ShouldEqual, "5949-2777-1")
			So(fields[9], ShouldResemble, []any{"Sirius", "Dog Star"})
			So(fields[10], ShouldEqual, "CMa")
			So(fields[11], ShouldEqual, "&alpha;")
			So(fields[12], ShouldEqual, "Alpha")
			So(fields[13], ShouldEqual, 9.0)
			So(fields[14], ShouldEqual, "gaia_dr2")
			So(fields[15], ShouldEqual, "hipparcos_new")
			So(fields[20], ShouldEqual, 1.0)
			So(fields[21], ShouldEqual, "2947050466531873024")
		})

		Convey("Then magnitudes keep band order with their sources", func() {
			So(string(line), ShouldContainSubstring, `{"V":{"value":-1.46,"source":"hipparcos"},"G":{"value":-1.2,"source":"gaia_dr2"}}`)
		})
	})

	Convey("Given a bare record", t, func() {
		s := model.NewStar()
		s.Tycho = "1-2-1"
		s.Designation.Flamsteed = 4
		fields := output.JSONRecord(s)

		Convey("Then absent values use the documented defaults", func() {
			So(fields[3], ShouldEqual, 0.0)
			So(fields[9], ShouldResemble, []string{})
			So(fields[10], ShouldEqual, "")
			So(fields[13], ShouldEqual, "")
			So(fields[15], ShouldEqual, "")
			So(fields[20], ShouldEqual, 0)
		})
	})
}

func TestWriter(t *testing.T) {
	Convey("Given a compressed writer with the default text limit", t, func() {
		dir := t.TempDir()
		w, err := output.Create(dir)
		So(err, ShouldBeNil)

		faint := model.NewStar()
		faint.HIP = 9
		So(w.Write(sirius(), -1.46), ShouldBeNil)
		So(w.Write(faint, 12), ShouldBeNil)

		Convey("When it is closed", func() {
			So(w.Close(), ShouldBeNil)

			Convey("Then records fainter than the limit are only in the JSON file", func() {
				text, js := w.Counts()
				So(text, ShouldEqual, 1)
				So(js, ShouldEqual, 2)

				textLines, err := testcatalogs.ReadFile(filepath.Join(dir, output.TextFile+".gz"))
				So(err, ShouldBeNil)
				So(textLines, ShouldHaveLength, 1)
				jsonLines, err := testcatalogs.ReadFile(filepath.Join(dir, output.JSONFile+".gz"))
				So(err, ShouldBeNil)
				So(jsonLines, ShouldHaveLength, 2)
			})

			Convey("Then no partial files remain and writes are refused", func() {
				matches, _ := filepath.Glob(filepath.Join(dir, "*.partial"))
				So(matches, ShouldBeEmpty)
				So(w.Write(faint, 1), ShouldEqual, output.ErrWriterClosed)
			})
		})

		Convey("When the JSON file cannot take its final name", func() {
			blocker := filepath.Join(dir, output.JSONFile+".gz")
			So(os.MkdirAll(filepath.Join(blocker, "keep"), 0o755), ShouldBeNil)
			err := w.Close()

			Convey("Then Close fails and neither output is left behind", func() {
				So(err, ShouldNotBeNil)
				_, statErr := os.Stat(filepath.Join(dir, output.TextFile+".gz"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
				matches, _ := filepath.Glob(filepath.Join(dir, "*.partial"))
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When it is aborted nothing is left behind", func() {
			w.Abort()
			matches, _ := filepath.Glob(filepath.Join(dir, "*"))
			So(matches, ShouldBeEmpty)
		})
	})

	Convey("Given an uncompressed writer with a low text limit", t, func() {
		dir := t.TempDir()
		w, err := output.Create(dir, output.WithCompression(false), output.WithTextMagnitudeLimit(0))
		So(err, ShouldBeNil)
		So(w.Write(sirius(), -1.46), ShouldBeNil)
		So(w.Write(sirius(), 0.5), ShouldBeNil)
		So(w.Close(), ShouldBeNil)

		text, _ := w.Paths()
		So(text, ShouldEqual, filepath.Join(dir, output.TextFile))
		lines, err := testcatalogs.ReadFile(text)
		So(err, ShouldBeNil)
		So(lines, ShouldHaveLength, 1)
	})
}

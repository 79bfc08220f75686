// Package testcatalogs builds catalogue lines with the exact column layouts of
// the published source catalogues, and writes them into a data directory.
package testcatalogs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// F returns a pointer to v, for the optional columns below.
func F(v float64) *float64 { return &v }

// record is a fixed-width line being assembled.
type record []byte

func newRecord(width int) record {
	r := make(record, width)
	for i := range r {
		r[i] = ' '
	}
	return r
}

// right writes s right-aligned in columns [from, to).
func (r record) right(from, to int, s string) {
	if len(s) > to-from {
		panic(fmt.Sprintf("testcatalogs: %q does not fit columns %d-%d", s, from, to))
	}
	copy(r[to-len(s):to], s)
}

// left writes s left-aligned in columns [from, to).
func (r record) left(from, to int, s string) {
	if len(s) > to-from {
		panic(fmt.Sprintf("testcatalogs: %q does not fit columns %d-%d", s, from, to))
	}
	copy(r[from:], s)
}

func (r record) int(from, to, v int) {
	if v != 0 {
		r.right(from, to, strconv.Itoa(v))
	}
}

// float writes v with up to prec decimals, dropping decimals until it fits.
func (r record) float(from, to int, v float64, prec int) {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	for p := prec - 1; len(s) > to-from && p >= 0; p-- {
		s = strconv.FormatFloat(v, 'f', p, 64)
	}
	r.right(from, to, s)
}

func (r record) optional(from, to int, v *float64, prec int) {
	if v != nil {
		r.float(from, to, *v, prec)
	}
}

func (r record) String() string { return string(r) }

// BrightStar is a Yale Bright Star Catalogue entry. RA and Decl are in
// degrees; RA is written as h/m/s to 0.1s and Decl as d/m/s to 1".
type BrightStar struct {
	BS            int
	HD            int
	Flamsteed     int
	Bayer         string
	BayerNumber   int
	Constellation string
	Variability   string
	RA            float64
	Decl          float64
	V             float64
}

// Line renders the entry.
func (b BrightStar) Line() string {
	r := newRecord(197)
	r.int(0, 4, b.BS)
	r.int(4, 7, b.Flamsteed)
	r.left(7, 10, b.Bayer)
	if b.BayerNumber > 0 {
		r.left(10, 11, strconv.Itoa(b.BayerNumber))
	}
	r.left(11, 14, b.Constellation)
	r.int(25, 31, b.HD)
	r.left(51, 60, b.Variability)

	tenths := int(math.Round(b.RA / 15 * 36000))
	h, m, s := tenths/36000, tenths/600%60, float64(tenths%600)/10
	r.right(75, 77, fmt.Sprintf("%02d", h))
	r.right(77, 79, fmt.Sprintf("%02d", m))
	r.right(79, 83, fmt.Sprintf("%04.1f", s))

	sign := byte('+')
	decl := b.Decl
	if decl < 0 {
		sign = '-'
		decl = -decl
	}
	secs := int(math.Round(decl * 3600))
	r[83] = sign
	r.right(84, 86, fmt.Sprintf("%02d", secs/3600))
	r.right(86, 88, fmt.Sprintf("%02d", secs/60%60))
	r.right(88, 90, fmt.Sprintf("%02d", secs%60))
	r.float(102, 107, b.V, 2)
	return r.String()
}

// Astrometry holds the optional parallax and proper-motion columns.
type Astrometry struct {
	Parallax      *float64
	ParallaxError *float64
	PMRA          *float64
	PMDec         *float64
}

// Astro fills every Astrometry column.
func Astro(parallax, parallaxError, pmRA, pmDec float64) Astrometry {
	return Astrometry{Parallax: F(parallax), ParallaxError: F(parallaxError), PMRA: F(pmRA), PMDec: F(pmDec)}
}

// Hipparcos is an entry of the Hipparcos main catalogue.
type Hipparcos struct {
	HIP  int
	HD   int
	V    float64
	RA   float64
	Decl float64
	BT   *float64
	VT   *float64
	BV   *float64
	Astrometry
}

// Line renders the entry.
func (h Hipparcos) Line() string {
	r := newRecord(450)
	r.left(0, 1, "H")
	r.int(2, 14, h.HIP)
	r.float(41, 46, h.V, 2)
	r.float(51, 63, h.RA, 8)
	r.float(64, 76, h.Decl, 8)
	r.optional(79, 86, h.Parallax, 2)
	r.optional(87, 95, h.PMRA, 2)
	r.optional(96, 104, h.PMDec, 2)
	r.optional(119, 125, h.ParallaxError, 2)
	r.optional(217, 223, h.BT, 3)
	r.optional(230, 236, h.VT, 3)
	r.optional(245, 251, h.BV, 3)
	r.int(390, 396, h.HD)
	return r.String()
}

// Tycho1 is an entry of the Tycho-1 main catalogue.
type Tycho1 struct {
	Region    int
	Number    int
	Component int
	HIP       int
	HD        int
	V         float64
	BV        float64
	RA        float64
	Decl      float64
	Astrometry
}

// Line renders the entry.
func (t Tycho1) Line() string {
	r := newRecord(320)
	r.left(0, 1, "T")
	r.right(2, 6, strconv.Itoa(t.Region))
	r.right(6, 12, strconv.Itoa(t.Number))
	r.right(13, 14, strconv.Itoa(t.Component))
	r.float(41, 46, t.V, 2)
	r.float(51, 63, t.RA, 8)
	r.float(64, 76, t.Decl, 8)
	r.optional(79, 86, t.Parallax, 2)
	r.optional(87, 95, t.PMRA, 2)
	r.optional(96, 104, t.PMDec, 2)
	r.optional(119, 125, t.ParallaxError, 2)
	r.int(210, 216, t.HIP)
	r.float(245, 251, t.BV, 3)
	r.int(309, 315, t.HD)
	return r.String()
}

// Tycho2 is an entry of the Tycho-2 catalogue.
type Tycho2 struct {
	Region    int
	Number    int
	Component int
	HIP       int
	RA        float64
	Decl      float64
	BT        float64
	VT        float64
}

// Line renders the entry.
func (t Tycho2) Line() string {
	r := newRecord(207)
	r.right(0, 4, fmt.Sprintf("%04d", t.Region))
	r.right(5, 10, fmt.Sprintf("%05d", t.Number))
	r.right(11, 12, strconv.Itoa(t.Component))
	r[4], r[10], r[12] = '|', '|', '|'
	r.float(15, 27, t.RA, 8)
	r.float(28, 40, t.Decl, 8)
	r.float(110, 116, t.BT, 3)
	r.float(123, 129, t.VT, 3)
	r.int(142, 148, t.HIP)
	return r.String()
}

// HipparcosNew is an entry of the Hipparcos new reduction.
type HipparcosNew struct {
	HIP int
	Astrometry
}

// Line renders the entry.
func (h HipparcosNew) Line() string {
	r := newRecord(276)
	r.int(0, 6, h.HIP)
	r.optional(43, 50, h.Parallax, 2)
	r.optional(51, 59, h.PMRA, 2)
	r.optional(60, 68, h.PMDec, 2)
	r.optional(83, 89, h.ParallaxError, 2)
	return r.String()
}

// GaiaDR1 is an entry of the Tycho-Gaia astrometric solution.
type GaiaDR1 struct {
	HIP   int
	Tycho string
	RA    float64
	Decl  float64
	G     float64
	Astrometry
}

// Line renders the entry.
func (g GaiaDR1) Line() string {
	r := newRecord(450)
	r.int(0, 6, g.HIP)
	r.left(7, 19, g.Tycho)
	r.float(75, 89, g.RA, 9)
	r.float(97, 111, g.Decl, 9)
	r.optional(119, 125, g.Parallax, 2)
	r.optional(126, 130, g.ParallaxError, 2)
	r.optional(131, 140, g.PMRA, 3)
	r.optional(148, 157, g.PMDec, 3)
	r.float(433, 439, g.G, 3)
	return r.String()
}

// GaiaDR2Header is the column heading line of a Gaia DR2 CSV file.
const GaiaDR2Header = "source_id,ra,dec,tycho,hipparcos,parallax,parallax_error,pmra,pmdec,phot_g_mean_mag,phot_bp_mean_mag,phot_rp_mean_mag"

// GaiaDR2 is a row of a Gaia DR2 CSV file.
type GaiaDR2 struct {
	SourceID string
	Tycho    string
	HIP      int
	RA       float64
	Decl     float64
	G        *float64
	BP       *float64
	RP       *float64
	Astrometry
}

// Line renders the row in GaiaDR2Header order.
func (g GaiaDR2) Line() string {
	opt := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	hip := ""
	if g.HIP != 0 {
		hip = strconv.Itoa(g.HIP)
	}
	return strings.Join([]string{
		g.SourceID,
		strconv.FormatFloat(g.RA, 'f', -1, 64),
		strconv.FormatFloat(g.Decl, 'f', -1, 64),
		g.Tycho,
		hip,
		opt(g.Parallax), opt(g.ParallaxError),
		opt(g.PMRA), opt(g.PMDec),
		opt(g.G), opt(g.BP), opt(g.RP),
	}, ",")
}

// CrossIndex is an entry of the Bayer and Flamsteed cross index.
type CrossIndex struct {
	HD            int
	Flamsteed     int
	Bayer         string
	BayerNumber   string
	Constellation string
}

// Line renders the entry.
func (c CrossIndex) Line() string {
	r := newRecord(80)
	r.int(0, 6, c.HD)
	r.int(64, 67, c.Flamsteed)
	r.left(68, 71, c.Bayer)
	r.left(71, 73, c.BayerNumber)
	r.left(74, 77, c.Constellation)
	return r.String()
}

// IAUName is an entry of the IAU star names list.
type IAUName struct {
	Catalogue string
	Number    int
	Parallax  float64
	Name      string
}

// Line renders the entry with the name starting at column 20.
func (n IAUName) Line() string {
	prefix := fmt.Sprintf("%s %d %s", n.Catalogue, n.Number, strconv.FormatFloat(n.Parallax, 'f', -1, 64))
	if len(prefix) >= 20 {
		panic(fmt.Sprintf("testcatalogs: %q does not fit before column 20", prefix))
	}
	return prefix + strings.Repeat(" ", 20-len(prefix)) + n.Name
}

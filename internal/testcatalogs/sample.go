package testcatalogs

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// SampleConfig controls Sample.
type SampleConfig struct {
	Stars      int     // stars with Hipparcos entries
	FaintStars int     // extra Tycho-2 and Gaia DR2 stars without HIP numbers
	BrightMag  float64 // stars brighter than this also appear in the Bright Star Catalogue
	Seed       uint64
}

// DefaultSampleConfig is a small sky useful for smoke runs.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{Stars: 500, FaintStars: 1500, BrightMag: 6.5, Seed: 1}
}

var sampleBayer = []string{"Alp", "Bet", "Gam", "Del", "Eps", "Zet", "Eta", "The", "Iot", "Kap", "Lam", "Mu", "Nu", "Xi", "Omi", "Pi"}

var sampleConstellations = []string{"And", "Aql", "Aur", "Boo", "Cas", "Cen", "Cyg", "Gem", "Leo", "Lyr", "Ori", "Peg", "Per", "Sco", "Tau", "UMa"}

var sampleNames = []string{"Sirius", "Vega", "Capella", "Arcturus", "Rigel", "Procyon", "Betelgeuse", "Altair", "Aldebaran", "Spica", "Antares", "Pollux", "Deneb", "Regulus"}

// Sample returns a deterministic synthetic sky in which the catalogues agree
// with one another the way the real ones do: the same stars appear under
// cross-referenced identifiers with slightly different positions.
func Sample(cfg SampleConfig) Tree {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	var t Tree

	bs := 0
	for i := 0; i < cfg.Stars; i++ {
		hip := i + 1
		hd := 1000 + i
		ra := rng.Float64() * 360
		decl := math.Asin(2*rng.Float64()-1) * 180 / math.Pi
		v := math.Round((rng.Float64()*12-1)*100) / 100
		bv := math.Round((rng.Float64()*2-0.3)*1000) / 1000
		bt := v + bv*1.1
		vt := v + bv*0.1
		plx := 1 + rng.Float64()*200
		astro := Astro(round(plx, 2), round(plx*0.05, 2), round(rng.NormFloat64()*50, 2), round(rng.NormFloat64()*50, 2))
		tycho := Tycho1{Region: 1 + i%9537, Number: 1 + i/9537, Component: 1}
		tychoID := strconv.Itoa(tycho.Region) + "-" + strconv.Itoa(tycho.Number) + "-1"
		jitter := func() float64 { return (rng.Float64() - 0.5) * 0.002 }

		if v < cfg.BrightMag {
			bs++
			constellation := sampleConstellations[bs%len(sampleConstellations)]
			star := BrightStar{BS: bs, HD: hd, RA: ra, Decl: decl, V: v, Constellation: constellation}
			if bs%3 != 0 {
				star.Bayer = sampleBayer[bs%len(sampleBayer)]
			}
			if bs%2 == 0 {
				star.Flamsteed = bs%120 + 1
			}
			if bs%11 == 0 {
				star.Variability = strconv.Itoa(10000 + bs)
			}
			t.BrightStars = append(t.BrightStars, star)
			t.CrossIndex = append(t.CrossIndex, CrossIndex{
				HD: hd, Flamsteed: star.Flamsteed, Constellation: constellation,
				Bayer: crossIndexLetter(star.Bayer), BayerNumber: "",
			})
			if bs <= len(sampleNames) {
				t.IAUNames = append(t.IAUNames, IAUName{Catalogue: "HR", Number: bs, Name: sampleNames[bs-1]})
			}
		}

		t.Hipparcos = append(t.Hipparcos, Hipparcos{
			HIP: hip, HD: hd, V: v, RA: round(ra+jitter(), 8), Decl: round(decl+jitter(), 8),
			BT: F(round(bt, 3)), VT: F(round(vt, 3)), BV: F(bv), Astrometry: astro,
		})
		tycho.HIP, tycho.HD, tycho.V, tycho.BV = hip, hd, v, bv
		tycho.RA, tycho.Decl, tycho.Astrometry = round(ra+jitter(), 8), round(decl+jitter(), 8), astro
		t.Tycho1 = append(t.Tycho1, tycho)
		t.Tycho2 = append(t.Tycho2, Tycho2{
			Region: tycho.Region, Number: tycho.Number, Component: 1, HIP: hip,
			RA: round(ra+jitter(), 8), Decl: round(decl+jitter(), 8), BT: round(bt, 3), VT: round(vt, 3),
		})
		t.HipparcosNew = append(t.HipparcosNew, HipparcosNew{HIP: hip, Astrometry: Astro(round(plx*1.01, 2), round(plx*0.02, 2), astro.PMRA0(), astro.PMDec0())})
		if i%2 == 0 {
			t.GaiaDR1 = append(t.GaiaDR1, GaiaDR1{HIP: hip, Tycho: tychoID, RA: round(ra, 9), Decl: round(decl, 9), G: round(v-0.1, 3), Astrometry: astro})
		}
		t.GaiaDR2 = append(t.GaiaDR2, GaiaDR2{
			SourceID: strconv.FormatUint(4000000000000000000+uint64(i)*7919, 10), Tycho: tychoID, HIP: hip,
			RA: round(ra, 9), Decl: round(decl, 9),
			G: F(round(v-0.1, 4)), BP: F(round(v+bv*0.4, 4)), RP: F(round(v-bv*0.6, 4)),
			Astrometry: astro,
		})
	}

	for i := 0; i < cfg.FaintStars; i++ {
		ra := rng.Float64() * 360
		decl := math.Asin(2*rng.Float64()-1) * 180 / math.Pi
		vt := round(10+rng.Float64()*2, 3)
		bt := round(vt+rng.Float64(), 3)
		region, number := 9537, 10000+i
		t.Tycho2 = append(t.Tycho2, Tycho2{Region: region, Number: number, Component: 1, RA: round(ra, 8), Decl: round(decl, 8), BT: bt, VT: vt})
		if i%3 == 0 {
			t.GaiaDR2 = append(t.GaiaDR2, GaiaDR2{
				SourceID: strconv.FormatUint(5000000000000000000+uint64(i)*104729, 10),
				Tycho:    strconv.Itoa(region) + "-" + strconv.Itoa(number) + "-1",
				RA:       round(ra, 9), Decl: round(decl, 9), G: F(round(vt-0.2, 4)),
			})
		}
	}
	return t
}

// PMRA0 returns the proper motion in RA, or zero when unset.
func (a Astrometry) PMRA0() float64 { return deref(a.PMRA) }

// PMDec0 returns the proper motion in declination, or zero when unset.
func (a Astrometry) PMDec0() float64 { return deref(a.PMDec) }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// crossIndexLetter converts a Bright Star abbreviation to the cross-index spelling.
func crossIndexLetter(abbrev string) string {
	switch abbrev {
	case "":
		return ""
	case "Alp":
		return "alf"
	case "Xi":
		return "ksi"
	case "Mu", "Nu", "Pi":
		return string(abbrev[0]+'a'-'A') + abbrev[1:] + "."
	}
	return string(abbrev[0]+'a'-'A') + abbrev[1:]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

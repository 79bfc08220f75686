// Package output writes the merged catalogue: a fixed-width text file for the
// chart renderer and a newline-delimited JSON file with every field.
package output

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/names"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// placeholder fills absent name columns of the text file.
const placeholder = "-"

// TextLine renders one record of the fixed-width text file.
func TextLine(s *model.Star, refMag float64) string {
	name1, name2, name3, name4, name5 := placeholder, placeholder, placeholder, placeholder, placeholder
	if c := s.Designation.Constellation; c != "" {
		if s.Designation.BayerLetter != "" {
			name1 = names.Glyph(s.Designation.BayerLetter)
			name2 = name1 + "-" + c
		}
		if s.Designation.Flamsteed > 0 {
			name5 = strconv.Itoa(s.Designation.Flamsteed)
		}
	}
	if len(s.EnglishNames) > 0 {
		name3 = names.Token(s.EnglishNames[0])
	}
	if len(s.CatalogueNames) > 0 {
		name4 = names.Token(s.CatalogueNames[0])
	}
	parallax, distance := astrometry(s)
	return fmt.Sprintf("%6d %6d %8d %17.12f %17.12f %17.12f %17.12f %17.12f %17.12f %s %s %s %s %s\n",
		s.HD, s.BS, s.HIP, s.RA, s.Decl, refMag, value(s.ColorBV), parallax, distance,
		name1, name2, name3, name4, name5)
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// astrometry returns the parallax and distance, zero when the record has no
// accepted parallax.
func astrometry(s *model.Star) (parallax, distance float64) {
	if s.Parallax == nil {
		return 0, 0
	}
	return *s.Parallax, value(s.Distance)
}

// measurement is one band's entry in the JSON magnitude object.
type measurement struct {
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// magnitudes encodes as a JSON object keyed by band name in band order.
type magnitudes [types.NumBands]model.Magnitude

func (m magnitudes) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, b := range types.Bands {
		mag := m[b]
		if !mag.Set {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = strconv.AppendQuote(buf, b.String())
		buf = append(buf, ':')
		enc, err := json.Marshal(measurement{Value: mag.Value, Source: mag.Source})
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return append(buf, '}'), nil
}

// JSONRecord returns the positional JSON array for one record.
func JSONRecord(s *model.Star) []any {
	parallax, distance := astrometry(s)
	sourceParallax := ""
	if s.Parallax != nil {
		sourceParallax = s.SourceParallax
	}

	var constellation, bayerHTML, bayerASCII string
	var flamsteed any = ""
	if c := s.Designation.Constellation; c != "" {
		constellation = c
		bayerHTML = names.HTML(s.Designation.BayerLetter)
		bayerASCII = names.ASCII(s.Designation.BayerLetter)
		if s.Designation.Flamsteed > 0 {
			flamsteed = s.Designation.Flamsteed
		}
	}

	allNames := make([]string, 0, len(s.EnglishNames)+len(s.CatalogueNames))
	allNames = append(allNames, s.EnglishNames...)
	allNames = append(allNames, s.CatalogueNames...)

	variable := 0
	if s.Variable {
		variable = 1
	}

	return []any{
		s.RA,
		s.Decl,
		magnitudes(s.Magnitudes),
		parallax,
		distance,
		s.BS,
		s.HD,
		s.HIP,
		s.Tycho,
		allNames,
		constellation,
		bayerHTML,
		bayerASCII,
		flamsteed,
		s.SourcePosition,
		sourceParallax,
		value(s.ColorBV),
		value(s.ProperMotion),
		value(s.ProperMotionPA),
		s.NSV,
		variable,
		s.GaiaDR2,
	}
}

// JSONLine renders one record of the NDJSON file, newline included.
func JSONLine(s *model.Star) ([]byte, error) {
	buf, err := json.Marshal(JSONRecord(s))
	if err != nil {
		return nil, fmt.Errorf("encode record %d: %w", s.ID, err)
	}
	return append(buf, '\n'), nil
}

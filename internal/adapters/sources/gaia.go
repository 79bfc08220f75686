package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// parseGaiaDR1 decodes a line of the Tycho-Gaia astrometric solution (TGAS).
// The G magnitude is kept for diagnostics only.
func parseGaiaDR1(s *settings, line string) (model.Observation, error) {
	var obs model.Observation

	hip := optionalInt(line, 0, 6)
	tycho := field(line, 7, 19)
	if hip == 0 && tycho == "" {
		return obs, fmt.Errorf("%w: neither HIP nor TYC identifier", ErrMalformedLine)
	}
	ra, err1 := floatField(line, 75, 89)
	decl, err2 := floatField(line, 97, 111)
	g, err3 := floatField(line, 433, 439)
	if err := firstErr(err1, err2, err3); err != nil {
		return obs, err
	}

	obs.HasPosition = true
	obs.RA = ra
	obs.Decl = decl
	obs.Magnitude = g
	obs.HasMagnitude = true
	obs.Presence = types.InGaiaDR1
	obs.AddID(types.TychoID(tycho))
	obs.AddID(types.HIPNumber(hip))

	s.setParallax(&obs, optionalFloat(line, 119, 125), optionalFloat(line, 126, 130))
	setProperMotion(&obs, optionalFloat(line, 131, 140), optionalFloat(line, 148, 157))
	return obs, nil
}

var gaiaDR2Columns = []string{
	"source_id", "ra", "dec", "tycho", "hipparcos", "parallax", "parallax_error",
	"pmra", "pmdec", "phot_g_mean_mag", "phot_bp_mean_mag", "phot_rp_mean_mag",
}

// gaiaDR2Row holds the column positions read from a file's header.
type gaiaDR2Row struct {
	index map[string]int
}

func (r *gaiaDR2Row) get(words []string, column string) string {
	i := r.index[column]
	if i >= len(words) {
		return ""
	}
	return strings.TrimSpace(words[i])
}

func (r *gaiaDR2Row) float(words []string, column string) *float64 {
	v, err := parseFloat(r.get(words, column))
	if err != nil {
		return nil
	}
	return model.Float(v)
}

// newGaiaDR2Parser returns a parser for one Gaia DR2 CSV file. The first line
// of each file is its header.
func newGaiaDR2Parser() parseFunc {
	var row *gaiaDR2Row
	return func(s *settings, line string) (model.Observation, error) {
		if row == nil {
			header := strings.Split(strings.TrimSpace(line), ",")
			index := make(map[string]int, len(header))
			for i, name := range header {
				index[strings.TrimSpace(name)] = i
			}
			for _, name := range gaiaDR2Columns {
				if _, ok := index[name]; !ok {
					return model.Observation{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
				}
			}
			row = &gaiaDR2Row{index: index}
			return model.Observation{}, errSkip
		}
		return parseGaiaDR2(s, row, strings.Split(strings.TrimSpace(line), ","))
	}
}

func parseGaiaDR2(s *settings, row *gaiaDR2Row, words []string) (model.Observation, error) {
	var obs model.Observation

	ra, err1 := parseFloat(row.get(words, "ra"))
	decl, err2 := parseFloat(row.get(words, "dec"))
	if err := firstErr(err1, err2); err != nil {
		return obs, err
	}

	obs.HasPosition = true
	obs.RA = ra
	obs.Decl = decl
	obs.Presence = types.InGaiaDR2
	obs.AddID(types.DR2ID(row.get(words, "source_id")))
	obs.AddID(types.TychoID(row.get(words, "tycho")))
	if hip, err := strconv.Atoi(row.get(words, "hipparcos")); err == nil {
		obs.AddID(types.HIPNumber(hip))
	}

	if g := row.float(words, "phot_g_mean_mag"); g != nil {
		obs.Magnitude = *g
		obs.HasMagnitude = true
		obs.AddMagnitude(types.BandG, *g)
	}
	if bp := row.float(words, "phot_bp_mean_mag"); bp != nil {
		obs.AddMagnitude(types.BandBP, *bp)
	}
	if rp := row.float(words, "phot_rp_mean_mag"); rp != nil {
		obs.AddMagnitude(types.BandRP, *rp)
	}

	s.setParallax(&obs, row.float(words, "parallax"), row.float(words, "parallax_error"))
	setProperMotion(&obs, row.float(words, "pmra"), row.float(words, "pmdec"))
	return obs, nil
}

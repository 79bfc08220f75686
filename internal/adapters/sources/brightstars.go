package sources

import (
	"strconv"
	"strings"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/names"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// parseBrightStar decodes a line of the Yale Bright Star Catalogue.
func parseBrightStar(_ *settings, line string) (model.Observation, error) {
	var obs model.Observation

	bs, err1 := intField(line, 0, 4)
	raH, err2 := floatField(line, 75, 77)
	raM, err3 := floatField(line, 77, 79)
	raS, err4 := floatField(line, 79, 83)
	decD, err5 := floatField(line, 84, 86)
	decM, err6 := floatField(line, 86, 88)
	decS, err7 := floatField(line, 88, 90)
	mag, err8 := floatField(line, 102, 107)
	if err := firstErr(err1, err2, err3, err4, err5, err6, err7, err8); err != nil {
		return obs, err
	}

	ra := raH + raM/60 + raS/3600
	decl := decD + decM/60 + decS/3600
	if charAt(line, 83) == '-' {
		decl = -decl
	}

	obs.HasPosition = true
	obs.RA = ra * 180 / 12
	obs.Decl = decl
	obs.Magnitude = mag
	obs.HasMagnitude = true
	obs.AddMagnitude(types.BandV, mag)
	obs.Presence = types.InYBSC
	obs.AddID(types.BSNumber(bs))
	obs.AddID(types.HDNumber(optionalInt(line, 25, 31)))

	var d model.Designation
	bayer := field(line, 7, 10)
	constellation := field(line, 11, 14)
	if names.KnownAbbreviation(bayer) {
		sup := 0
		if c := charAt(line, 10); c >= '1' && c <= '9' {
			sup = int(c - '0')
		}
		d.BayerLetter = names.BayerTeX(bayer, sup)
		d.Constellation = constellation
	}
	if flamsteed := optionalInt(line, 4, 7); flamsteed > 0 {
		d.Flamsteed = flamsteed
		d.Constellation = constellation
	}
	if d != (model.Designation{}) {
		obs.Designation = &d
	}

	variability := strings.SplitN(field(line, 51, 60), "/", 2)[0]
	if strings.HasSuffix(variability, "?") {
		variability = ""
	}
	obs.Variable = variability != ""
	switch {
	case variability == "":
	case isDigits(variability):
		obs.NSV, _ = strconv.Atoi(variability)
	case stripSpaces(variability) != stripSpaces(field(line, 7, 14)) && !strings.EqualFold(variability, "var"):
		obs.CatalogueName = variability
	}
	return obs, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

package sources

import (
	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// parseHipparcos decodes a line of the Hipparcos main catalogue (hip_main).
func parseHipparcos(s *settings, line string) (model.Observation, error) {
	var obs model.Observation

	hip, err1 := intField(line, 2, 14)
	mag, err2 := floatField(line, 41, 46)
	ra, err3 := floatField(line, 51, 63)
	decl, err4 := floatField(line, 64, 76)
	if err := firstErr(err1, err2, err3, err4); err != nil {
		return obs, err
	}

	obs.HasPosition = true
	obs.RA = ra
	obs.Decl = decl
	obs.Magnitude = mag
	obs.HasMagnitude = true
	obs.Presence = types.InHipparcos
	obs.AddID(types.HIPNumber(hip))
	obs.AddID(types.HDNumber(optionalInt(line, 390, 396)))

	obs.AddMagnitude(types.BandV, mag)
	if bt := optionalFloat(line, 217, 223); bt != nil {
		obs.AddMagnitude(types.BandBT, *bt)
	}
	if vt := optionalFloat(line, 230, 236); vt != nil {
		obs.AddMagnitude(types.BandVT, *vt)
	}
	obs.ColorBV = optionalFloat(line, 245, 251)

	s.setParallax(&obs, optionalFloat(line, 79, 86), optionalFloat(line, 119, 125))
	setProperMotion(&obs, optionalFloat(line, 87, 95), optionalFloat(line, 96, 104))
	return obs, nil
}

// parseHipparcosNew decodes a line of the Hipparcos new reduction (hip2),
// which only refines the astrometry of stars already known by HIP number.
func parseHipparcosNew(s *settings, line string) (model.Observation, error) {
	var obs model.Observation

	hip, err := intField(line, 0, 6)
	if err != nil {
		return obs, err
	}
	obs.AddID(types.HIPNumber(hip))
	s.setParallax(&obs, optionalFloat(line, 43, 50), optionalFloat(line, 83, 89))
	setProperMotion(&obs, optionalFloat(line, 51, 59), optionalFloat(line, 60, 68))
	return obs, nil
}

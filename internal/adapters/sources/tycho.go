package sources

import (
	"strconv"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// Tycho-2 photometric transformations to Johnson V and B-V.
const (
	tychoVCoefficient  = 0.090
	tychoBVCoefficient = 0.850
)

func tychoID(region, number, component int) string {
	return strconv.Itoa(region) + "-" + strconv.Itoa(number) + "-" + strconv.Itoa(component)
}

// parseTycho1 decodes a line of the Tycho-1 main catalogue (tyc_main).
func parseTycho1(s *settings, line string) (model.Observation, error) {
	var obs model.Observation

	t1, err1 := intField(line, 2, 6)
	t2, err2 := intField(line, 6, 12)
	t3, err3 := intField(line, 13, 14)
	ra, err4 := floatField(line, 51, 63)
	decl, err5 := floatField(line, 64, 76)
	mag, err6 := floatField(line, 41, 46)
	bv, err7 := floatField(line, 245, 251)
	if err := firstErr(err1, err2, err3, err4, err5, err6, err7); err != nil {
		return obs, err
	}

	obs.HasPosition = true
	obs.RA = ra
	obs.Decl = decl
	obs.Magnitude = mag
	obs.HasMagnitude = true
	obs.Presence = types.InTycho1
	obs.AddID(types.TychoID(tychoID(t1, t2, t3)))
	obs.AddID(types.HIPNumber(optionalInt(line, 210, 216)))
	obs.AddID(types.HDNumber(optionalInt(line, 309, 315)))
	obs.AddMagnitude(types.BandV, mag)
	obs.ColorBV = model.Float(bv)

	s.setParallax(&obs, optionalFloat(line, 79, 86), optionalFloat(line, 119, 125))
	setProperMotion(&obs, optionalFloat(line, 87, 95), optionalFloat(line, 96, 104))
	return obs, nil
}

// parseTycho2 decodes a line of the Tycho-2 catalogue.
func parseTycho2(_ *settings, line string) (model.Observation, error) {
	var obs model.Observation

	t1, err1 := intField(line, 0, 4)
	t2, err2 := intField(line, 5, 10)
	t3, err3 := intField(line, 11, 12)
	ra, err4 := floatField(line, 15, 27)
	decl, err5 := floatField(line, 28, 40)
	bt, err6 := floatField(line, 110, 116)
	vt, err7 := floatField(line, 123, 129)
	if err := firstErr(err1, err2, err3, err4, err5, err6, err7); err != nil {
		return obs, err
	}
	v := vt - tychoVCoefficient*(bt-vt)

	obs.HasPosition = true
	obs.RA = ra
	obs.Decl = decl
	obs.Magnitude = v
	obs.HasMagnitude = true
	obs.Presence = types.InTycho2
	obs.AddID(types.TychoID(tychoID(t1, t2, t3)))
	obs.AddID(types.HIPNumber(optionalInt(line, 142, 148)))
	obs.AddMagnitude(types.BandV, v)
	obs.AddMagnitude(types.BandBT, bt)
	obs.AddMagnitude(types.BandVT, vt)
	obs.ColorBV = model.Float(tychoBVCoefficient * (bt - vt))
	return obs, nil
}

package sources

import (
	"strconv"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/names"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// parseCrossIndex decodes a line of the Bayer and Flamsteed cross index,
// which attaches designations to stars already known by HD number.
func parseCrossIndex(_ *settings, line string) (model.Observation, error) {
	var obs model.Observation

	hd, err := intField(line, 0, 6)
	if err != nil {
		return obs, err
	}
	flamsteed := optionalInt(line, 64, 67)
	letter := field(line, 68, 71)
	number := field(line, 71, 73)
	constellation := field(line, 74, 77)

	// Some entries run the letter and number together, as in "c01".
	if number == "" && len(letter) > 2 && letter[len(letter)-2] == '0' {
		number = letter[len(letter)-2:]
		letter = letter[:len(letter)-2]
	}

	var d model.Designation
	if letter != "" {
		d.BayerLetter = names.BayerTeX(letter, 0)
		if number != "" {
			n, err := intField(number, 0, len(number))
			if err != nil {
				return obs, err
			}
			d.BayerLetter += "^" + strconv.Itoa(n)
		}
		d.Constellation = constellation
	}
	if flamsteed != 0 {
		d.Flamsteed = flamsteed
		d.Constellation = constellation
	}

	obs.AddID(types.HDNumber(hd))
	if d != (model.Designation{}) {
		obs.Designation = &d
	}
	return obs, nil
}

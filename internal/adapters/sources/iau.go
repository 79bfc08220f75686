package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/internal/domain/names"
	"github.com/dcf21/star-charter/internal/domain/types"
)

// ParallaxSourceManual tags parallaxes taken from the IAU names list.
const ParallaxSourceManual = "manual"

const iauNameColumn = 20

// parseIAUName decodes a line of the IAU star names list:
// catalogue (HR, HD or HIP), number, parallax, then the name from column 20.
func parseIAUName(_ *settings, line string) (model.Observation, error) {
	var obs model.Observation
	if len(line) < 5 || line[0] == '#' {
		return obs, errSkip
	}

	words := strings.Fields(line)
	if len(words) < 3 {
		return obs, fmt.Errorf("%w: expected catalogue, number and parallax", ErrMalformedLine)
	}
	number, err := strconv.Atoi(words[1])
	if err != nil {
		return obs, fmt.Errorf("%w: catalogue number %q", ErrMalformedLine, words[1])
	}
	parallax, err := parseFloat(words[2])
	if err != nil {
		return obs, err
	}

	switch words[0] {
	case "HR":
		obs.AddID(types.BSNumber(number))
	case "HD":
		obs.AddID(types.HDNumber(number))
	case "HIP":
		obs.AddID(types.HIPNumber(number))
	default:
		return obs, fmt.Errorf("%w: unknown catalogue %q", ErrMalformedLine, words[0])
	}

	if len(line) > iauNameColumn {
		obs.EnglishName = names.Clean(line[iauNameColumn:])
	}
	if parallax != 0 {
		obs.Parallax = model.Float(parallax)
		obs.ParallaxSource = ParallaxSourceManual
	}
	return obs, nil
}

package sources

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dcf21/star-charter/internal/domain/model"
)

// field returns line[from:to] with surrounding blanks removed. Offsets past
// the end of the line are clamped, so short lines yield empty fields.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

// charAt returns the byte at i, or a blank past the end of the line.
func charAt(line string, i int) byte {
	if i < len(line) {
		return line[i]
	}
	return ' '
}

func intField(line string, from, to int) (int, error) {
	s := field(line, from, to)
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, fmt.Errorf("%w: columns %d-%d %q", ErrMalformedLine, from, to, s)
	}
	return n, nil
}

func floatField(line string, from, to int) (float64, error) {
	return parseFloat(field(line, from, to))
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedLine, s)
	}
	return v, nil
}

// optionalInt returns zero for a blank or unreadable field.
func optionalInt(line string, from, to int) int {
	n, err := intField(line, from, to)
	if err != nil {
		return 0
	}
	return n
}

func optionalFloat(line string, from, to int) *float64 {
	v, err := floatField(line, from, to)
	if err != nil {
		return nil
	}
	return model.Float(v)
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// properMotion converts proper motion components in RA and Dec into a total
// and a position angle in degrees east of north.
func properMotion(pmRA, pmDec float64) (total, angle float64) {
	total = math.Hypot(pmRA, pmDec)
	angle = math.Mod(math.Atan2(pmRA, pmDec)*180/math.Pi+720, 360)
	return total, angle
}

// setProperMotion copies proper motion onto o when both components parsed.
func setProperMotion(o *model.Observation, pmRA, pmDec *float64) {
	if pmRA == nil || pmDec == nil {
		return
	}
	total, angle := properMotion(*pmRA, *pmDec)
	o.ProperMotion = model.Float(total)
	o.ProperMotionPA = model.Float(angle)
}

// setParallax copies the parallax onto o when it is non-zero and its error is
// below the configured fraction of it.
func (s *settings) setParallax(o *model.Observation, parallax, parallaxErr *float64) {
	if parallax == nil || parallaxErr == nil || *parallax == 0 {
		return
	}
	if *parallaxErr < s.parallaxErrorLimit*(*parallax) {
		o.Parallax = model.Float(*parallax)
	}
}

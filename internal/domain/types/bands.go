package types

// Band is a photometric passband.
type Band uint8

const (
	BandV Band = iota
	BandB
	BandBT
	BandVT
	BandG
	BandBP
	BandRP

	NumBands
)

// Bands lists every band in output order.
var Bands = [...]Band{BandV, BandB, BandBT, BandVT, BandG, BandBP, BandRP}

var bandNames = [...]string{"V", "B", "BT", "VT", "G", "BP", "RP"}

func (b Band) String() string {
	if b < NumBands {
		return bandNames[b]
	}
	return "?"
}

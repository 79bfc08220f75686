// Package types contains the small value types shared by every layer of the
// catalogue merge: identifier kinds, identifier values, photometric bands and
// catalogue presence flags.
package types

import (
	"fmt"
	"strconv"
)

// IDType enumerates the cross-catalogue identifier kinds a star may carry.
type IDType uint8

const (
	HD IDType = iota
	BS
	HIP
	Tycho
	GaiaDR2

	numIDTypes
)

// IDTypes lists every identifier kind in the order conflicts are resolved.
var IDTypes = [...]IDType{HD, BS, HIP, Tycho, GaiaDR2}

var idTypeNames = [...]string{"hd", "bs", "hip", "tycho", "gaia_dr2"}

func (t IDType) String() string {
	if t < numIDTypes {
		return idTypeNames[t]
	}
	return "IDType(" + strconv.Itoa(int(t)) + ")"
}

// Numeric reports whether values of this kind are integers.
func (t IDType) Numeric() bool { return t == HD || t == BS || t == HIP }

// Identifier is one identifier value. Numeric kinds use Number, the others use Name.
type Identifier struct {
	Type   IDType
	Number int
	Name   string
}

// Identifier constructors.
func HDNumber(n int) Identifier   { return Identifier{Type: HD, Number: n} }
func BSNumber(n int) Identifier   { return Identifier{Type: BS, Number: n} }
func HIPNumber(n int) Identifier  { return Identifier{Type: HIP, Number: n} }
func TychoID(s string) Identifier { return Identifier{Type: Tycho, Name: s} }
func DR2ID(s string) Identifier   { return Identifier{Type: GaiaDR2, Name: s} }

// IsZero reports whether the identifier carries no value. Catalogue numbers start at 1.
func (i Identifier) IsZero() bool {
	if i.Type.Numeric() {
		return i.Number <= 0
	}
	return i.Name == ""
}

func (i Identifier) String() string {
	switch i.Type {
	case HD:
		return fmt.Sprintf("HD %d", i.Number)
	case BS:
		return fmt.Sprintf("HR %d", i.Number)
	case HIP:
		return fmt.Sprintf("HIP %d", i.Number)
	case Tycho:
		return "TYC " + i.Name
	case GaiaDR2:
		return "Gaia DR2 " + i.Name
	default:
		return i.Type.String()
	}
}

// IDSet is a set of identifier kinds.
type IDSet uint8

// Add returns the set with t included.
func (s IDSet) Add(t IDType) IDSet { return s | 1<<t }

// Has reports whether t is in the set.
func (s IDSet) Has(t IDType) bool { return s&(1<<t) != 0 }

// Empty reports whether the set has no members.
func (s IDSet) Empty() bool { return s == 0 }

// Types returns the members in resolution order.
func (s IDSet) Types() []IDType {
	var out []IDType
	for _, t := range IDTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

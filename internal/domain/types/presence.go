package types

// Presence records which source catalogues contributed to a star.
type Presence uint8

const (
	InYBSC Presence = 1 << iota
	InHipparcos
	InTycho1
	InTycho2
	InGaiaDR1
	InGaiaDR2
)

var presenceNames = []struct {
	flag Presence
	name string
}{
	{InYBSC, "in_ybsc"},
	{InHipparcos, "in_hipp"},
	{InTycho1, "in_tycho1"},
	{InTycho2, "in_tycho2"},
	{InGaiaDR1, "in_gaia_dr1"},
	{InGaiaDR2, "in_gaia_dr2"},
}

// Has reports whether every flag in f is set.
func (p Presence) Has(f Presence) bool { return f != 0 && p&f == f }

// Names lists the set flags.
func (p Presence) Names() []string {
	out := []string{}
	for _, pn := range presenceNames {
		if p.Has(pn.flag) {
			out = append(out, pn.name)
		}
	}
	return out
}

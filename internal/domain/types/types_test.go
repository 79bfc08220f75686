package types_test

import (
	"testing"

	types "github.com/dcf21/star-charter/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIdentifier(t *testing.T) {
	Convey("Given identifiers of each kind", t, func() {
		Convey("When they carry values", func() {
			Convey("Then they are not zero and print their catalogue prefix", func() {
				So(types.HDNumber(999).IsZero(), ShouldBeFalse)
				So(types.HDNumber(999).String(), ShouldEqual, "HD 999")
				So(types.BSNumber(424).String(), ShouldEqual, "HR 424")
				So(types.HIPNumber(11767).String(), ShouldEqual, "HIP 11767")
				So(types.TychoID("4628-237-1").String(), ShouldEqual, "TYC 4628-237-1")
				So(types.DR2ID("576402619921510144").IsZero(), ShouldBeFalse)
			})
		})

		Convey("When they are empty", func() {
			Convey("Then they are zero", func() {
				So(types.HDNumber(0).IsZero(), ShouldBeTrue)
				So(types.HIPNumber(-1).IsZero(), ShouldBeTrue)
				So(types.TychoID("").IsZero(), ShouldBeTrue)
				So(types.DR2ID("").IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestIDSet(t *testing.T) {
	Convey("Given an empty IDSet", t, func() {
		var s types.IDSet
		So(s.Empty(), ShouldBeTrue)

		Convey("When kinds are added out of order", func() {
			s = s.Add(types.GaiaDR2).Add(types.HD).Add(types.HD)

			Convey("Then membership and ordering follow resolution order", func() {
				So(s.Has(types.HD), ShouldBeTrue)
				So(s.Has(types.HIP), ShouldBeFalse)
				So(s.Types(), ShouldResemble, []types.IDType{types.HD, types.GaiaDR2})
				So(s.Empty(), ShouldBeFalse)
			})
		})
	})
}

func TestBandsAndPresence(t *testing.T) {
	Convey("Given the band list", t, func() {
		Convey("Then it is in output order", func() {
			names := make([]string, 0, len(types.Bands))
			for _, b := range types.Bands {
				names = append(names, b.String())
			}
			So(names, ShouldResemble, []string{"V", "B", "BT", "VT", "G", "BP", "RP"})
		})
	})

	Convey("Given a presence set", t, func() {
		p := types.InYBSC | types.InGaiaDR2

		Convey("Then flags and names are reported", func() {
			So(p.Has(types.InYBSC), ShouldBeTrue)
			So(p.Has(types.InTycho2), ShouldBeFalse)
			So(p.Names(), ShouldResemble, []string{"in_ybsc", "in_gaia_dr2"})
			So(types.Presence(0).Names(), ShouldResemble, []string{})
		})
	})
}

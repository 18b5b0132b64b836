package placement_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/placement"
	"github.com/redstonehub/laurel/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
)

func intp(n int) *int { return &n }

func TestCanAssignFirst(t *testing.T) {
	Convey("Given a group where record 1 holds first place", t, func() {
		group := []model.HofRecord{
			{ID: "1", Placement: intp(1)},
			{ID: "2", Placement: intp(2)},
			{ID: "3"},
		}

		Convey("Then another first place is refused", func() {
			So(placement.CanAssignFirst(intp(1), group, ""), ShouldBeFalse)
			So(placement.CanAssignFirst(intp(1), group, "3"), ShouldBeFalse)
		})

		Convey("Then the holder itself may keep first place", func() {
			So(placement.CanAssignFirst(intp(1), group, "1"), ShouldBeTrue)
		})

		Convey("Then other placements are always allowed", func() {
			So(placement.CanAssignFirst(intp(2), group, ""), ShouldBeTrue)
			So(placement.CanAssignFirst(nil, group, ""), ShouldBeTrue)
		})
	})
}

func TestResolveCreate(t *testing.T) {
	Convey("Given an empty group", t, func() {
		Convey("When creating without a placement", func() {
			p, auto, err := placement.ResolveCreate(nil, nil)

			Convey("Then first place is auto-assigned", func() {
				So(err, ShouldBeNil)
				So(auto, ShouldBeTrue)
				So(*p, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a group that already has a first place", t, func() {
		group := []model.HofRecord{{ID: "1", Placement: intp(1)}}

		Convey("When creating without a placement", func() {
			p, auto, err := placement.ResolveCreate(nil, group)

			Convey("Then the record stays unplaced", func() {
				So(err, ShouldBeNil)
				So(auto, ShouldBeFalse)
				So(p, ShouldBeNil)
			})
		})

		Convey("When explicitly requesting first place", func() {
			_, _, err := placement.ResolveCreate(intp(1), group)

			Convey("Then it is rejected with a reason", func() {
				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldEqual, placement.ReasonFirstTaken)
			})
		})

		Convey("When requesting second place", func() {
			p, auto, err := placement.ResolveCreate(intp(2), group)

			Convey("Then it is kept as requested", func() {
				So(err, ShouldBeNil)
				So(auto, ShouldBeFalse)
				So(*p, ShouldEqual, 2)
			})
		})
	})
}

func TestValidateEdit(t *testing.T) {
	Convey("Given a group with a first place held by record 1", t, func() {
		group := []model.HofRecord{{ID: "1", Placement: intp(1)}, {ID: "2"}}

		Convey("When record 2 is edited to first place", func() {
			err1 := placement.ValidateEdit(intp(1), group, "2")
			err2 := placement.ValidateEdit(intp(1), group, "2")

			Convey("Then it fails the same way every time", func() {
				So(err1, ShouldNotBeNil)
				So(err2, ShouldNotBeNil)
				So(err1.Error(), ShouldEqual, err2.Error())
				So(*group[0].Placement, ShouldEqual, 1)
				So(group[1].Placement, ShouldBeNil)
			})
		})

		Convey("When record 2 is edited without a placement", func() {
			Convey("Then nothing is auto-assigned and it passes", func() {
				So(placement.ValidateEdit(nil, group, "2"), ShouldBeNil)
			})
		})
	})
}

func TestPlacementInvariant(t *testing.T) {
	Convey("Given a sequence of creates and edits through the validator", t, func() {
		var group []model.HofRecord
		requests := []*int{nil, nil, intp(1), intp(2), nil, intp(1)}
		for i, req := range requests {
			p, _, err := placement.ResolveCreate(req, group)
			if err != nil {
				continue
			}
			group = append(group, model.HofRecord{ID: model.RecordID(strconv.Itoa(i)), Placement: p})
		}
		for _, r := range group {
			if err := placement.ValidateEdit(intp(1), group, r.ID); err == nil {
				for i := range group {
					if group[i].ID == r.ID {
						group[i].Placement = intp(1)
					}
				}
			}
		}

		Convey("Then at most one record holds first place", func() {
			firsts := 0
			for _, r := range group {
				if r.HasPlacement(1) {
					firsts++
				}
			}
			So(firsts, ShouldEqual, 1)
		})
	})
}

func TestGroupOf(t *testing.T) {
	Convey("Given records from several months and categories", t, func() {
		records := []model.HofRecord{
			{ID: "1", Month: "November, 2025", Category: "Meme content"},
			{ID: "2", Month: "November, 2025", Category: "Meme Content"},
			{ID: "3", Month: "November, 2024", Category: "Meme content"},
			{ID: "4", Month: "November, 2025", Category: "Written content"},
			{ID: "5", Month: "October, 2025", Category: "meme"},
		}

		Convey("When the admin selection is November 2025 memes", func() {
			group := placement.GroupOf(records, "November", 2025, "Meme Content")

			Convey("Then only matching records are grouped", func() {
				So(len(group), ShouldEqual, 2)
				So(group[0].ID, ShouldEqual, model.RecordID("1"))
				So(group[1].ID, ShouldEqual, model.RecordID("2"))
			})
		})
	})

	Convey("Given a first place under an unrecognized month label", t, func() {
		records := []model.HofRecord{
			{ID: "1", Month: "Sept", Category: "Meme content", Placement: intp(1)},
			{ID: "2", Month: "Oct", Category: "Meme content"},
		}

		Convey("When the admin selection uses the same label", func() {
			group := placement.GroupOf(records, "sept", 2025, "Meme Content")

			Convey("Then the record is grouped by its label", func() {
				So(len(group), ShouldEqual, 1)
				So(group[0].ID, ShouldEqual, model.RecordID("1"))
			})

			Convey("Then an unplaced create is not auto-placed", func() {
				resolved, auto, err := placement.ResolveCreate(nil, group)
				So(err, ShouldBeNil)
				So(auto, ShouldBeFalse)
				So(resolved, ShouldBeNil)
			})
		})
	})
}

func TestResult(t *testing.T) {
	Convey("Given gated outcomes", t, func() {
		ok := placement.Accept(model.HofRecord{ID: "9"})
		So(ok.OK, ShouldBeTrue)
		So(ok.Record.ID, ShouldEqual, model.RecordID("9"))

		res, err := placement.FromError(validation.NewError(placement.ReasonFirstTaken))
		So(err, ShouldBeNil)
		So(res.OK, ShouldBeFalse)
		So(res.Reason, ShouldEqual, placement.ReasonFirstTaken)

		boom := errors.New("boom")
		_, err = placement.FromError(boom)
		So(err, ShouldEqual, boom)

		_, found := placement.FindByID([]model.HofRecord{{ID: "9"}}, "9")
		So(found, ShouldBeTrue)
	})
}

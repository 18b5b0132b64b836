package validation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidatorHof(t *testing.T) {
	Convey("Given a submission validator", t, func() {
		v := validation.New()
		valid := model.HofPayload{Name: "Alex", Discord: "alex#1", Link: "https://x.com/alex/1"}

		Convey("When the payload is complete", func() {
			Convey("Then it passes", func() {
				So(v.Hof(valid), ShouldBeNil)
			})
		})

		Convey("When the name is blank", func() {
			p := valid
			p.Name = "   "
			err := v.Hof(p)

			Convey("Then the name rule is reported", func() {
				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldEqual, validation.ReasonNameRequired)
			})
		})

		Convey("When neither handle is given", func() {
			p := valid
			p.Discord = ""
			err := v.Hof(p)

			Convey("Then the handle rule is reported", func() {
				So(err.Error(), ShouldEqual, validation.ReasonHandleRequired)
			})
		})

		Convey("When only the X handle is given", func() {
			p := valid
			p.Discord = ""
			p.XHandle = "@alex"

			Convey("Then it passes", func() {
				So(v.Hof(p), ShouldBeNil)
			})
		})

		Convey("When the link has no http scheme", func() {
			p := valid
			p.Link = "ftp://files/alex"
			err := v.Hof(p)

			Convey("Then the link rule is reported", func() {
				So(err.Error(), ShouldEqual, validation.ReasonLinkScheme)
			})
		})

		Convey("When the link is empty", func() {
			p := valid
			p.Link = ""

			Convey("Then it passes", func() {
				So(v.Hof(p), ShouldBeNil)
			})
		})

		Convey("When the placement is below one", func() {
			for _, n := range []int{0, -3} {
				p := valid
				p.Placement = &n
				err := v.Hof(p)

				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldEqual, validation.ReasonPlacementRange)
			}
		})

		Convey("When the placement is absent or positive", func() {
			two := 2
			p := valid
			p.Placement = &two

			Convey("Then it passes", func() {
				So(v.Hof(valid), ShouldBeNil)
				So(v.Hof(p), ShouldBeNil)
			})
		})

		Convey("When several rules fail", func() {
			err := v.Hof(model.HofPayload{Link: "nope"})

			Convey("Then only the first is reported", func() {
				So(err.Error(), ShouldEqual, validation.ReasonNameRequired)
			})
		})
	})
}

func TestValidatorPlacement(t *testing.T) {
	Convey("Given a placement change", t, func() {
		v := validation.New()
		zero, neg, one := 0, -7, 1

		Convey("Then clearing it or setting a positive value passes", func() {
			So(v.Placement(nil), ShouldBeNil)
			So(v.Placement(&one), ShouldBeNil)
		})

		Convey("Then zero and negative values are rejected", func() {
			So(v.Placement(&zero).Error(), ShouldEqual, validation.ReasonPlacementRange)
			So(v.Placement(&neg).Error(), ShouldEqual, validation.ReasonPlacementRange)
		})
	})
}

func TestValidatorWbc(t *testing.T) {
	Convey("Given a weekly submission without a date range", t, func() {
		v := validation.New()
		err := v.Wbc(model.WbcPayload{Name: "Maya", XHandle: "@maya"})

		Convey("Then the date range rule is reported", func() {
			So(err.Error(), ShouldEqual, validation.ReasonDateRangeRequired)
		})
	})

	Convey("Given a complete weekly submission", t, func() {
		v := validation.New()
		err := v.Wbc(model.WbcPayload{Name: "Maya", DateRange: "Oct 1 - Oct 7", Discord: "maya", Link: "HTTP://site"})
		So(err, ShouldBeNil)
	})
}

func TestReason(t *testing.T) {
	Convey("Given a wrapped validation error", t, func() {
		err := fmt.Errorf("create: %w", validation.NewError("nope"))
		reason, ok := validation.Reason(err)
		So(ok, ShouldBeTrue)
		So(reason, ShouldEqual, "nope")

		_, ok = validation.Reason(errors.New("other"))
		So(ok, ShouldBeFalse)
		So(validation.IsHTTPLink("https://a"), ShouldBeTrue)
	})
}

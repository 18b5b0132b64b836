package calendar_test

import (
	"testing"
	"time"

	"github.com/redstonehub/laurel/internal/domain/calendar"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonthIndex(t *testing.T) {
	Convey("Given month labels", t, func() {
		So(calendar.MonthIndex("October"), ShouldEqual, 9)
		So(calendar.MonthIndex("October, 2025"), ShouldEqual, 9)
		So(calendar.MonthIndex("October 2025"), ShouldEqual, 9)
		So(calendar.MonthIndex("  march"), ShouldEqual, 2)
		So(calendar.MonthIndex("Smarch, 2025"), ShouldEqual, -1)
		So(calendar.MonthIndex(""), ShouldEqual, -1)
	})
}

func TestParse(t *testing.T) {
	Convey("Given labels with and without years", t, func() {
		So(calendar.Parse("November, 2025"), ShouldResemble, calendar.Label{Year: 2025, Month: 10})
		So(calendar.Parse("May"), ShouldResemble, calendar.Label{Year: 0, Month: 4})
		So(calendar.Parse("Week 12"), ShouldResemble, calendar.Label{Year: 0, Month: -1})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given two months of the same year", t, func() {
		Convey("Then November is later than May", func() {
			So(calendar.Compare("November, 2025", "May, 2025"), ShouldBeGreaterThan, 0)
		})

		Convey("Then recency ordering puts November first", func() {
			So(calendar.CompareRecency("November, 2025", "May, 2025"), ShouldBeLessThan, 0)
		})
	})

	Convey("Given the same month in different years", t, func() {
		So(calendar.Compare("November, 2024", "November, 2025"), ShouldBeLessThan, 0)
		So(calendar.Compare("January, 2026", "December, 2025"), ShouldBeGreaterThan, 0)
	})

	Convey("Given unrecognized labels", t, func() {
		So(calendar.Compare("???", "January"), ShouldBeLessThan, 0)
		So(calendar.Compare("foo", "bar"), ShouldEqual, 0)
	})
}

func TestSortRecent(t *testing.T) {
	Convey("Given an unordered label set spanning two years", t, func() {
		labels := []string{"May, 2025", "November, 2024", "November, 2025", "bogus", "July, 2025"}
		calendar.SortRecent(labels)

		Convey("Then the most recent month comes first and unknown labels last", func() {
			So(labels, ShouldResemble, []string{"November, 2025", "July, 2025", "May, 2025", "November, 2024", "bogus"})
		})
	})

	Convey("Given repeated labels", t, func() {
		out := calendar.Distinct([]string{"May, 2025", "", "June, 2025", "May, 2025"})
		So(out, ShouldResemble, []string{"June, 2025", "May, 2025"})
	})
}

func TestSameMonth(t *testing.T) {
	Convey("Given a record label and an admin selection", t, func() {
		So(calendar.SameMonth("November, 2025", "November", 2025), ShouldBeTrue)
		So(calendar.SameMonth("November, 2024", "November", 2025), ShouldBeFalse)
		So(calendar.SameMonth("November", "November", 2025), ShouldBeTrue)
		So(calendar.SameMonth("October, 2025", "November", 2025), ShouldBeFalse)
		So(calendar.SameMonth("whenever", "November", 2025), ShouldBeFalse)
	})

	Convey("Given labels without a recognizable month name", t, func() {
		So(calendar.SameMonth("Sept", "Sept", 2025), ShouldBeTrue)
		So(calendar.SameMonth(" sep 2025", "Sep 2025 ", 2025), ShouldBeTrue)
		So(calendar.SameMonth("Sept", "Oct", 2025), ShouldBeFalse)
		So(calendar.SameMonth("September", "Sept", 2025), ShouldBeFalse)
	})
}

func TestCurrentAndFormat(t *testing.T) {
	Convey("Given a point in time", t, func() {
		month, year := calendar.Current(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC))
		So(month, ShouldEqual, "October")
		So(year, ShouldEqual, 2026)
		So(calendar.Format(month, year), ShouldEqual, "October, 2026")
		So(calendar.Format("May", 0), ShouldEqual, "May")
		So(calendar.MonthName(12), ShouldEqual, "")
	})
}

package category_test

import (
	"testing"

	"github.com/redstonehub/laurel/internal/domain/category"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given free-form category text", t, func() {
		Convey("Then substrings map case-insensitively", func() {
			So(category.Normalize("Visual & Art content"), ShouldEqual, category.Visual)
			So(category.Normalize("random text"), ShouldEqual, category.Overall)
			So(category.Normalize("MEME stuff"), ShouldEqual, category.Meme)
			So(category.Normalize("  -- Written Content!! "), ShouldEqual, category.Written)
			So(category.Normalize("Other Creative Content"), ShouldEqual, category.Other)
			So(category.Normalize("Art & Visual"), ShouldEqual, category.Visual)
			So(category.Normalize(""), ShouldEqual, category.Overall)
		})

		Convey("Then the check order is fixed", func() {
			// "written" is checked before "art" and "other".
			So(category.Normalize("written art of others"), ShouldEqual, category.Written)
			// "art" is checked before "meme".
			So(category.Normalize("meme art"), ShouldEqual, category.Visual)
		})
	})
}

func TestParseSlug(t *testing.T) {
	Convey("Given query parameter values", t, func() {
		So(category.ParseSlug("meme"), ShouldEqual, category.Meme)
		So(category.ParseSlug(" VISUAL "), ShouldEqual, category.Visual)
		So(category.ParseSlug("unknown"), ShouldEqual, category.Overall)
		So(category.ParseSlug(""), ShouldEqual, category.Overall)
	})
}

func TestOptions(t *testing.T) {
	Convey("Given the category options", t, func() {
		opts := category.Options()
		So(len(opts), ShouldEqual, 5)
		So(opts[0].Slug, ShouldEqual, category.Overall)
		So(opts[0].Label, ShouldEqual, "All")
		So(opts[2].Label, ShouldEqual, "Visual & Art content")
	})
}

func TestNext(t *testing.T) {
	Convey("Given the default category order", t, func() {
		order := category.DefaultOrder

		Convey("Then each category advances to the following one", func() {
			So(category.Next("Written Content", order), ShouldEqual, "Art & Visual")
			So(category.Next("Art & Visual", order), ShouldEqual, "Meme Content")
			So(category.Next("Meme Content", order), ShouldEqual, "Other Creative Content")
		})

		Convey("Then the last category does not wrap around", func() {
			So(category.Next("Other Creative Content", order), ShouldEqual, "Other Creative Content")
		})

		Convey("Then an unknown category is returned unchanged", func() {
			So(category.Next("Music", order), ShouldEqual, "Music")
		})
	})
}

func TestRotationAdvance(t *testing.T) {
	Convey("Given a rotation policy with the default threshold", t, func() {
		r := category.NewRotation(nil, 0)

		Convey("When the group is below the threshold", func() {
			next, advanced := r.Advance("Written Content", 2)

			Convey("Then the category stays", func() {
				So(advanced, ShouldBeFalse)
				So(next, ShouldEqual, "Written Content")
			})
		})

		Convey("When the group reaches the threshold", func() {
			next, advanced := r.Advance("Written Content", 3)

			Convey("Then the category advances", func() {
				So(advanced, ShouldBeTrue)
				So(next, ShouldEqual, "Art & Visual")
			})
		})

		Convey("When the last category fills up", func() {
			next, advanced := r.Advance("Other Creative Content", 5)

			Convey("Then nothing changes", func() {
				So(advanced, ShouldBeFalse)
				So(next, ShouldEqual, "Other Creative Content")
			})
		})

		Convey("Then First and Contains reflect the order", func() {
			So(r.First(), ShouldEqual, "Written Content")
			So(r.Contains("Meme Content"), ShouldBeTrue)
			So(r.Contains("meme"), ShouldBeFalse)
		})
	})

	Convey("Given a custom threshold", t, func() {
		r := category.NewRotation([]string{"A", "B"}, 1)
		next, advanced := r.Advance("A", 1)
		So(advanced, ShouldBeTrue)
		So(next, ShouldEqual, "B")
	})
}

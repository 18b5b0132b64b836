package prefs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	prefs "github.com/redstonehub/laurel/internal/adapters/prefs"
	model "github.com/redstonehub/laurel/internal/domain/model"
)

func TestMemoryStore(t *testing.T) {
	convey.Convey("Given an empty in-memory store", t, func() {
		ctx := context.Background()
		s := prefs.NewMemory()

		convey.Convey("Then nothing is loaded", func() {
			_, ok, err := s.Load(ctx, model.KindHof)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When filters are saved for one program", func() {
			want := model.AdminFilters{Category: "Meme content", Month: "May", Year: 2025}
			convey.So(s.Save(ctx, model.KindHof, want), convey.ShouldBeNil)

			convey.Convey("Then only that program sees them", func() {
				got, ok, _ := s.Load(ctx, model.KindHof)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldResemble, want)

				_, ok, _ = s.Load(ctx, model.KindWbc)
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}

func TestFileStore(t *testing.T) {
	convey.Convey("Given a file store in a fresh directory", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
		s := prefs.NewFile(path)

		convey.Convey("Then a missing file loads as unset", func() {
			_, ok, err := s.Load(ctx, model.KindWbc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When both programs are saved", func() {
			hof := model.AdminFilters{Category: "Written content", Month: "June", Year: 2025}
			wbc := model.AdminFilters{Month: "July", Year: 2025}
			convey.So(s.Save(ctx, model.KindHof, hof), convey.ShouldBeNil)
			convey.So(s.Save(ctx, model.KindWbc, wbc), convey.ShouldBeNil)

			convey.Convey("Then a new store on the same path reads both back", func() {
				again := prefs.NewFile(path)
				got, ok, err := again.Load(ctx, model.KindHof)
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldResemble, hof)

				got, ok, _ = again.Load(ctx, model.KindWbc)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldResemble, wbc)
			})

			convey.Convey("Then no temp files are left behind", func() {
				entries, err := os.ReadDir(filepath.Dir(path))
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(entries), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the file holds invalid YAML", func() {
			convey.So(os.MkdirAll(filepath.Dir(path), 0o755), convey.ShouldBeNil)
			convey.So(os.WriteFile(path, []byte("filters: [unclosed"), 0o600), convey.ShouldBeNil)

			convey.Convey("Then load reports a persistence error", func() {
				_, _, err := s.Load(ctx, model.KindHof)
				convey.So(errors.Is(err, prefs.ErrPersist), convey.ShouldBeTrue)
			})
		})
	})
}

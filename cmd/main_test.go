package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/redstonehub/laurel/internal/config"
	"github.com/redstonehub/laurel/pkg/logger"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given a fake record store", t, func() {
		if err := logger.Init(); err != nil {
			panic(err)
		}
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/hof":
				_, _ = w.Write([]byte(`[{"id":1,"name":"Alex","month":"May","category":"Meme Content","placement":1}]`))
			case "/api/wbc":
				_, _ = w.Write([]byte(`[]`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer upstream.Close()

		convey.Convey("When configuration comes from the environment", func() {
			_ = os.Setenv("LAUREL_ADDR", ":18080")
			_ = os.Setenv("LAUREL_STORE_BASE_URL", upstream.URL)
			_ = os.Setenv("LAUREL_REFRESH_WORKER_COUNT", "1")
			defer func() {
				_ = os.Unsetenv("LAUREL_ADDR")
				_ = os.Unsetenv("LAUREL_STORE_BASE_URL")
				_ = os.Unsetenv("LAUREL_REFRESH_WORKER_COUNT")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":18080")
			convey.So(cfg.RefreshWorkerCount, convey.ShouldEqual, 1)

			convey.Convey("Then the wired handler serves views from the store", func() {
				ctx := context.Background()
				svc := newService(cfg, logger.Get())
				h := newHandler(ctx, cfg, svc, logger.Get())

				req := httptest.NewRequest(http.MethodGet, "/hof?month=May", http.NoBody)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				var listing struct {
					Items []struct {
						FirstPlace bool `json:"first_place"`
					} `json:"items"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &listing), convey.ShouldBeNil)
				convey.So(len(listing.Items), convey.ShouldEqual, 1)
				convey.So(listing.Items[0].FirstPlace, convey.ShouldBeTrue)
			})

			convey.Convey("And the docs are mounted", func() {
				h := newHandler(context.Background(), cfg, newService(cfg, logger.Get()), logger.Get())
				req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

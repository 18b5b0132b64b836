package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redstonehub/laurel/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"LAUREL_CONFIG",
	"LAUREL_ADDR",
	"LAUREL_LOG_LEVEL",
	"LAUREL_STORE_BASE_URL",
	"LAUREL_STORE_TIMEOUT_MS",
	"LAUREL_REFRESH_WORKER_COUNT",
	"LAUREL_ROTATION_THRESHOLD",
	"LAUREL_CATEGORY_ORDER",
	"LAUREL_ADMIN_JWT_SECRET",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "laurel-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	return f.Name()
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBaseURL, convey.ShouldEqual, config.DefaultStoreBaseURL)
				convey.So(cfg.AdminJWTSecret, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LAUREL_ADDR", ":8080")
			_ = os.Setenv("LAUREL_STORE_TIMEOUT_MS", "2500")
			_ = os.Setenv("LAUREL_REFRESH_WORKER_COUNT", "4")
			_ = os.Setenv("LAUREL_CATEGORY_ORDER", "Written Content, Meme Content")
			_ = os.Setenv("LAUREL_ADMIN_JWT_SECRET", "s3cret")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.RefreshWorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.CategoryOrder, convey.ShouldResemble, []string{"Written Content", "Meme Content"})
				convey.So(cfg.AdminJWTSecret, convey.ShouldEqual, "s3cret")
			})
		})

		convey.Convey("When loading config with a YAML file and env vars", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
store_base_url: "http://localhost:4000"
rotation_threshold: 5
preview_size: 2
category_order:
  - Meme Content
  - Written Content
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LAUREL_CONFIG", tmpFile)
			_ = os.Setenv("LAUREL_ROTATION_THRESHOLD", "7")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override the file and the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreBaseURL, convey.ShouldEqual, "http://localhost:4000")
				convey.So(cfg.RotationThreshold, convey.ShouldEqual, 7)
				convey.So(cfg.PreviewSize, convey.ShouldEqual, 2)
				convey.So(cfg.CategoryOrder, convey.ShouldResemble, []string{"Meme Content", "Written Content"})
				convey.So(cfg.SnapshotTTLMS, convey.ShouldEqual, 30_000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LAUREL_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LAUREL_CONFIG", "/nonexistent/laurel.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("LAUREL_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a bad store URL", func() {
			_ = os.Setenv("LAUREL_STORE_BASE_URL", "redstone-hub")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LAUREL_STORE_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/evento-hq/evento/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// setenv sets a variable for one branch and restores it on Reset so
// sibling branches never observe it.
func setenv(key, value string) {
	So(os.Setenv(key, value), ShouldBeNil)
	Reset(func() { _ = os.Unsetenv(key) })
}

func TestLoad(t *testing.T) {
	Convey("Given the configuration loader", t, func() {
		ctx := context.Background()

		Convey("When no file or environment is set", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.PaymentProcessingDelayMS, ShouldEqual, 1500)
				So(cfg.PaymentConfirmDelayMS, ShouldEqual, 2000)
				So(cfg.NotificationCap, ShouldEqual, 5)
				So(cfg.RenderWorkerCount, ShouldEqual, 2)
			})
		})

		Convey("When environment variables are set", func() {
			setenv("EVENTO_ADDR", ":9090")
			setenv("EVENTO_NOTIFICATION_CAP", "10")
			cfg, err := config.Load(ctx)

			Convey("Then they override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.NotificationCap, ShouldEqual, 10)
				So(cfg.ArtifactDir, ShouldEqual, "./artifacts")
			})
		})

		Convey("When a config file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \":7070\"\nlog_level: debug\n"), 0o600), ShouldBeNil)
			setenv("EVENTO_CONFIG", path)
			cfg, err := config.Load(ctx)

			Convey("Then file values layer over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})

			Convey("And environment still wins over the file", func() {
				setenv("EVENTO_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
			})
		})

		Convey("When the configured address is blanked out", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
			setenv("EVENTO_CONFIG", path)
			_, err := config.Load(ctx)

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrEmptyAddr)
			})
		})

		Convey("When the config file does not exist", func() {
			setenv("EVENTO_CONFIG", "/nonexistent/config.yaml")
			_, err := config.Load(ctx)

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

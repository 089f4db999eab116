package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/udlz/scouting/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8090")
			So(cfg.DataDir, ShouldEqual, "data")
			So(cfg.DocumentTitle, ShouldEqual, "Scouting Department")
			So(cfg.TopStandouts, ShouldEqual, 5)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SCOUTING_ADDR", ":9999")
	t.Setenv("SCOUTING_DATA_DIR", "/tmp/tables")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.DataDir, ShouldEqual, "/tmp/tables")
		})
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\ntop_standouts: 3\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("SCOUTING_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.TopStandouts, ShouldEqual, 3)
		})
	})
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("SCOUTING_CONFIG", path)
	t.Setenv("SCOUTING_ADDR", ":6060")

	Convey("Given both a config file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("SCOUTING_TOP_STANDOUTS", "0")

	Convey("Given an invalid standout cap", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with a config error", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SCOUTING_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a missing config file path", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with a load error", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

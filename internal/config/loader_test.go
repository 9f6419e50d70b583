package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or env overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":9080")
		So(cfg.FairnessThreshold, ShouldEqual, 0.10)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dynasty.yaml")
	yaml := "addr: \":7070\"\nfairness_threshold: 0.15\nmax_bundle_size: 2\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DYNASTY_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values override defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.FairnessThreshold, ShouldEqual, 0.15)
			So(cfg.MaxBundleSize, ShouldEqual, 2)
		})

		Convey("Then untouched fields keep their defaults", func() {
			So(cfg.MaxRankingsLimit, ShouldEqual, 100)
			So(len(cfg.Categories), ShouldEqual, 14)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dynasty.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DYNASTY_CONFIG", path)
	t.Setenv("DYNASTY_ADDR", ":6060")
	t.Setenv("DYNASTY_SNAPSHOT_PATH", "/data/league.json")

	Convey("Given env overrides on top of a file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env wins over the file", func() {
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.SnapshotPath, ShouldEqual, "/data/league.json")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DYNASTY_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a missing config file", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}

func TestLoadBadThreshold(t *testing.T) {
	t.Setenv("DYNASTY_FAIRNESS_THRESHOLD", "1.5")

	Convey("Given a fairness threshold outside (0, 1)", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadBadBandMultiples(t *testing.T) {
	t.Setenv("DYNASTY_SLIGHT_MULTIPLE", "6.0")
	t.Setenv("DYNASTY_HEAVY_MULTIPLE", "2.0")

	Convey("Given a heavy multiple below the slight multiple", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadBadBundleSize(t *testing.T) {
	t.Setenv("DYNASTY_MAX_BUNDLE_SIZE", "0")

	Convey("Given a zero bundle size", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadEmptyAddr(t *testing.T) {
	t.Setenv("DYNASTY_ADDR", "")

	Convey("Given a cleared listen address", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

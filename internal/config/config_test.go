package config_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/config"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
)

func TestConfig_New(t *testing.T) {
	Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		Convey("Then it should have sensible defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.FairnessThreshold, ShouldEqual, 0.10)
			So(cfg.MaxBundleSize, ShouldEqual, 3)
			So(cfg.MaxRankingsLimit, ShouldEqual, 100)
		})

		Convey("Then the default league is 7x7 head-to-head", func() {
			So(len(cfg.Categories), ShouldEqual, 14)
			So(cfg.Categories[model.CatERA].LowerIsBetter, ShouldBeTrue)
			So(cfg.Categories[model.CatHR].Weight, ShouldEqual, 0.16)
			So(cfg.Scarcity["C"], ShouldEqual, 1.15)
			So(cfg.AgeCurve.PeakAge, ShouldEqual, 27)
		})
	})
}

package valuation_test

import (
	"context"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/valuation"
)

func hitter(id string, age int, avg, ops float64) model.Player {
	return model.Player{
		ID:        id,
		Name:      id,
		Positions: []string{"OF"},
		Age:       age,
		Projected: map[string]float64{
			model.CatAVG: avg,
			model.CatOPS: ops,
		},
	}
}

func TestEngineValuate(t *testing.T) {
	Convey("Given a valuation engine with default calibration", t, func() {
		engine := valuation.NewEngine()
		ctx := context.Background()

		Convey("When valuating a young outfielder", func() {
			p := hitter("p1", 24, 0.280, 0.820)
			res, err := engine.Valuate(ctx, p)

			Convey("Then a non-negative value with factors is returned", func() {
				So(err, ShouldBeNil)
				So(res.PlayerID, ShouldEqual, "p1")
				So(res.Value, ShouldBeGreaterThan, 0)
				So(res.AgeMultiplier, ShouldBeGreaterThan, 1.0)
				So(res.ScarcityMultiplier, ShouldEqual, 1.0)
				So(res.Contributions, ShouldContainKey, model.CatAVG)
				So(res.Contributions, ShouldContainKey, model.CatOPS)
			})

			Convey("Then identical stats at age 34 are worth less", func() {
				older, err := engine.Valuate(ctx, hitter("p2", 34, 0.280, 0.820))
				So(err, ShouldBeNil)
				So(older.Value, ShouldBeLessThan, res.Value)
			})
		})

		Convey("When valuating the same player twice", func() {
			p := hitter("p3", 27, 0.265, 0.790)
			first, err1 := engine.Valuate(ctx, p)
			second, err2 := engine.Valuate(ctx, p)

			Convey("Then the results are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second.Value, ShouldEqual, first.Value)
				So(second.Contributions, ShouldResemble, first.Contributions)
			})
		})

		Convey("When projections are missing categories", func() {
			p := model.Player{ID: "p4", Positions: []string{"SP"}, Age: 26}
			res, err := engine.Valuate(ctx, p)

			Convey("Then missing categories contribute zero instead of failing", func() {
				So(err, ShouldBeNil)
				So(res.Value, ShouldEqual, 0)
				So(len(res.MissingCategories), ShouldBeGreaterThan, 0)
			})

			Convey("Then the missing category list is sorted and stable", func() {
				So(err, ShouldBeNil)
				So(sort.StringsAreSorted(res.MissingCategories), ShouldBeTrue)

				again, err := engine.Valuate(ctx, p)
				So(err, ShouldBeNil)
				So(again.MissingCategories, ShouldResemble, res.MissingCategories)
			})
		})

		Convey("When the player's position is unknown", func() {
			p := model.Player{
				ID:        "p5",
				Positions: []string{"DH"},
				Age:       27,
				Projected: map[string]float64{model.CatHR: 30},
			}
			res, err := engine.Valuate(ctx, p)

			Convey("Then scarcity defaults to neutral", func() {
				So(err, ShouldBeNil)
				So(res.ScarcityMultiplier, ShouldEqual, 1.0)
			})
		})

		Convey("When a lower-is-better stat worsens", func() {
			base := model.Player{
				ID:        "sp1",
				Positions: []string{"SP"},
				Age:       27,
				Projected: map[string]float64{model.CatERA: 3.20},
			}
			worse := model.Player{
				ID:        "sp2",
				Positions: []string{"SP"},
				Age:       27,
				Projected: map[string]float64{model.CatERA: 4.50},
			}
			got, err1 := engine.Valuate(ctx, base)
			bad, err2 := engine.Valuate(ctx, worse)

			Convey("Then the value decreases monotonically", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(bad.Value, ShouldBeLessThan, got.Value)
			})
		})

		Convey("When a counting projection is negative", func() {
			p := model.Player{
				ID:        "p6",
				Positions: []string{"OF"},
				Age:       27,
				Projected: map[string]float64{model.CatHR: -5},
			}
			res, err := engine.Valuate(ctx, p)

			Convey("Then the contribution clamps at zero, never negative", func() {
				So(err, ShouldBeNil)
				So(res.Value, ShouldEqual, 0)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := engine.Valuate(cancelled, hitter("p7", 25, 0.280, 0.800))

			Convey("Then a wrapped cancellation error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "cancelled")
			})
		})
	})
}

func TestAgeCurveMonotonicity(t *testing.T) {
	Convey("Given the default age curve", t, func() {
		curve := valuation.DefaultAgeCurve()

		Convey("Then the multiplier never increases with age", func() {
			prev := curve.Multiplier(18)
			for age := 19; age <= 45; age++ {
				m := curve.Multiplier(age)
				So(m, ShouldBeLessThanOrEqualTo, prev)
				prev = m
			}
		})

		Convey("Then prime ages hold full value", func() {
			So(curve.Multiplier(25), ShouldEqual, 1.0)
			So(curve.Multiplier(27), ShouldEqual, 1.0)
		})

		Convey("Then decline bottoms out at the floor", func() {
			So(curve.Multiplier(60), ShouldEqual, 0.20)
		})

		Convey("Then unknown age is neutral", func() {
			So(curve.Multiplier(0), ShouldEqual, 1.0)
			So(curve.Multiplier(-3), ShouldEqual, 1.0)
		})
	})
}

func TestEngineOptions(t *testing.T) {
	Convey("Given an engine with custom calibration", t, func() {
		engine := valuation.NewEngine(
			valuation.WithCategories(map[string]valuation.CategoryWeight{
				model.CatHR:  {Weight: 1.0, Baseline: 40},
				"BOGUS":      {Weight: -1, Baseline: 10}, // dropped
				model.CatAVG: {Weight: 0.5, Baseline: 0}, // dropped
			}),
			valuation.WithScarcity(map[string]float64{"C": 1.5, "1B": -2}),
		)
		ctx := context.Background()

		Convey("When valuating with only HR configured", func() {
			p := model.Player{
				ID:        "p1",
				Positions: []string{"C"},
				Age:       26,
				Projected: map[string]float64{
					model.CatHR:  20,
					model.CatAVG: 0.300,
					"BOGUS":      5,
				},
			}
			res, err := engine.Valuate(ctx, p)

			Convey("Then only the valid category contributes", func() {
				So(err, ShouldBeNil)
				So(res.Contributions, ShouldContainKey, model.CatHR)
				So(res.Contributions, ShouldNotContainKey, model.CatAVG)
				So(res.Contributions, ShouldNotContainKey, "BOGUS")
				// 20/40 of a full score with weight 1.0, catcher scarcity 1.5.
				So(res.RawScore, ShouldAlmostEqual, 50.0)
				So(res.ScarcityMultiplier, ShouldEqual, 1.5)
			})
		})

		Convey("Then invalid scarcity entries fall back to neutral", func() {
			p := model.Player{
				ID:        "p2",
				Positions: []string{"1B"},
				Age:       26,
				Projected: map[string]float64{model.CatHR: 40},
			}
			res, err := engine.Valuate(ctx, p)
			So(err, ShouldBeNil)
			So(res.ScarcityMultiplier, ShouldEqual, 1.0)
		})
	})
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/rostersync"
	service "github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/app"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/pkg/metrics"
)

const leagueSnapshot = `{
  "league": "Test League",
  "season": 2026,
  "teams": [
    {
      "team_id": "PAW",
      "name": "Pawtucket Steamers",
      "players": [
        {"id": "paw-ss", "name": "Young Shortstop", "positions": ["SS"], "age": 23,
         "projections": {"AVG": 0.285, "OPS": 0.880, "HR": 26, "R": 95, "RBI": 85, "SB": 22, "SO": 110}},
        {"id": "paw-of", "name": "Aging Outfielder", "positions": ["OF"], "age": 34,
         "projections": {"AVG": 0.270, "OPS": 0.820, "HR": 22, "R": 80, "RBI": 78, "SB": 6, "SO": 120}}
      ]
    },
    {
      "team_id": "DUR",
      "name": "Durham Drive",
      "players": [
        {"id": "dur-sp", "name": "Ace Starter", "positions": ["SP"], "age": 27,
         "projections": {"ERA": 3.10, "WHIP": 1.05, "K": 210, "QS": 20, "SV+HLD": 0, "L": 8, "K/BB": 4.2}},
        {"id": "dur-c", "name": "Framing Catcher", "positions": ["C"], "age": 29,
         "projections": {"AVG": 0.250, "OPS": 0.750, "HR": 16, "R": 55, "RBI": 60, "SB": 2, "SO": 95}}
      ]
    },
    {
      "team_id": "TOL",
      "name": "Toledo Hens",
      "players": [
        {"id": "tol-rp", "name": "Setup Arm", "positions": ["RP"], "age": 26,
         "projections": {"ERA": 3.30, "WHIP": 1.10, "K": 80, "QS": 0, "SV+HLD": 28, "L": 4, "K/BB": 3.5}}
      ]
    }
  ]
}`

func newStartedService(t *testing.T) *service.Service {
	t.Helper()
	ctx := context.Background()

	svc := service.New()
	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	snap, err := rostersync.Load(strings.NewReader(leagueSnapshot))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.LoadSnapshot(ctx, snap); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestServiceValuePlayer(t *testing.T) {
	svc := newStartedService(t)
	ctx := context.Background()

	Convey("Given a loaded league", t, func() {
		Convey("Then ValuePlayer reports the player's valuation", func() {
			pv, err := svc.ValuePlayer(ctx, "paw-ss")
			So(err, ShouldBeNil)
			So(pv.Name, ShouldEqual, "Young Shortstop")
			So(pv.TeamID, ShouldEqual, "PAW")
			So(pv.Position, ShouldEqual, "SS")
			So(pv.Valuation.Value, ShouldBeGreaterThan, 0)
			So(pv.Valuation.AgeMultiplier, ShouldBeGreaterThan, 1)
		})

		Convey("Then unknown players are reported as such", func() {
			_, err := svc.ValuePlayer(ctx, "ghost")
			So(errors.Is(err, model.ErrUnknownPlayer), ShouldBeTrue)
		})

		Convey("Then a young player outranks an older one with similar stats", func() {
			young, err := svc.ValuePlayer(ctx, "paw-ss")
			So(err, ShouldBeNil)
			old, err := svc.ValuePlayer(ctx, "paw-of")
			So(err, ShouldBeNil)
			So(young.Valuation.Value, ShouldBeGreaterThan, old.Valuation.Value)
		})
	})
}

func TestServiceAnalyzeTrade(t *testing.T) {
	svc := newStartedService(t)
	ctx := context.Background()

	Convey("Given a loaded league", t, func() {
		Convey("When a valid one-for-one is analyzed", func() {
			analysis, err := svc.AnalyzeTrade(ctx, model.TradeProposal{
				TeamA: "PAW", TeamB: "DUR",
				FromA: []string{"paw-of"},
				FromB: []string{"dur-c"},
			})
			So(err, ShouldBeNil)

			Convey("Then the verdict names both teams", func() {
				So(analysis.Verdict.TeamA, ShouldEqual, "PAW")
				So(analysis.Verdict.TeamB, ShouldEqual, "DUR")
				So(analysis.Verdict.Label, ShouldNotBeEmpty)
			})

			Convey("Then category impacts net incoming minus outgoing", func() {
				// PAW receives the catcher's 16 HR and gives up 22.
				So(analysis.ImpactA["HR"], ShouldAlmostEqual, -6, 1e-9)
				So(analysis.ImpactB["HR"], ShouldAlmostEqual, 6, 1e-9)
			})
		})

		Convey("When a side lists a player from the wrong team", func() {
			_, err := svc.AnalyzeTrade(ctx, model.TradeProposal{
				TeamA: "PAW", TeamB: "DUR",
				FromA: []string{"dur-c"},
				FromB: []string{"paw-of"},
			})
			So(errors.Is(err, trade.ErrInvalidProposal), ShouldBeTrue)
		})

		Convey("When a team id is unknown", func() {
			_, err := svc.AnalyzeTrade(ctx, model.TradeProposal{
				TeamA: "NOPE", TeamB: "DUR",
				FromA: []string{"paw-of"},
				FromB: []string{"dur-c"},
			})
			So(errors.Is(err, model.ErrUnknownTeam), ShouldBeTrue)
		})

		Convey("When a player id is unknown", func() {
			_, err := svc.AnalyzeTrade(ctx, model.TradeProposal{
				TeamA: "PAW", TeamB: "DUR",
				FromA: []string{"ghost"},
				FromB: []string{"dur-c"},
			})
			So(errors.Is(err, model.ErrUnknownPlayer), ShouldBeTrue)
		})

		Convey("When a side is empty", func() {
			_, err := svc.AnalyzeTrade(ctx, model.TradeProposal{
				TeamA: "PAW", TeamB: "DUR",
				FromA: []string{"paw-of"},
			})
			So(errors.Is(err, trade.ErrInvalidProposal), ShouldBeTrue)
		})
	})
}

func TestServiceRankings(t *testing.T) {
	svc := newStartedService(t)
	ctx := context.Background()

	Convey("Given a loaded league", t, func() {
		Convey("Then TopN covers every rostered player", func() {
			entries, err := svc.TopN(ctx, 100)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 5)
			So(entries[0].Rank, ShouldEqual, 1)
			for i := 1; i < len(entries); i++ {
				So(entries[i].Value, ShouldBeLessThanOrEqualTo, entries[i-1].Value)
			}
		})

		Convey("Then Rank agrees with TopN", func() {
			entries, err := svc.TopN(ctx, 1)
			So(err, ShouldBeNil)

			entry, err := svc.Rank(ctx, entries[0].PlayerID)
			So(err, ShouldBeNil)
			So(entry.Rank, ShouldEqual, 1)
		})

		Convey("Then Teams summarizes the league in id order", func() {
			teams, err := svc.Teams(ctx)
			So(err, ShouldBeNil)
			So(len(teams), ShouldEqual, 3)
			So(teams[0].TeamID, ShouldEqual, "DUR")
			So(teams[1].TeamID, ShouldEqual, "PAW")
			So(teams[2].TeamID, ShouldEqual, "TOL")
			So(teams[1].PlayerCount, ShouldEqual, 2)
			So(teams[1].TotalValue, ShouldBeGreaterThan, 0)
		})

		Convey("Then GetStats reflects the loaded snapshot", func() {
			stats := svc.GetStats()
			So(stats["league"], ShouldEqual, "Test League")
			So(stats["season"], ShouldEqual, 2026)
			So(stats["teams"], ShouldEqual, 3)
			So(stats["players"], ShouldEqual, 5)
		})
	})
}

func TestServiceSuggestTrades(t *testing.T) {
	svc := newStartedService(t)
	ctx := context.Background()

	Convey("Given a loaded league", t, func() {
		Convey("When searching the whole league", func() {
			suggestions, err := svc.SuggestTrades(ctx, "PAW", "", 0)
			So(err, ShouldBeNil)

			Convey("Then every suggestion improves the requesting team", func() {
				for _, sg := range suggestions {
					So(sg.Gain, ShouldBeGreaterThan, 0)
					So(sg.Verdict.Favors, ShouldNotEqual, "PAW")
				}
			})
		})

		Convey("When restricted to one partner", func() {
			suggestions, err := svc.SuggestTrades(ctx, "PAW", "DUR", 0)
			So(err, ShouldBeNil)
			for _, sg := range suggestions {
				So(sg.Proposal.TeamB, ShouldEqual, "DUR")
			}
		})

		Convey("When a limit is supplied it caps the results", func() {
			suggestions, err := svc.SuggestTrades(ctx, "PAW", "", 1)
			So(err, ShouldBeNil)
			So(len(suggestions), ShouldBeLessThanOrEqualTo, 1)
		})

		Convey("When the team is unknown", func() {
			_, err := svc.SuggestTrades(ctx, "NOPE", "", 0)
			So(errors.Is(err, model.ErrUnknownTeam), ShouldBeTrue)
		})

		Convey("When the partner is unknown", func() {
			_, err := svc.SuggestTrades(ctx, "PAW", "NOPE", 0)
			So(errors.Is(err, model.ErrUnknownTeam), ShouldBeTrue)
		})
	})
}

func TestServiceValuationTiming(t *testing.T) {
	_ = newStartedService(t)

	Convey("Given a loaded snapshot", t, func() {
		Convey("Then per-roster valuation durations are observed", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			var samples uint64
			for _, f := range families {
				if f.GetName() != "dynasty_analyzer_valuation_duration_milliseconds" {
					continue
				}
				for _, m := range f.GetMetric() {
					samples += m.GetHistogram().GetSampleCount()
				}
			}
			So(samples, ShouldBeGreaterThan, 0)
		})
	})
}

func TestServiceReload(t *testing.T) {
	svc := newStartedService(t)
	ctx := context.Background()

	Convey("Given a second snapshot", t, func() {
		second := `{
  "league": "Test League",
  "season": 2027,
  "teams": [
    {"team_id": "PAW", "name": "Pawtucket Steamers", "players": [
      {"id": "paw-ss", "name": "Young Shortstop", "positions": ["SS"], "age": 24,
       "projections": {"AVG": 0.290, "HR": 28}}
    ]},
    {"team_id": "DUR", "name": "Durham Drive", "players": []}
  ]
}`
		snap, err := rostersync.Load(strings.NewReader(second))
		So(err, ShouldBeNil)
		So(svc.LoadSnapshot(ctx, snap), ShouldBeNil)

		Convey("Then the league state is replaced wholesale", func() {
			stats := svc.GetStats()
			So(stats["season"], ShouldEqual, 2027)
			So(stats["players"], ShouldEqual, 1)

			_, err := svc.ValuePlayer(ctx, "dur-sp")
			So(errors.Is(err, model.ErrUnknownPlayer), ShouldBeTrue)

			entries, err := svc.TopN(ctx, 10)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
		})
	})
}

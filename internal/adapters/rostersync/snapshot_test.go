package rostersync_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/rostersync"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
)

const validSnapshot = `{
  "league": "Diamond Dynasties",
  "season": 2026,
  "generated_at": "2026-03-15T12:00:00Z",
  "teams": [
    {
      "team_id": "PAW",
      "name": "Pawtucket Steamers",
      "players": [
        {"id": "p1", "name": "A. Shortstop", "positions": ["SS"], "age": 24,
         "projections": {"AVG": 0.280, "HR": 24, "SB": 18}},
        {"id": "p2", "name": "B. Starter", "positions": ["SP"], "age": 28,
         "projections": {"ERA": 3.40, "WHIP": 1.10, "K": 190}}
      ]
    },
    {
      "team_id": "DUR",
      "name": "Durham Drive",
      "players": [
        {"id": "d1", "name": "C. Catcher", "positions": ["C", "1B"], "age": 31,
         "projections": {"AVG": 0.255, "HR": 19}}
      ]
    }
  ]
}`

func TestLoad(t *testing.T) {
	Convey("Given a valid league snapshot", t, func() {
		snap, err := rostersync.Load(strings.NewReader(validSnapshot))
		So(err, ShouldBeNil)

		Convey("Then the record shape survives decoding", func() {
			So(snap.League, ShouldEqual, "Diamond Dynasties")
			So(snap.Season, ShouldEqual, 2026)
			So(len(snap.Teams), ShouldEqual, 2)
			So(snap.PlayerCount(), ShouldEqual, 3)
			So(snap.Teams[0].Players[0].Projections["HR"], ShouldEqual, 24)
		})

		Convey("Then Rosters converts into domain records", func() {
			rosters := snap.Rosters()
			So(len(rosters), ShouldEqual, 2)
			So(rosters[0].TeamID, ShouldEqual, "PAW")
			So(len(rosters[0].Players), ShouldEqual, 2)

			p, ok := rosters[1].Player("d1")
			So(ok, ShouldBeTrue)
			So(p.PrimaryPosition(), ShouldEqual, "C")
			So(p.Age, ShouldEqual, 31)

			hr, ok := p.Projection("HR")
			So(ok, ShouldBeTrue)
			So(hr, ShouldEqual, 19)
		})
	})

	Convey("Given malformed or invalid snapshots", t, func() {
		Convey("When the payload is not JSON", func() {
			_, err := rostersync.Load(strings.NewReader("not json"))
			So(errors.Is(err, rostersync.ErrDecodeSnapshot), ShouldBeTrue)
		})

		Convey("When the payload carries unknown fields", func() {
			_, err := rostersync.Load(strings.NewReader(`{"teams": [], "surprise": 1}`))
			So(errors.Is(err, rostersync.ErrDecodeSnapshot), ShouldBeTrue)
		})

		Convey("When the snapshot has no teams", func() {
			_, err := rostersync.Load(strings.NewReader(`{"league": "x", "teams": []}`))
			So(errors.Is(err, model.ErrMissingData), ShouldBeTrue)
		})

		Convey("When a team id repeats", func() {
			payload := `{"teams": [
				{"team_id": "PAW", "name": "a", "players": []},
				{"team_id": "PAW", "name": "b", "players": []}
			]}`
			_, err := rostersync.Load(strings.NewReader(payload))
			So(errors.Is(err, rostersync.ErrInvalidSnapshot), ShouldBeTrue)
		})

		Convey("When a player is rostered by two teams", func() {
			payload := `{"teams": [
				{"team_id": "PAW", "name": "a", "players": [{"id": "p1", "name": "n"}]},
				{"team_id": "DUR", "name": "b", "players": [{"id": "p1", "name": "n"}]}
			]}`
			_, err := rostersync.Load(strings.NewReader(payload))
			So(errors.Is(err, rostersync.ErrInvalidSnapshot), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "PAW")
			So(err.Error(), ShouldContainSubstring, "DUR")
		})

		Convey("When a player has an empty id", func() {
			payload := `{"teams": [
				{"team_id": "PAW", "name": "a", "players": [{"id": "", "name": "n"}]}
			]}`
			_, err := rostersync.Load(strings.NewReader(payload))
			So(errors.Is(err, model.ErrMissingData), ShouldBeTrue)
		})

		Convey("When a player has no name", func() {
			payload := `{"teams": [
				{"team_id": "PAW", "name": "a", "players": [{"id": "p1", "name": ""}]}
			]}`
			_, err := rostersync.Load(strings.NewReader(payload))
			So(errors.Is(err, model.ErrMissingData), ShouldBeTrue)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a snapshot on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "league.json")
		So(os.WriteFile(path, []byte(validSnapshot), 0o600), ShouldBeNil)

		Convey("Then LoadFile reads and validates it", func() {
			snap, err := rostersync.LoadFile(path)
			So(err, ShouldBeNil)
			So(snap.PlayerCount(), ShouldEqual, 3)
		})

		Convey("Then a missing file reports its path", func() {
			_, err := rostersync.LoadFile(filepath.Join(dir, "missing.json"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing.json")
		})
	})
}

// Command league-gen produces a synthetic league snapshot for load and
// integration testing of the trade analyzer.
package main

import (
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/rostersync"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Age generation range for synthetic players.
const (
	minAge   = 20
	ageRange = 18
)

var hitterPositions = []string{"C", "1B", "2B", "3B", "SS", "OF", "OF", "OF"}

var firstNames = []string{
	"Alex", "Bo", "Cal", "Dez", "Eli", "Fernando", "Gus", "Hiro",
	"Ivan", "Jace", "Kenji", "Luis", "Mateo", "Nico", "Oscar", "Pedro",
}

var lastNames = []string{
	"Abreu", "Bellinger", "Castillo", "Duran", "Estrada", "Franco",
	"Gallo", "Hoskins", "Iglesias", "Jimenez", "Kwan", "Lowe",
	"Machado", "Naylor", "Olson", "Pena",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func between(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

func randomName() string {
	return firstNames[randomInt(len(firstNames))] + " " + lastNames[randomInt(len(lastNames))]
}

// hitterProjections generates a plausible hitter stat line. Better hitters
// are better across the board, so quality scales every category.
func hitterProjections(quality float64) map[string]float64 {
	return map[string]float64{
		model.CatAVG: between(0.230, 0.250) + quality*0.060,
		model.CatOPS: between(0.650, 0.700) + quality*0.300,
		model.CatHR:  between(5, 10) + quality*35,
		model.CatR:   between(40, 55) + quality*60,
		model.CatRBI: between(40, 55) + quality*60,
		model.CatSB:  between(0, 5) + quality*30,
		model.CatSO:  between(140, 170) - quality*70,
	}
}

// pitcherProjections generates a stat line for a starter or reliever.
func pitcherProjections(quality float64, reliever bool) map[string]float64 {
	if reliever {
		return map[string]float64{
			model.CatERA:   between(4.40, 4.80) - quality*1.80,
			model.CatWHIP:  between(1.30, 1.40) - quality*0.40,
			model.CatK:     between(50, 60) + quality*40,
			model.CatQS:    0,
			model.CatSVHLD: between(5, 10) + quality*30,
			model.CatL:     between(5, 7) - quality*3,
			model.CatKBB:   between(2.0, 2.4) + quality*2.5,
		}
	}
	return map[string]float64{
		model.CatERA:   between(4.60, 5.00) - quality*1.90,
		model.CatWHIP:  between(1.35, 1.45) - quality*0.45,
		model.CatK:     between(110, 130) + quality*110,
		model.CatQS:    between(8, 12) + quality*12,
		model.CatSVHLD: 0,
		model.CatL:     between(12, 14) - quality*6,
		model.CatKBB:   between(2.0, 2.4) + quality*2.8,
	}
}

func generatePlayer() rostersync.PlayerRecord {
	quality := getRandomFloat()
	age := minAge + randomInt(ageRange)

	// Roughly the hitter/pitcher split of a real fantasy roster.
	roll := randomInt(10)
	var positions []string
	var projections map[string]float64
	switch {
	case roll < 5:
		positions = []string{hitterPositions[randomInt(len(hitterPositions))]}
		projections = hitterProjections(quality)
	case roll < 8:
		positions = []string{"SP"}
		projections = pitcherProjections(quality, false)
	default:
		positions = []string{"RP"}
		projections = pitcherProjections(quality, true)
	}

	return rostersync.PlayerRecord{
		ID:          uuid.New().String(),
		Name:        randomName(),
		Positions:   positions,
		Age:         age,
		Projections: projections,
	}
}

func generateSnapshot(league string, season, teams, rosterSize int) rostersync.Snapshot {
	snap := rostersync.Snapshot{
		League:      league,
		Season:      season,
		GeneratedAt: time.Now().UTC(),
		Teams:       make([]rostersync.TeamRecord, teams),
	}
	for i := range snap.Teams {
		players := make([]rostersync.PlayerRecord, rosterSize)
		for j := range players {
			players[j] = generatePlayer()
		}
		snap.Teams[i] = rostersync.TeamRecord{
			TeamID:  fmt.Sprintf("TEAM-%02d", i+1),
			Name:    fmt.Sprintf("Franchise %02d", i+1),
			Players: players,
		}
	}
	return snap
}

func main() {
	league := flag.String("league", "Synthetic Dynasty League", "league name")
	season := flag.Int("season", time.Now().Year(), "season year")
	teams := flag.Int("teams", 12, "number of teams")
	rosterSize := flag.Int("roster", 26, "players per team")
	out := flag.String("out", "league.json", "output file path")
	flag.Parse()

	if *teams < 2 || *rosterSize < 1 {
		os.Stderr.WriteString("need at least 2 teams and 1 player per roster\n")
		os.Exit(1)
	}

	snap := generateSnapshot(*league, *season, *teams, *rosterSize)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		os.Stderr.WriteString("marshal snapshot: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		os.Stderr.WriteString("write snapshot: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %d teams, %d players\n", *out, *teams, *teams**rosterSize)
}

// Package model contains the domain records passed between layers.
package model

import "strings"

// Statistical category names recognized by the default league configuration.
// The active category set is league-configured; these constants cover the
// 7x7 H2H categories the defaults are calibrated for.
const (
	CatAVG   = "AVG"
	CatOPS   = "OPS"
	CatHR    = "HR"
	CatR     = "R"
	CatRBI   = "RBI"
	CatSB    = "SB"
	CatSO    = "SO"
	CatERA   = "ERA"
	CatWHIP  = "WHIP"
	CatK     = "K"
	CatQS    = "QS"
	CatSVHLD = "SV+HLD"
	CatL     = "L"
	CatKBB   = "K/BB"
)

// Player represents a rostered player with projections for one season.
// Instances are immutable once loaded for a valuation run.
type Player struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Positions []string           `json:"positions"` // primary position first
	Age       int                `json:"age"`
	Projected map[string]float64 `json:"projections"` // category -> projected value
}

// PrimaryPosition returns the player's primary position, or empty string
// when no position is listed.
func (p Player) PrimaryPosition() string {
	if len(p.Positions) == 0 {
		return ""
	}
	return strings.TrimSpace(p.Positions[0])
}

// Projection returns the projected value for a category and whether it was
// present. Missing categories contribute zero to valuation, never an error.
func (p Player) Projection(category string) (float64, bool) {
	v, ok := p.Projected[category]
	return v, ok
}

// Roster is an immutable snapshot of one team's players.
type Roster struct {
	TeamID  string   `json:"team_id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// Player returns the rostered player with the given id.
func (r Roster) Player(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerIDs returns the ids of all rostered players.
func (r Roster) PlayerIDs() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// TradeProposal describes players moving between two teams.
// FromA are the players team A sends to team B, and vice versa.
// A player id must appear on at most one side.
type TradeProposal struct {
	TeamA string   `json:"team_a"`
	TeamB string   `json:"team_b"`
	FromA []string `json:"from_a"`
	FromB []string `json:"from_b"`
}

// Swapped returns the proposal with the two sides exchanged.
func (tp TradeProposal) Swapped() TradeProposal {
	return TradeProposal{
		TeamA: tp.TeamB,
		TeamB: tp.TeamA,
		FromA: tp.FromB,
		FromB: tp.FromA,
	}
}

// PlayersMoved returns the total number of players changing teams.
func (tp TradeProposal) PlayersMoved() int {
	return len(tp.FromA) + len(tp.FromB)
}

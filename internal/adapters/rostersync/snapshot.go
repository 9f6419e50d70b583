// Package rostersync decodes league snapshots produced by the roster sync
// feed. The sync protocol itself lives upstream; this adapter only consumes
// the exported record shape and converts it into domain rosters.
package rostersync

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
)

// PlayerRecord is one player row in a league snapshot.
type PlayerRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Positions   []string           `json:"positions"`
	Age         int                `json:"age"`
	Projections map[string]float64 `json:"projections"`
}

// TeamRecord is one team row in a league snapshot.
type TeamRecord struct {
	TeamID  string         `json:"team_id"`
	Name    string         `json:"name"`
	Players []PlayerRecord `json:"players"`
}

// Snapshot is a full league export: every team with its current roster and
// season projections.
type Snapshot struct {
	League      string       `json:"league"`
	Season      int          `json:"season"`
	GeneratedAt time.Time    `json:"generated_at"`
	Teams       []TeamRecord `json:"teams"`
}

// Load decodes and validates a league snapshot from r.
func Load(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeSnapshot, err)
	}
	if err := snap.validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadFile decodes and validates a league snapshot from a JSON file.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

func (s *Snapshot) validate() error {
	if len(s.Teams) == 0 {
		return fmt.Errorf("%w: snapshot has no teams", model.ErrMissingData)
	}

	teamIDs := make(map[string]struct{}, len(s.Teams))
	playerIDs := make(map[string]string, 64)

	for _, t := range s.Teams {
		if t.TeamID == "" {
			return fmt.Errorf("%w: team with empty id", model.ErrMissingData)
		}
		if _, dup := teamIDs[t.TeamID]; dup {
			return fmt.Errorf("%w: duplicate team id %s", ErrInvalidSnapshot, t.TeamID)
		}
		teamIDs[t.TeamID] = struct{}{}

		for _, p := range t.Players {
			if p.ID == "" {
				return fmt.Errorf("%w: team %s has a player with empty id", model.ErrMissingData, t.TeamID)
			}
			if p.Name == "" {
				return fmt.Errorf("%w: player %s has no name", model.ErrMissingData, p.ID)
			}
			if owner, dup := playerIDs[p.ID]; dup {
				return fmt.Errorf("%w: player %s rostered by both %s and %s", ErrInvalidSnapshot, p.ID, owner, t.TeamID)
			}
			playerIDs[p.ID] = t.TeamID
		}
	}
	return nil
}

// Rosters converts the snapshot into domain rosters, one per team.
func (s *Snapshot) Rosters() []model.Roster {
	rosters := make([]model.Roster, len(s.Teams))
	for i, t := range s.Teams {
		players := make([]model.Player, len(t.Players))
		for j, p := range t.Players {
			players[j] = model.Player{
				ID:        p.ID,
				Name:      p.Name,
				Positions: p.Positions,
				Age:       p.Age,
				Projected: p.Projections,
			}
		}
		rosters[i] = model.Roster{
			TeamID:  t.TeamID,
			Name:    t.Name,
			Players: players,
		}
	}
	return rosters
}

// PlayerCount returns the number of players across all teams.
func (s *Snapshot) PlayerCount() int {
	n := 0
	for _, t := range s.Teams {
		n += len(t.Players)
	}
	return n
}

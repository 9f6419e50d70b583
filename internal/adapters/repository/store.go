// Package repository defines the player ranking store interface and errors.
package repository

import "context"

// Entry represents one row in the dynasty value rankings.
type Entry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	TeamID   string  `json:"team_id"`
	Age      int     `json:"age"`
	Value    float64 `json:"value"`
}

// Store provides read access to the ranked valuation state. Rankings are
// rebuilt wholesale whenever a new league snapshot is valuated.
type Store interface {
	// Rebuild replaces the entire ranking with the given entries.
	Rebuild(ctx context.Context, entries []Entry) error

	// Rank returns the current rank and value for a player.
	// Returns ErrNotFound if the player is unknown.
	Rank(ctx context.Context, playerID string) (Entry, error)

	// TopN returns the top-N entries ordered by value descending.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players tracked in the rankings.
	Count(ctx context.Context) int
}

package model

import "errors"

// Sentinel error kinds shared by the domain packages.
var (
	// ErrMissingData indicates a required roster or projection reference is absent.
	ErrMissingData = errors.New("missing data")

	// ErrUnknownTeam indicates a referenced team id is not in the snapshot.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrUnknownPlayer indicates a referenced player id is not in the snapshot.
	ErrUnknownPlayer = errors.New("unknown player")
)

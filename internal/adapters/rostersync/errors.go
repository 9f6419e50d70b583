package rostersync

import "errors"

// Sentinel kinds for snapshot loading errors.
var (
	ErrDecodeSnapshot  = errors.New("decode snapshot")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

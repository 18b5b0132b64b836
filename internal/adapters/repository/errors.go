package repository

import "errors"

// Sentinel kinds for snapshot cache errors.
var (
	ErrStaleGeneration = errors.New("snapshot generation is stale")
)

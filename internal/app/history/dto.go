package history

import (
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type Request struct {
	AssetID string
	Limit   int
	// OccurredFrom and OccurredTo are inclusive unix-second bounds; 0 leaves
	// that side open.
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events      []ports.TransitionEvent      `json:"events"`
	LatestState progression.ProgressionState `json:"latest_state"`
}

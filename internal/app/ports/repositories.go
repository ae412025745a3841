package ports

import (
	"context"
	"time"

	"nftforge/internal/domain/progression"
)

type ProgressionStateRepository interface {
	GetByAssetID(ctx context.Context, assetID string) (progression.ProgressionState, error)
	// SaveWithVersion inserts when expectedVersion is 0, otherwise updates only
	// if the stored version still equals expectedVersion.
	SaveWithVersion(ctx context.Context, state progression.ProgressionState, expectedVersion int64) error
}

type TransitionEvent struct {
	AssetID    string                     `json:"asset_id"`
	Kind       progression.TransitionKind `json:"kind"`
	OccurredAt time.Time                  `json:"occurred_at"`
	Payload    map[string]any             `json:"payload"`
}

type EventRepository interface {
	Append(ctx context.Context, events []TransitionEvent) error
	ListByAssetID(ctx context.Context, assetID string, limit int) ([]TransitionEvent, error)
}

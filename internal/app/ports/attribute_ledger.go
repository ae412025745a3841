package ports

import (
	"context"

	"nftforge/internal/domain/progression"
)

type AssetRecord struct {
	AssetID    string                   `json:"asset_id"`
	Name       string                   `json:"name"`
	URI        string                   `json:"uri"`
	Attributes progression.AttributeSet `json:"attributes"`
}

// AttributeLedger persists the attribute set against an asset's public
// identity. Update always replaces the stored attributes, never merges.
type AttributeLedger interface {
	Create(ctx context.Context, assetID, name, uri string, attrs progression.AttributeSet) error
	Update(ctx context.Context, assetID string, attrs progression.AttributeSet) error
	Get(ctx context.Context, assetID string) (AssetRecord, error)
}

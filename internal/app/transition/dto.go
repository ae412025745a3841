package transition

import "nftforge/internal/domain/progression"

type MintRequest struct {
	AssetID         string
	Name            string
	URI             string
	Level           int64
	Rarity          string
	FusionPotential int64
}

type UpdateRequest struct {
	AssetID        string
	NewLevel       int64
	MinTimeElapsed int64
	NewRarity      *string
}

type EvolveRequest struct {
	AssetID string
}

type FuseRequest struct {
	SourceAssetID string
	OtherAssetID  string
	ResultAssetID string
	FusionType    string
}

type Response struct {
	AssetID    string                       `json:"asset_id"`
	Kind       progression.TransitionKind   `json:"kind"`
	State      progression.ProgressionState `json:"state"`
	Attributes progression.AttributeSet     `json:"attributes"`
	Created    bool                         `json:"created,omitempty"`
}

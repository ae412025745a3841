package status

import (
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type Request struct {
	AssetID string
}

type Evolution struct {
	RequiredSeconds  int64              `json:"required_seconds"`
	ReadyAt          int64              `json:"ready_at"`
	RemainingSeconds int64              `json:"remaining_seconds"`
	Chance           int64              `json:"chance"`
	NextRarity       progression.Rarity `json:"next_rarity"`
}

type Response struct {
	State           progression.ProgressionState `json:"state"`
	Record          *ports.AssetRecord           `json:"record,omitempty"`
	AchievementTier progression.AchievementTier  `json:"achievement_tier"`
	Evolution       *Evolution                   `json:"evolution,omitempty"`
	GoldenHour      bool                         `json:"golden_hour"`
}

package progression

import "strconv"

// ProgressionState is the mutable record of one asset. AssetID and MintTime
// are fixed once the record exists.
type ProgressionState struct {
	AssetID           string `json:"asset_id"`
	Level             int64  `json:"level"`
	Rarity            Rarity `json:"rarity"`
	MintTime          int64  `json:"mint_time"`
	LastUpdateTime    int64  `json:"last_update_time"`
	EvolutionCount    int64  `json:"evolution_count"`
	FusionPotential   int64  `json:"fusion_potential"`
	AchievementPoints int64  `json:"achievement_points"`
	Version           int64  `json:"version"`
}

// StateKey derives the storage key of an asset's progression record.
func StateKey(assetID string) string {
	return StateKeyPrefix + assetID
}

func (s ProgressionState) Key() string {
	return StateKey(s.AssetID)
}

// Validate checks the record-level invariants.
func (s ProgressionState) Validate() error {
	if s.AssetID == "" {
		return ErrInvalidParams
	}
	if s.Level < 0 || s.EvolutionCount < 0 || s.FusionPotential < 0 || s.AchievementPoints < 0 {
		return ErrInvalidParams
	}
	if !s.Rarity.Valid() {
		return ErrInvalidParams
	}
	if s.LastUpdateTime < s.MintTime {
		return ErrInvalidParams
	}
	return nil
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AttributeSet is emitted fresh by every transition and replaces whatever the
// ledger held for the asset.
type AttributeSet []Attribute

func (a AttributeSet) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a AttributeSet) Map() map[string]string {
	out := make(map[string]string, len(a))
	for _, attr := range a {
		out[attr.Key] = attr.Value
	}
	return out
}

type attrBuilder struct {
	attrs AttributeSet
}

func (b *attrBuilder) str(key, value string) *attrBuilder {
	b.attrs = append(b.attrs, Attribute{Key: key, Value: value})
	return b
}

func (b *attrBuilder) num(key string, value int64) *attrBuilder {
	return b.str(key, strconv.FormatInt(value, 10))
}

type TransitionKind string

const (
	TransitionMint   TransitionKind = "mint"
	TransitionUpdate TransitionKind = "update"
	TransitionEvolve TransitionKind = "evolve"
	TransitionFuse   TransitionKind = "fuse"
)

type TransitionResult struct {
	Kind       TransitionKind   `json:"kind"`
	State      ProgressionState `json:"state"`
	Attributes AttributeSet     `json:"attributes"`
	Created    bool             `json:"created,omitempty"`
}

const (
	AttrLevel              = "level"
	AttrRarity             = "rarity"
	AttrMintTime           = "mint_time"
	AttrFusionPotential    = "fusion_potential"
	AttrAchievementTier    = "achievement_tier"
	AttrFusionBonus        = "fusion_bonus"
	AttrHour               = "hour"
	AttrLastUpdateTime     = "last_update_time"
	AttrBonusExperience    = "bonus_experience"
	AttrCooldownMultiplier = "cooldown_multiplier"
	AttrEvolvedAt          = "evolved_at"
	AttrEvolutionCount     = "evolution_count"
	AttrFusionBonusUsed    = "fusion_bonus_used"
	AttrEvolutionChance    = "evolution_chance"
	AttrFusionType         = "fusion_type"
	AttrFusedAt            = "fused_at"
	AttrFusionMultiplier   = "fusion_multiplier"
)

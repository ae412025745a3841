package progression

// Rarity is a tier on the forward-only rarity ladder.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
	RarityDivine    Rarity = "Divine"
)

// TierProfile holds the per-tier behavioral multipliers.
type TierProfile struct {
	Rank               int
	CooldownMultiplier int64
	RewardMultiplier   int64
	EvolutionChance    int64
	Next               Rarity
}

var ladder = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
	RarityDivine,
}

var tierProfiles = map[Rarity]TierProfile{
	RarityCommon:    {Rank: 0, CooldownMultiplier: 1, RewardMultiplier: 1, EvolutionChance: 100, Next: RarityUncommon},
	RarityUncommon:  {Rank: 1, CooldownMultiplier: 1, RewardMultiplier: 2, EvolutionChance: 90, Next: RarityRare},
	RarityRare:      {Rank: 2, CooldownMultiplier: 2, RewardMultiplier: 3, EvolutionChance: 75, Next: RarityEpic},
	RarityEpic:      {Rank: 3, CooldownMultiplier: 3, RewardMultiplier: 5, EvolutionChance: 50, Next: RarityLegendary},
	RarityLegendary: {Rank: 4, CooldownMultiplier: 4, RewardMultiplier: 8, EvolutionChance: 30, Next: RarityMythic},
	RarityMythic:    {Rank: 5, CooldownMultiplier: 5, RewardMultiplier: 12, EvolutionChance: 15, Next: RarityDivine},
	RarityDivine:    {Rank: 6, CooldownMultiplier: 6, RewardMultiplier: 20, EvolutionChance: 5, Next: RarityDivine},
}

// Ladder returns the tiers in ascending order.
func Ladder() []Rarity {
	out := make([]Rarity, len(ladder))
	copy(out, ladder)
	return out
}

// ParseRarity matches a label exactly against the ladder.
func ParseRarity(label string) (Rarity, bool) {
	r := Rarity(label)
	_, ok := tierProfiles[r]
	return r, ok
}

func (r Rarity) Valid() bool {
	_, ok := tierProfiles[r]
	return ok
}

// Profile returns the tier row. Unknown tiers yield the zero profile.
func (r Rarity) Profile() TierProfile {
	return tierProfiles[r]
}

func (r Rarity) Rank() int {
	return tierProfiles[r].Rank
}

// Next is the evolution target; Divine is the ceiling and maps to itself.
func (r Rarity) Next() Rarity {
	return tierProfiles[r].Next
}

// Before reports whether r sits strictly below other on the ladder.
func (r Rarity) Before(other Rarity) bool {
	return r.Rank() < other.Rank()
}

func (r Rarity) String() string {
	return string(r)
}

package progression

const (
	SecondsPerHour = 3600
	SecondsPerDay  = 86400
	HoursPerDay    = 24

	// Minting during these UTC hours forces Legendary.
	GoldenHourMidnight = 0
	GoldenHourNoon     = 12

	FusionBonusPerPotential = 10

	// Evolution waits one day per level, minus one hour per fusion-potential point.
	EvolutionSecondsPerLevel      = SecondsPerDay
	EvolutionDiscountPerPotential = SecondsPerHour

	EvolutionRollModulus = 100

	StateKeyPrefix = "nft_state:"
)

type FusionType string

const (
	FusionPower     FusionType = "Power"
	FusionSpeed     FusionType = "Speed"
	FusionMagic     FusionType = "Magic"
	FusionLegendary FusionType = "Legendary"
)

var fusionMultipliers = map[FusionType]int64{
	FusionPower:     2,
	FusionSpeed:     3,
	FusionMagic:     4,
	FusionLegendary: 5,
}

// FusionMultiplier falls back to 1 for any label outside the table.
func FusionMultiplier(t FusionType) int64 {
	if m, ok := fusionMultipliers[t]; ok {
		return m
	}
	return 1
}

// FusedRarity only rewards matched Rare, Epic and Legendary pairs; every other
// pairing collapses to Rare.
func FusedRarity(a, b Rarity) Rarity {
	if a != b {
		return RarityRare
	}
	switch a {
	case RarityLegendary:
		return RarityDivine
	case RarityEpic:
		return RarityLegendary
	case RarityRare:
		return RarityEpic
	default:
		return RarityRare
	}
}

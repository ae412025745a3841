package progression

type AchievementTier string

const (
	AchievementNovice      AchievementTier = "Novice"
	AchievementApprentice  AchievementTier = "Apprentice"
	AchievementExpert      AchievementTier = "Expert"
	AchievementMaster      AchievementTier = "Master"
	AchievementGrandmaster AchievementTier = "Grandmaster"
)

// ClassifyAchievement maps a level to its achievement tier. Level 0 lands in
// the Grandmaster bucket together with everything above 75.
func ClassifyAchievement(level int64) AchievementTier {
	switch {
	case level >= 1 && level <= 10:
		return AchievementNovice
	case level >= 11 && level <= 25:
		return AchievementApprentice
	case level >= 26 && level <= 50:
		return AchievementExpert
	case level >= 51 && level <= 75:
		return AchievementMaster
	default:
		return AchievementGrandmaster
	}
}

package progression

// TransitionService holds the four progression transitions. Every method is a
// pure check-then-act computation: on error the returned result is zero and
// the input state is untouched. Callers serialize writes per asset.
type TransitionService struct{}

type MintInput struct {
	AssetID         string
	Level           int64
	Rarity          Rarity
	FusionPotential int64
	Now             int64
}

type UpdateInput struct {
	NewLevel       int64
	MinTimeElapsed int64
	NewRarity      *Rarity
	Now            int64
}

type FuseInput struct {
	ResultAssetID string
	// Result is the existing record of the result asset, nil when the fusion
	// creates it.
	Result     *ProgressionState
	FusionType FusionType
	Now        int64
}

// MintHour is the UTC hour of a unix timestamp.
func MintHour(now int64) int64 {
	return (now / SecondsPerHour) % HoursPerDay
}

func IsGoldenHour(now int64) bool {
	hour := MintHour(now)
	return hour == GoldenHourMidnight || hour == GoldenHourNoon
}

func (TransitionService) Mint(in MintInput) (TransitionResult, error) {
	if in.AssetID == "" || in.Level < 0 || in.FusionPotential < 0 || !in.Rarity.Valid() {
		return TransitionResult{}, ErrInvalidParams
	}

	rarity := in.Rarity
	if IsGoldenHour(in.Now) {
		rarity = RarityLegendary
	}

	fusionBonus, err := mulInt64(in.FusionPotential, FusionBonusPerPotential)
	if err != nil {
		return TransitionResult{}, err
	}

	state := ProgressionState{
		AssetID:         in.AssetID,
		Level:           in.Level,
		Rarity:          rarity,
		MintTime:        in.Now,
		LastUpdateTime:  in.Now,
		FusionPotential: in.FusionPotential,
	}

	b := &attrBuilder{}
	b.num(AttrLevel, state.Level).
		str(AttrRarity, string(state.Rarity)).
		num(AttrMintTime, state.MintTime).
		num(AttrFusionPotential, state.FusionPotential).
		str(AttrAchievementTier, string(ClassifyAchievement(state.Level))).
		num(AttrFusionBonus, fusionBonus).
		num(AttrHour, MintHour(in.Now))

	return validated(TransitionResult{
		Kind:       TransitionMint,
		State:      state,
		Attributes: b.attrs,
		Created:    true,
	})
}

// UpdateCooldown is the elapsed time an Update must wait for at the given tier.
func UpdateCooldown(rarity Rarity, minTimeElapsed int64) (int64, error) {
	return mulInt64(minTimeElapsed, rarity.Profile().CooldownMultiplier)
}

func (TransitionService) Update(state ProgressionState, in UpdateInput) (TransitionResult, error) {
	if !state.Rarity.Valid() || in.MinTimeElapsed < 0 {
		return TransitionResult{}, ErrInvalidParams
	}
	if in.NewRarity != nil && !in.NewRarity.Valid() {
		return TransitionResult{}, ErrInvalidParams
	}

	profile := state.Rarity.Profile()
	cooldown, err := UpdateCooldown(state.Rarity, in.MinTimeElapsed)
	if err != nil {
		return TransitionResult{}, err
	}
	availableAt, err := addInt64(state.LastUpdateTime, cooldown)
	if err != nil {
		return TransitionResult{}, err
	}
	if in.Now < availableAt {
		remaining, err := subInt64(availableAt, in.Now)
		if err != nil {
			return TransitionResult{}, err
		}
		return TransitionResult{}, &UpdateTooSoonError{
			AvailableAt:      availableAt,
			RemainingSeconds: remaining,
		}
	}
	if in.NewLevel <= state.Level {
		return TransitionResult{}, ErrInvalidLevelProgression
	}

	gained, err := subInt64(in.NewLevel, state.Level)
	if err != nil {
		return TransitionResult{}, err
	}
	bonusExperience, err := mulInt64(gained, profile.RewardMultiplier)
	if err != nil {
		return TransitionResult{}, err
	}

	next := state
	next.Level = in.NewLevel
	next.LastUpdateTime = in.Now
	// The supplied rarity is applied as-is; Update does not walk the ladder.
	if in.NewRarity != nil {
		next.Rarity = *in.NewRarity
	}

	b := &attrBuilder{}
	b.num(AttrLevel, next.Level).
		num(AttrLastUpdateTime, next.LastUpdateTime).
		num(AttrBonusExperience, bonusExperience).
		num(AttrCooldownMultiplier, profile.CooldownMultiplier)
	if in.NewRarity != nil {
		b.str(AttrRarity, string(next.Rarity))
	}

	return validated(TransitionResult{Kind: TransitionUpdate, State: next, Attributes: b.attrs})
}

// EvolutionRequirement is the age an asset needs before it may evolve. It goes
// negative when the fusion discount outweighs the level requirement.
func EvolutionRequirement(state ProgressionState) (int64, error) {
	base, err := mulInt64(state.Level, EvolutionSecondsPerLevel)
	if err != nil {
		return 0, err
	}
	discount, err := fusionDiscount(state)
	if err != nil {
		return 0, err
	}
	return subInt64(base, discount)
}

// EvolutionWindow reports the requirement, the unix time it is met, and the
// seconds left until then (zero once ready).
func EvolutionWindow(state ProgressionState, now int64) (required, readyAt, remaining int64, err error) {
	if required, err = EvolutionRequirement(state); err != nil {
		return 0, 0, 0, err
	}
	if readyAt, err = addInt64(state.MintTime, required); err != nil {
		return 0, 0, 0, err
	}
	if now < readyAt {
		if remaining, err = subInt64(readyAt, now); err != nil {
			return 0, 0, 0, err
		}
	}
	return required, readyAt, remaining, nil
}

func fusionDiscount(state ProgressionState) (int64, error) {
	return mulInt64(state.FusionPotential, EvolutionDiscountPerPotential)
}

// EvolutionRoll is a deterministic gate derived from the timestamp. It is not
// a secure random source.
func EvolutionRoll(now int64) int64 {
	return now % EvolutionRollModulus
}

func (TransitionService) Evolve(state ProgressionState, now int64) (TransitionResult, error) {
	if !state.Rarity.Valid() {
		return TransitionResult{}, ErrInvalidParams
	}

	required, err := EvolutionRequirement(state)
	if err != nil {
		return TransitionResult{}, err
	}
	age, err := subInt64(now, state.MintTime)
	if err != nil {
		return TransitionResult{}, err
	}
	if age < required {
		remaining, err := subInt64(required, age)
		if err != nil {
			return TransitionResult{}, err
		}
		return TransitionResult{}, &EvolutionNotReadyError{
			RequiredSeconds:  required,
			RemainingSeconds: remaining,
		}
	}

	profile := state.Rarity.Profile()
	if roll := EvolutionRoll(now); roll > profile.EvolutionChance {
		return TransitionResult{}, &EvolutionFailedError{Roll: roll, Chance: profile.EvolutionChance}
	}

	level, err := addInt64(state.Level, 1)
	if err != nil {
		return TransitionResult{}, err
	}
	evolutions, err := addInt64(state.EvolutionCount, 1)
	if err != nil {
		return TransitionResult{}, err
	}
	discount, err := fusionDiscount(state)
	if err != nil {
		return TransitionResult{}, err
	}

	next := state
	next.Level = level
	next.Rarity = profile.Next
	next.LastUpdateTime = now
	next.EvolutionCount = evolutions

	b := &attrBuilder{}
	b.num(AttrLevel, next.Level).
		str(AttrRarity, string(next.Rarity)).
		num(AttrEvolvedAt, now).
		num(AttrEvolutionCount, next.EvolutionCount).
		num(AttrFusionBonusUsed, discount).
		num(AttrEvolutionChance, profile.EvolutionChance)

	return validated(TransitionResult{Kind: TransitionEvolve, State: next, Attributes: b.attrs})
}

func (TransitionService) Fuse(a, b ProgressionState, in FuseInput) (TransitionResult, error) {
	if in.ResultAssetID == "" || a.AssetID == "" || b.AssetID == "" {
		return TransitionResult{}, ErrInvalidParams
	}
	if in.Result != nil && in.Result.AssetID != in.ResultAssetID {
		return TransitionResult{}, ErrInvalidParams
	}
	if a.AssetID == b.AssetID {
		return TransitionResult{}, ErrCannotFuseSameNFT
	}

	multiplier := FusionMultiplier(in.FusionType)
	levelSum, err := addInt64(a.Level, b.Level)
	if err != nil {
		return TransitionResult{}, err
	}
	scaled, err := mulInt64(levelSum, multiplier)
	if err != nil {
		return TransitionResult{}, err
	}
	potential, err := addInt64(a.FusionPotential, b.FusionPotential)
	if err == nil {
		potential, err = addInt64(potential, 1)
	}
	if err != nil {
		return TransitionResult{}, err
	}
	evolutions, err := addInt64(a.EvolutionCount, b.EvolutionCount)
	if err != nil {
		return TransitionResult{}, err
	}

	var next ProgressionState
	created := in.Result == nil
	if created {
		next = ProgressionState{AssetID: in.ResultAssetID, MintTime: in.Now}
	} else {
		next = *in.Result
	}
	next.Level = scaled / 2
	next.Rarity = FusedRarity(a.Rarity, b.Rarity)
	next.FusionPotential = potential
	next.LastUpdateTime = in.Now
	next.EvolutionCount = evolutions

	attrs := &attrBuilder{}
	attrs.num(AttrLevel, next.Level).
		str(AttrRarity, string(next.Rarity)).
		str(AttrFusionType, string(in.FusionType)).
		num(AttrFusionPotential, next.FusionPotential).
		num(AttrFusedAt, in.Now).
		num(AttrFusionMultiplier, multiplier)

	return validated(TransitionResult{
		Kind:       TransitionFuse,
		State:      next,
		Attributes: attrs.attrs,
		Created:    created,
	})
}

// validated rejects a result whose state breaks the record invariants.
func validated(res TransitionResult) (TransitionResult, error) {
	if err := res.State.Validate(); err != nil {
		return TransitionResult{}, err
	}
	return res, nil
}

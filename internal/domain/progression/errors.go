package progression

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var ErrInvalidParams = errors.New("invalid progression params")

// Raised by the transitions.
var (
	ErrUpdateTooSoon           = errors.New("cannot update metadata too soon")
	ErrInvalidLevelProgression = errors.New("level progression must be forward-only")
	ErrEvolutionNotReady       = errors.New("asset is not ready for evolution yet")
	ErrEvolutionFailed         = errors.New("evolution roll failed")
	ErrCannotFuseSameNFT       = errors.New("cannot fuse an asset with itself")
)

// Reserved for future rules; nothing raises these yet.
var (
	ErrFusionRequirementsNotMet      = errors.New("fusion requirements not met")
	ErrInvalidRarity                 = errors.New("invalid rarity")
	ErrInsufficientAchievementPoints = errors.New("insufficient achievement points")
	ErrTimeLockedFeature             = errors.New("feature is time locked")
	ErrFusionPotentialExhausted      = errors.New("fusion potential exhausted")
)

type UpdateTooSoonError struct {
	AvailableAt      int64
	RemainingSeconds int64
}

func (e *UpdateTooSoonError) Error() string {
	return fmt.Sprintf("%s: %ds remaining", ErrUpdateTooSoon.Error(), e.RemainingSeconds)
}

func (e *UpdateTooSoonError) Unwrap() error {
	return ErrUpdateTooSoon
}

type EvolutionNotReadyError struct {
	RequiredSeconds  int64
	RemainingSeconds int64
}

func (e *EvolutionNotReadyError) Error() string {
	return fmt.Sprintf("%s: %ds remaining", ErrEvolutionNotReady.Error(), e.RemainingSeconds)
}

func (e *EvolutionNotReadyError) Unwrap() error {
	return ErrEvolutionNotReady
}

type EvolutionFailedError struct {
	Roll   int64
	Chance int64
}

func (e *EvolutionFailedError) Error() string {
	return fmt.Sprintf("%s: rolled %d against %d%%", ErrEvolutionFailed.Error(), e.Roll, e.Chance)
}

func (e *EvolutionFailedError) Unwrap() error {
	return ErrEvolutionFailed
}

// Kind names a taxonomy error for logs, metrics and API codes. Unknown errors
// map to "".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUpdateTooSoon):
		return "update_too_soon"
	case errors.Is(err, ErrInvalidLevelProgression):
		return "invalid_level_progression"
	case errors.Is(err, ErrEvolutionNotReady):
		return "evolution_not_ready"
	case errors.Is(err, ErrEvolutionFailed):
		return "evolution_failed"
	case errors.Is(err, ErrCannotFuseSameNFT):
		return "cannot_fuse_same_nft"
	case errors.Is(err, ErrFusionRequirementsNotMet):
		return "fusion_requirements_not_met"
	case errors.Is(err, ErrInvalidRarity):
		return "invalid_rarity"
	case errors.Is(err, ErrInsufficientAchievementPoints):
		return "insufficient_achievement_points"
	case errors.Is(err, ErrTimeLockedFeature):
		return "time_locked_feature"
	case errors.Is(err, ErrFusionPotentialExhausted):
		return "fusion_potential_exhausted"
	default:
		return ""
	}
}

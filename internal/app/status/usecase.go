package status

import (
	"context"
	"strings"
	"time"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	StateRepo ports.ProgressionStateRepository
	Ledger    ports.AttributeLedger
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	assetID := strings.TrimSpace(req.AssetID)
	if assetID == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByAssetID(ctx, assetID)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		State:           state,
		AchievementTier: progression.ClassifyAchievement(state.Level),
	}
	if u.Ledger != nil {
		rec, err := u.Ledger.Get(ctx, assetID)
		switch {
		case err == nil:
			resp.Record = &rec
		case errors.Is(err, ports.ErrNotFound):
		default:
			return Response{}, errors.Wrap(err, "ledger get")
		}
	}

	now := u.now().Unix()
	resp.GoldenHour = progression.IsGoldenHour(now)
	if state.Rarity.Valid() {
		// A level too large to express the window in seconds has none.
		if required, readyAt, remaining, err := progression.EvolutionWindow(state, now); err == nil {
			profile := state.Rarity.Profile()
			resp.Evolution = &Evolution{
				RequiredSeconds:  required,
				ReadyAt:          readyAt,
				RemainingSeconds: remaining,
				Chance:           profile.EvolutionChance,
				NextRarity:       profile.Next,
			}
		}
	}
	return resp, nil
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now()
}

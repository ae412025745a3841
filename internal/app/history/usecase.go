package history

import (
	"context"
	"strings"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
)

var ErrInvalidRequest = errors.New("invalid history request")

const maxLimit = 500

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	assetID := strings.TrimSpace(req.AssetID)
	if assetID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit > maxLimit {
		limit = maxLimit
	}

	// The window is applied after the fetch, so the limit only caps the read
	// when no window is given.
	fetch := limit
	if req.OccurredFrom > 0 || req.OccurredTo > 0 {
		fetch = 0
	}
	events, err := u.Events.ListByAssetID(ctx, assetID, fetch)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	latest := reconstruct(events)
	latest.AssetID = assetID
	return Response{Events: events, LatestState: latest}, nil
}

func filterByTimeWindow(events []ports.TransitionEvent, from, to int64) []ports.TransitionEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]ports.TransitionEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstruct reads the newest state_after snapshot. events are newest first.
func reconstruct(events []ports.TransitionEvent) progression.ProgressionState {
	for _, evt := range events {
		after, ok := evt.Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		rarity, _ := after["rarity"].(string)
		return progression.ProgressionState{
			Level:             num(after["level"]),
			Rarity:            progression.Rarity(rarity),
			MintTime:          num(after["mint_time"]),
			LastUpdateTime:    num(after["last_update_time"]),
			EvolutionCount:    num(after["evolution_count"]),
			FusionPotential:   num(after["fusion_potential"]),
			AchievementPoints: num(after["achievement_points"]),
			Version:           num(after["version"]),
		}
	}
	return progression.ProgressionState{}
}

func num(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

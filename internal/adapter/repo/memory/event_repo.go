package memory

import (
	"context"
	"sort"

	"nftforge/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, events []ports.TransitionEvent) error {
	r.store.write(ctx, func() {
		for _, e := range events {
			r.store.events[e.AssetID] = append(r.store.events[e.AssetID], e)
		}
	})
	return nil
}

// ListByAssetID returns the newest events first.
func (r EventRepo) ListByAssetID(ctx context.Context, assetID string, limit int) ([]ports.TransitionEvent, error) {
	var out []ports.TransitionEvent
	r.store.read(ctx, func() {
		stored := r.store.events[assetID]
		for i := len(stored) - 1; i >= 0; i-- {
			out = append(out, stored[i])
		}
	})
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

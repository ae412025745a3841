package memory

import (
	"context"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type ProgressionStateRepo struct {
	store *Store
}

func NewProgressionStateRepo(store *Store) ProgressionStateRepo {
	return ProgressionStateRepo{store: store}
}

func (r ProgressionStateRepo) GetByAssetID(ctx context.Context, assetID string) (progression.ProgressionState, error) {
	var (
		state progression.ProgressionState
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.state[progression.StateKey(assetID)]
	})
	if !ok {
		return progression.ProgressionState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r ProgressionStateRepo) SaveWithVersion(ctx context.Context, state progression.ProgressionState, expectedVersion int64) error {
	var err error
	r.store.write(ctx, func() {
		key := state.Key()
		current, ok := r.store.state[key]
		if !ok {
			if expectedVersion != 0 {
				err = ports.ErrConflict
				return
			}
			r.store.state[key] = state
			return
		}
		if current.Version != expectedVersion || expectedVersion == 0 {
			err = ports.ErrConflict
			return
		}
		r.store.state[key] = state
	})
	return err
}

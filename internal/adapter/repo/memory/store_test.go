package memory

import (
	"context"
	"testing"
	"time"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressionStateRepo_OptimisticVersioning(t *testing.T) {
	store := NewStore()
	repo := NewProgressionStateRepo(store)
	ctx := context.Background()

	state := progression.ProgressionState{AssetID: "a", Level: 1, Rarity: progression.RarityCommon, Version: 1}
	require.NoError(t, repo.SaveWithVersion(ctx, state, 0))
	assert.ErrorIs(t, repo.SaveWithVersion(ctx, state, 0), ports.ErrConflict)

	state.Level = 2
	state.Version = 2
	require.NoError(t, repo.SaveWithVersion(ctx, state, 1))
	assert.ErrorIs(t, repo.SaveWithVersion(ctx, state, 1), ports.ErrConflict)

	got, err := repo.GetByAssetID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Level)

	_, err = repo.GetByAssetID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	repo := NewProgressionStateRepo(store)
	events := NewEventRepo(store)
	tx := NewTxManager(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.SaveWithVersion(txCtx, progression.ProgressionState{AssetID: "a", Rarity: progression.RarityRare, Version: 1}, 0); err != nil {
			return err
		}
		if err := events.Append(txCtx, []ports.TransitionEvent{{AssetID: "a", Kind: progression.TransitionMint}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByAssetID(ctx, "a")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = events.ListByAssetID(ctx, "a", 0)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestEventRepo_NewestFirstWithLimit(t *testing.T) {
	store := NewStore()
	events := NewEventRepo(store)
	ctx := context.Background()
	base := time.Unix(1000, 0)

	require.NoError(t, events.Append(ctx, []ports.TransitionEvent{
		{AssetID: "a", Kind: progression.TransitionMint, OccurredAt: base},
		{AssetID: "a", Kind: progression.TransitionUpdate, OccurredAt: base.Add(time.Minute)},
		{AssetID: "a", Kind: progression.TransitionEvolve, OccurredAt: base.Add(time.Minute)},
		{AssetID: "b", Kind: progression.TransitionMint, OccurredAt: base},
	}))

	got, err := events.ListByAssetID(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, progression.TransitionEvolve, got[0].Kind)
	assert.Equal(t, progression.TransitionUpdate, got[1].Kind)
}

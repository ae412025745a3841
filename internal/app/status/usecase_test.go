package status

import (
	"context"
	"math"
	"testing"
	"time"

	ledgermem "nftforge/internal/adapter/ledger/memory"
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCase_ReportsStateRecordAndEvolutionWindow(t *testing.T) {
	ledger := ledgermem.NewLedger()
	require.NoError(t, ledger.Create(context.Background(), "a", "Axe", "ipfs://axe", progression.AttributeSet{
		{Key: progression.AttrLevel, Value: "12"},
	}))
	repo := statusStateRepo{state: progression.ProgressionState{
		AssetID: "a", Level: 12, Rarity: progression.RarityEpic, MintTime: 1000, FusionPotential: 2,
	}}

	uc := UseCase{StateRepo: repo, Ledger: ledger, Now: func() time.Time { return time.Unix(43200, 0) }}
	resp, err := uc.Execute(context.Background(), Request{AssetID: "a"})
	require.NoError(t, err)

	require.NotNil(t, resp.Record)
	assert.Equal(t, "Axe", resp.Record.Name)
	assert.Equal(t, progression.AchievementApprentice, resp.AchievementTier)
	assert.True(t, resp.GoldenHour)

	required := int64(12*86400 - 2*3600)
	require.NotNil(t, resp.Evolution)
	assert.Equal(t, required, resp.Evolution.RequiredSeconds)
	assert.Equal(t, 1000+required, resp.Evolution.ReadyAt)
	assert.Equal(t, 1000+required-43200, resp.Evolution.RemainingSeconds)
	assert.Equal(t, int64(50), resp.Evolution.Chance)
	assert.Equal(t, progression.RarityLegendary, resp.Evolution.NextRarity)
}

func TestUseCase_MissingLedgerRecordIsNotAnError(t *testing.T) {
	repo := statusStateRepo{state: progression.ProgressionState{AssetID: "a", Level: 1, Rarity: progression.RarityCommon}}
	uc := UseCase{StateRepo: repo, Ledger: ledgermem.NewLedger(), Now: func() time.Time { return time.Unix(10*86400+3600, 0) }}

	resp, err := uc.Execute(context.Background(), Request{AssetID: "a"})
	require.NoError(t, err)
	assert.Nil(t, resp.Record)
	assert.False(t, resp.GoldenHour)
	require.NotNil(t, resp.Evolution)
	assert.Zero(t, resp.Evolution.RemainingSeconds)
}

func TestUseCase_OmitsEvolutionWindowThatCannotBeExpressed(t *testing.T) {
	repo := statusStateRepo{state: progression.ProgressionState{AssetID: "a", Level: math.MaxInt64, Rarity: progression.RarityCommon}}
	uc := UseCase{StateRepo: repo, Now: func() time.Time { return time.Unix(100, 0) }}

	resp, err := uc.Execute(context.Background(), Request{AssetID: "a"})
	require.NoError(t, err)
	assert.Nil(t, resp.Evolution)
	assert.Equal(t, progression.AchievementGrandmaster, resp.AchievementTier)
}

func TestUseCase_RejectsEmptyAssetID(t *testing.T) {
	uc := UseCase{}
	_, err := uc.Execute(context.Background(), Request{AssetID: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUseCase_PropagatesStateRepoError(t *testing.T) {
	uc := UseCase{StateRepo: statusStateRepo{err: ports.ErrNotFound}}
	_, err := uc.Execute(context.Background(), Request{AssetID: "a"})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUseCase_PropagatesLedgerError(t *testing.T) {
	wantErr := errors.New("ledger down")
	uc := UseCase{
		StateRepo: statusStateRepo{state: progression.ProgressionState{AssetID: "a", Rarity: progression.RarityCommon}},
		Ledger:    statusLedger{err: wantErr},
	}
	_, err := uc.Execute(context.Background(), Request{AssetID: "a"})
	assert.ErrorIs(t, err, wantErr)
}

type statusStateRepo struct {
	state progression.ProgressionState
	err   error
}

func (r statusStateRepo) GetByAssetID(_ context.Context, _ string) (progression.ProgressionState, error) {
	if r.err != nil {
		return progression.ProgressionState{}, r.err
	}
	return r.state, nil
}

func (r statusStateRepo) SaveWithVersion(_ context.Context, _ progression.ProgressionState, _ int64) error {
	return nil
}

type statusLedger struct {
	ports.AttributeLedger
	err error
}

func (l statusLedger) Get(_ context.Context, _ string) (ports.AssetRecord, error) {
	return ports.AssetRecord{}, l.err
}

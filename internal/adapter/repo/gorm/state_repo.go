package gormrepo

import (
	"context"
	"time"

	"nftforge/internal/adapter/repo/gorm/model"
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressionStateRepo struct {
	db *gorm.DB
}

func NewProgressionStateRepo(db *gorm.DB) ProgressionStateRepo {
	return ProgressionStateRepo{db: db}
}

// GetByAssetID locks the row when called inside a transaction so concurrent
// writers on the same asset queue behind each other.
func (r ProgressionStateRepo) GetByAssetID(ctx context.Context, assetID string) (progression.ProgressionState, error) {
	query := dbFor(ctx, r.db)
	if _, ok := txFromCtx(ctx); ok {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.ProgressionState
	if err := query.Where("state_key = ?", progression.StateKey(assetID)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.ProgressionState{}, ports.ErrNotFound
		}
		return progression.ProgressionState{}, err
	}
	return toDomainState(m), nil
}

func (r ProgressionStateRepo) SaveWithVersion(ctx context.Context, state progression.ProgressionState, expectedVersion int64) error {
	db := dbFor(ctx, r.db)
	if expectedVersion == 0 {
		m := toModelState(state)
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"level":              state.Level,
		"rarity":             string(state.Rarity),
		"last_update_time":   state.LastUpdateTime,
		"evolution_count":    state.EvolutionCount,
		"fusion_potential":   state.FusionPotential,
		"achievement_points": state.AchievementPoints,
		"version":            state.Version,
		"updated_at":         time.Now().UTC(),
	}

	res := db.Model(&model.ProgressionState{}).
		Where("state_key = ? AND version = ?", state.Key(), expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toModelState(s progression.ProgressionState) model.ProgressionState {
	return model.ProgressionState{
		StateKey:          s.Key(),
		AssetID:           s.AssetID,
		Level:             s.Level,
		Rarity:            string(s.Rarity),
		MintTime:          s.MintTime,
		LastUpdateTime:    s.LastUpdateTime,
		EvolutionCount:    s.EvolutionCount,
		FusionPotential:   s.FusionPotential,
		AchievementPoints: s.AchievementPoints,
		Version:           s.Version,
		UpdatedAt:         time.Now().UTC(),
	}
}

func toDomainState(m model.ProgressionState) progression.ProgressionState {
	return progression.ProgressionState{
		AssetID:           m.AssetID,
		Level:             m.Level,
		Rarity:            progression.Rarity(m.Rarity),
		MintTime:          m.MintTime,
		LastUpdateTime:    m.LastUpdateTime,
		EvolutionCount:    m.EvolutionCount,
		FusionPotential:   m.FusionPotential,
		AchievementPoints: m.AchievementPoints,
		Version:           m.Version,
	}
}

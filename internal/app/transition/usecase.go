package transition

import (
	"context"
	"slices"
	"strings"
	"time"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("invalid transition request")

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.ProgressionStateRepository
	Ledger    ports.AttributeLedger
	EventRepo ports.EventRepository
	Metrics   ports.TransitionMetrics
	Engine    progression.TransitionService
	Logger    *zap.Logger
	Now       func() time.Time
	NewID     func() string
}

func (u UseCase) Mint(ctx context.Context, req MintRequest) (Response, error) {
	req.AssetID = strings.TrimSpace(req.AssetID)
	req.Name = strings.TrimSpace(req.Name)
	rarity, ok := progression.ParseRarity(strings.TrimSpace(req.Rarity))
	if req.Name == "" || !ok || req.Level < 0 || req.FusionPotential < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.AssetID == "" {
		req.AssetID = u.newID()
	}
	now := u.now()

	var out Response
	err := u.run(ctx, progression.TransitionMint, req.AssetID, func(txCtx context.Context) error {
		_, err := u.StateRepo.GetByAssetID(txCtx, req.AssetID)
		if err == nil {
			return errors.Wrapf(ports.ErrConflict, "asset %s already minted", req.AssetID)
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return errors.Wrap(err, "load state")
		}

		result, err := u.Engine.Mint(progression.MintInput{
			AssetID:         req.AssetID,
			Level:           req.Level,
			Rarity:          rarity,
			FusionPotential: req.FusionPotential,
			Now:             now.Unix(),
		})
		if err != nil {
			return err
		}
		result.State.Version = 1
		if err := u.StateRepo.SaveWithVersion(txCtx, result.State, 0); err != nil {
			return errors.Wrap(err, "save state")
		}
		if err := u.appendEvent(txCtx, result, now); err != nil {
			return err
		}
		if err := u.Ledger.Create(txCtx, req.AssetID, req.Name, req.URI, result.Attributes); err != nil {
			return errors.Wrap(err, "ledger create")
		}
		out = toResponse(result)
		return nil
	})
	return out, err
}

func (u UseCase) Update(ctx context.Context, req UpdateRequest) (Response, error) {
	req.AssetID = strings.TrimSpace(req.AssetID)
	if req.AssetID == "" || req.NewLevel < 0 || req.MinTimeElapsed < 0 {
		return Response{}, ErrInvalidRequest
	}
	var newRarity *progression.Rarity
	if req.NewRarity != nil {
		r, ok := progression.ParseRarity(strings.TrimSpace(*req.NewRarity))
		if !ok {
			return Response{}, ErrInvalidRequest
		}
		newRarity = &r
	}
	now := u.now()

	var out Response
	err := u.run(ctx, progression.TransitionUpdate, req.AssetID, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetByAssetID(txCtx, req.AssetID)
		if err != nil {
			return errors.Wrap(err, "load state")
		}
		result, err := u.Engine.Update(state, progression.UpdateInput{
			NewLevel:       req.NewLevel,
			MinTimeElapsed: req.MinTimeElapsed,
			NewRarity:      newRarity,
			Now:            now.Unix(),
		})
		if err != nil {
			return err
		}
		if err := u.commit(txCtx, &result, state.Version, now); err != nil {
			return err
		}
		out = toResponse(result)
		return nil
	})
	return out, err
}

func (u UseCase) Evolve(ctx context.Context, req EvolveRequest) (Response, error) {
	req.AssetID = strings.TrimSpace(req.AssetID)
	if req.AssetID == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var out Response
	err := u.run(ctx, progression.TransitionEvolve, req.AssetID, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetByAssetID(txCtx, req.AssetID)
		if err != nil {
			return errors.Wrap(err, "load state")
		}
		result, err := u.Engine.Evolve(state, now.Unix())
		if err != nil {
			return err
		}
		if err := u.commit(txCtx, &result, state.Version, now); err != nil {
			return err
		}
		out = toResponse(result)
		return nil
	})
	return out, err
}

// Fuse reads both sources and writes a third, result asset. The result may
// not be one of the sources.
func (u UseCase) Fuse(ctx context.Context, req FuseRequest) (Response, error) {
	req.SourceAssetID = strings.TrimSpace(req.SourceAssetID)
	req.OtherAssetID = strings.TrimSpace(req.OtherAssetID)
	req.ResultAssetID = strings.TrimSpace(req.ResultAssetID)
	if req.SourceAssetID == "" || req.OtherAssetID == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.ResultAssetID == "" {
		req.ResultAssetID = u.newID()
	}
	// Fusing an asset with itself is a rule rejection raised by the engine.
	if req.SourceAssetID != req.OtherAssetID &&
		(req.ResultAssetID == req.SourceAssetID || req.ResultAssetID == req.OtherAssetID) {
		return Response{}, errors.Wrap(ErrInvalidRequest, "result asset must differ from the sources")
	}
	now := u.now()

	var out Response
	err := u.run(ctx, progression.TransitionFuse, req.ResultAssetID, func(txCtx context.Context) error {
		loaded, err := u.loadSorted(txCtx, req.SourceAssetID, req.OtherAssetID, req.ResultAssetID)
		if err != nil {
			return err
		}
		a, ok := loaded[req.SourceAssetID]
		if !ok {
			return errors.Wrapf(ports.ErrNotFound, "load source %s", req.SourceAssetID)
		}
		b, ok := loaded[req.OtherAssetID]
		if !ok {
			return errors.Wrapf(ports.ErrNotFound, "load source %s", req.OtherAssetID)
		}
		var existing *progression.ProgressionState
		if current, ok := loaded[req.ResultAssetID]; ok {
			existing = &current
		}

		result, err := u.Engine.Fuse(a, b, progression.FuseInput{
			ResultAssetID: req.ResultAssetID,
			Result:        existing,
			FusionType:    progression.FusionType(strings.TrimSpace(req.FusionType)),
			Now:           now.Unix(),
		})
		if err != nil {
			return err
		}
		var expectedVersion int64
		if existing != nil {
			expectedVersion = existing.Version
		}
		if err := u.commit(txCtx, &result, expectedVersion, now); err != nil {
			return err
		}
		out = toResponse(result)
		return nil
	})
	return out, err
}

// loadSorted reads each distinct asset in ascending id order, so row locks
// taken inside a transaction are always acquired in the same order. Missing
// assets are left out of the result.
func (u UseCase) loadSorted(ctx context.Context, assetIDs ...string) (map[string]progression.ProgressionState, error) {
	ids := slices.Clone(assetIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	loaded := make(map[string]progression.ProgressionState, len(ids))
	for _, id := range ids {
		state, err := u.StateRepo.GetByAssetID(ctx, id)
		switch {
		case err == nil:
			loaded[id] = state
		case errors.Is(err, ports.ErrNotFound):
		default:
			return nil, errors.Wrapf(err, "load state %s", id)
		}
	}
	return loaded, nil
}

// commit persists a non-mint transition: state, then the event, then the
// ledger. The ledger goes last because it may live outside the database
// transaction; any failure aborts the surrounding transaction.
func (u UseCase) commit(ctx context.Context, result *progression.TransitionResult, expectedVersion int64, now time.Time) error {
	result.State.Version = expectedVersion + 1
	if err := u.StateRepo.SaveWithVersion(ctx, result.State, expectedVersion); err != nil {
		return errors.Wrap(err, "save state")
	}
	if err := u.appendEvent(ctx, *result, now); err != nil {
		return err
	}
	if err := u.Ledger.Update(ctx, result.State.AssetID, result.Attributes); err != nil {
		return errors.Wrap(err, "ledger update")
	}
	return nil
}

func (u UseCase) appendEvent(ctx context.Context, result progression.TransitionResult, now time.Time) error {
	if u.EventRepo == nil {
		return nil
	}
	evt := ports.TransitionEvent{
		AssetID:    result.State.AssetID,
		Kind:       result.Kind,
		OccurredAt: now,
		Payload: map[string]any{
			"attributes":  result.Attributes.Map(),
			"state_after": stateAfter(result.State),
			"created":     result.Created,
		},
	}
	if err := u.EventRepo.Append(ctx, []ports.TransitionEvent{evt}); err != nil {
		return errors.Wrap(err, "append event")
	}
	return nil
}

func (u UseCase) run(ctx context.Context, kind progression.TransitionKind, assetID string, fn func(ctx context.Context) error) error {
	log := u.logger().With(zap.String("transition", string(kind)), zap.String("asset_id", assetID))

	err := u.TxManager.RunInTx(ctx, fn)
	if err == nil {
		if u.Metrics != nil {
			u.Metrics.RecordSuccess(kind)
		}
		log.Info("transition committed")
		return nil
	}

	switch reason := rejectionReason(err); {
	case reason != "":
		if u.Metrics != nil {
			u.Metrics.RecordRejected(kind, reason)
		}
		log.Debug("transition rejected", zap.String("reason", reason), zap.Error(err))
	case errors.Is(err, ports.ErrConflict):
		if u.Metrics != nil {
			u.Metrics.RecordConflict(kind)
		}
		log.Warn("transition conflict", zap.Error(err))
	default:
		if u.Metrics != nil {
			u.Metrics.RecordFailure(kind)
		}
		log.Error("transition failed", zap.Error(err))
	}
	return err
}

func rejectionReason(err error) string {
	if kind := progression.Kind(err); kind != "" {
		return kind
	}
	switch {
	case errors.Is(err, progression.ErrInvalidParams):
		return "invalid_params"
	case errors.Is(err, ports.ErrNotFound):
		return "not_found"
	default:
		return ""
	}
}

func stateAfter(s progression.ProgressionState) map[string]any {
	return map[string]any{
		"level":              s.Level,
		"rarity":             string(s.Rarity),
		"mint_time":          s.MintTime,
		"last_update_time":   s.LastUpdateTime,
		"evolution_count":    s.EvolutionCount,
		"fusion_potential":   s.FusionPotential,
		"achievement_points": s.AchievementPoints,
		"version":            s.Version,
	}
}

func toResponse(result progression.TransitionResult) Response {
	return Response{
		AssetID:    result.State.AssetID,
		Kind:       result.Kind,
		State:      result.State,
		Attributes: result.Attributes,
		Created:    result.Created,
	}
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now()
}

func (u UseCase) newID() string {
	if u.NewID == nil {
		return uuid.NewString()
	}
	return u.NewID()
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}

package httpadapter

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"nftforge/internal/app/history"
	"nftforge/internal/app/ports"
	"nftforge/internal/app/status"
	"nftforge/internal/app/transition"
	"nftforge/internal/domain/progression"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Handler struct {
	TransitionUC transition.UseCase
	StatusUC     status.UseCase
	HistoryUC    history.UseCase
	KPI          kpiSnapshotProvider
	Logger       *zap.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(), accessLog(h.Logger))

	assets := s.Group("/api/assets")
	assets.POST("/mint", h.mint)
	assets.POST("/fuse", h.fuse)
	assets.POST("/:asset_id/update", h.update)
	assets.POST("/:asset_id/evolve", h.evolve)
	assets.GET("/:asset_id", h.status)
	assets.GET("/:asset_id/history", h.history)

	s.GET("/ops/kpi", h.kpi)
}

type mintRequest struct {
	AssetID         string `json:"asset_id"`
	Name            string `json:"name"`
	URI             string `json:"uri"`
	Level           int64  `json:"level"`
	Rarity          string `json:"rarity"`
	FusionPotential int64  `json:"fusion_potential"`
}

type updateRequest struct {
	NewLevel       int64   `json:"new_level"`
	MinTimeElapsed int64   `json:"min_time_elapsed"`
	NewRarity      *string `json:"new_rarity,omitempty"`
}

type fuseRequest struct {
	SourceAssetID string `json:"source_asset_id"`
	OtherAssetID  string `json:"other_asset_id"`
	ResultAssetID string `json:"result_asset_id"`
	FusionType    string `json:"fusion_type"`
}

func (h Handler) mint(c context.Context, ctx *app.RequestContext) {
	var body mintRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TransitionUC.Mint(c, transition.MintRequest{
		AssetID:         body.AssetID,
		Name:            body.Name,
		URI:             body.URI,
		Level:           body.Level,
		Rarity:          body.Rarity,
		FusionPotential: body.FusionPotential,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) update(c context.Context, ctx *app.RequestContext) {
	var body updateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TransitionUC.Update(c, transition.UpdateRequest{
		AssetID:        ctx.Param("asset_id"),
		NewLevel:       body.NewLevel,
		MinTimeElapsed: body.MinTimeElapsed,
		NewRarity:      body.NewRarity,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) evolve(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TransitionUC.Evolve(c, transition.EvolveRequest{AssetID: ctx.Param("asset_id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) fuse(c context.Context, ctx *app.RequestContext) {
	var body fuseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TransitionUC.Fuse(c, transition.FuseRequest{
		SourceAssetID: body.SourceAssetID,
		OtherAssetID:  body.OtherAssetID,
		ResultAssetID: body.ResultAssetID,
		FusionType:    body.FusionType,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	code := consts.StatusOK
	if resp.Created {
		code = consts.StatusCreated
	}
	ctx.JSON(code, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{AssetID: ctx.Param("asset_id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	from, err := queryInt(ctx, "occurred_from")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_from must be unix seconds")
		return
	}
	to, err := queryInt(ctx, "occurred_to")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_to must be unix seconds")
		return
	}
	resp, err := h.HistoryUC.Execute(c, history.Request{
		AssetID:      ctx.Param("asset_id"),
		Limit:        int(limit),
		OccurredFrom: from,
		OccurredTo:   to,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int64, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func writeError(ctx *app.RequestContext, err error) {
	if code := progression.Kind(err); code != "" {
		writeErrorDetails(ctx, consts.StatusConflict, code, err.Error(), rejectionDetails(err))
		return
	}
	switch {
	case errors.Is(err, transition.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, progression.ErrInvalidParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func rejectionDetails(err error) map[string]any {
	var tooSoon *progression.UpdateTooSoonError
	if errors.As(err, &tooSoon) {
		return map[string]any{
			"available_at":      tooSoon.AvailableAt,
			"remaining_seconds": tooSoon.RemainingSeconds,
		}
	}
	var notReady *progression.EvolutionNotReadyError
	if errors.As(err, &notReady) {
		return map[string]any{
			"required_seconds":  notReady.RequiredSeconds,
			"remaining_seconds": notReady.RemainingSeconds,
		}
	}
	var failed *progression.EvolutionFailedError
	if errors.As(err, &failed) {
		return map[string]any{
			"roll":   failed.Roll,
			"chance": failed.Chance,
		}
	}
	return nil
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	writeErrorDetails(ctx, status, code, message, nil)
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	body := map[string]any{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	ctx.JSON(status, map[string]any{"error": body})
}

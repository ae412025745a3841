package gormrepo

import (
	"context"
	"encoding/json"

	"nftforge/internal/adapter/repo/gorm/model"
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []ports.TransitionEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.TransitionEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return errors.Wrap(err, "encode event payload")
		}
		rows = append(rows, model.TransitionEvent{
			AssetID:    e.AssetID,
			Kind:       string(e.Kind),
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return dbFor(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByAssetID(ctx context.Context, assetID string, limit int) ([]ports.TransitionEvent, error) {
	rows := []model.TransitionEvent{}
	query := dbFor(ctx, r.db).
		Where(&model.TransitionEvent{AssetID: assetID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.TransitionEvent, 0, len(rows))
	for _, row := range rows {
		evt, err := toPortEvent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, nil
}

func toPortEvent(row model.TransitionEvent) (ports.TransitionEvent, error) {
	var payload map[string]any
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return ports.TransitionEvent{}, errors.Wrapf(err, "decode payload of event %d", row.ID)
		}
	}
	return ports.TransitionEvent{
		AssetID:    row.AssetID,
		Kind:       progression.TransitionKind(row.Kind),
		OccurredAt: row.OccurredAt,
		Payload:    payload,
	}, nil
}

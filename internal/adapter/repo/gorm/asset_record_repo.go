package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"nftforge/internal/adapter/repo/gorm/model"
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetLedger is an AttributeLedger kept in the same database as the
// progression state, so a ledger write joins the transition's transaction.
type AssetLedger struct {
	db *gorm.DB
}

func NewAssetLedger(db *gorm.DB) AssetLedger {
	return AssetLedger{db: db}
}

func (l AssetLedger) Create(ctx context.Context, assetID, name, uri string, attrs progression.AttributeSet) error {
	b, err := encodeAttributes(attrs)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row := model.AssetRecord{
		AssetID:    assetID,
		Name:       name,
		URI:        uri,
		Attributes: b,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := dbFor(ctx, l.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (l AssetLedger) Update(ctx context.Context, assetID string, attrs progression.AttributeSet) error {
	b, err := encodeAttributes(attrs)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row := model.AssetRecord{
		AssetID:    assetID,
		Attributes: b,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return dbFor(ctx, l.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attributes", "updated_at"}),
	}).Create(&row).Error
}

func (l AssetLedger) Get(ctx context.Context, assetID string) (ports.AssetRecord, error) {
	var row model.AssetRecord
	if err := dbFor(ctx, l.db).Where(&model.AssetRecord{AssetID: assetID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AssetRecord{}, ports.ErrNotFound
		}
		return ports.AssetRecord{}, err
	}
	attrs := progression.AttributeSet{}
	if len(row.Attributes) > 0 {
		if err := json.Unmarshal(row.Attributes, &attrs); err != nil {
			return ports.AssetRecord{}, errors.Wrapf(err, "decode attributes of %s", assetID)
		}
	}
	return ports.AssetRecord{
		AssetID:    row.AssetID,
		Name:       row.Name,
		URI:        row.URI,
		Attributes: attrs,
	}, nil
}

func encodeAttributes(attrs progression.AttributeSet) ([]byte, error) {
	if attrs == nil {
		attrs = progression.AttributeSet{}
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, errors.Wrap(err, "encode attributes")
	}
	return b, nil
}

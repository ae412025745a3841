package redisledger

import (
	"context"
	"encoding/json"
	"time"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "nftforge:asset:"

type Options struct {
	Addr     string
	Password string
	DB       int
}

func Open(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", opts.Addr)
	}
	return client, nil
}

// Ledger keeps one JSON document per asset.
type Ledger struct {
	client goredis.UniversalClient
	prefix string
}

func NewLedger(client goredis.UniversalClient, prefix string) Ledger {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return Ledger{client: client, prefix: prefix}
}

func (l Ledger) key(assetID string) string {
	return l.prefix + assetID
}

func (l Ledger) Create(ctx context.Context, assetID, name, uri string, attrs progression.AttributeSet) error {
	b, err := encodeRecord(ports.AssetRecord{AssetID: assetID, Name: name, URI: uri, Attributes: attrs})
	if err != nil {
		return err
	}
	ok, err := l.client.SetNX(ctx, l.key(assetID), b, 0).Result()
	if err != nil {
		return errors.Wrapf(err, "create asset %s", assetID)
	}
	if !ok {
		return ports.ErrConflict
	}
	return nil
}

// Update swaps the attribute list under WATCH so name and uri written at
// creation survive concurrent writers.
func (l Ledger) Update(ctx context.Context, assetID string, attrs progression.AttributeSet) error {
	key := l.key(assetID)
	err := l.client.Watch(ctx, func(tx *goredis.Tx) error {
		rec := ports.AssetRecord{AssetID: assetID}
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if rec, err = decodeRecord(raw); err != nil {
				return err
			}
		case errors.Is(err, goredis.Nil):
		default:
			return err
		}
		rec.Attributes = attrs
		b, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return ports.ErrConflict
	}
	if err != nil {
		return errors.Wrapf(err, "update asset %s", assetID)
	}
	return nil
}

func (l Ledger) Get(ctx context.Context, assetID string) (ports.AssetRecord, error) {
	raw, err := l.client.Get(ctx, l.key(assetID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ports.AssetRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.AssetRecord{}, errors.Wrapf(err, "get asset %s", assetID)
	}
	return decodeRecord(raw)
}

func encodeRecord(rec ports.AssetRecord) ([]byte, error) {
	if rec.Attributes == nil {
		rec.Attributes = progression.AttributeSet{}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "encode asset record")
	}
	return b, nil
}

func decodeRecord(raw []byte) (ports.AssetRecord, error) {
	var rec ports.AssetRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ports.AssetRecord{}, errors.Wrap(err, "decode asset record")
	}
	return rec, nil
}

package redisledger

import (
	"context"
	"os"
	"testing"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireRedis(t *testing.T) Ledger {
	t.Helper()
	addr := os.Getenv("NFTFORGE_REDIS_ADDR")
	if addr == "" {
		t.Skip("NFTFORGE_REDIS_ADDR is required for integration test")
	}
	client, err := Open(context.Background(), Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewLedger(client, "nftforge-it:asset:")
}

func TestRecordCodec_PreservesAttributeOrder(t *testing.T) {
	rec := ports.AssetRecord{
		AssetID: "a",
		Name:    "Shield",
		URI:     "ipfs://shield",
		Attributes: progression.AttributeSet{
			{Key: "rarity", Value: "Rare"},
			{Key: "level", Value: "3"},
		},
	}
	b, err := encodeRecord(rec)
	require.NoError(t, err)
	got, err := decodeRecord(b)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	empty, err := encodeRecord(ports.AssetRecord{AssetID: "b"})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"attributes":[]`)
}

func TestNewLedger_DefaultPrefix(t *testing.T) {
	l := NewLedger(nil, "")
	assert.Equal(t, "nftforge:asset:a-1", l.key("a-1"))
}

func TestLedger_Integration_CreateUpdateGet(t *testing.T) {
	l := requireRedis(t)
	ctx := context.Background()
	assetID := "it-ledger-roundtrip"
	_ = l.client.Del(ctx, l.key(assetID)).Err()

	require.NoError(t, l.Create(ctx, assetID, "Bow", "ipfs://bow", progression.AttributeSet{{Key: "level", Value: "1"}}))
	assert.ErrorIs(t, l.Create(ctx, assetID, "Bow", "ipfs://bow", nil), ports.ErrConflict)

	require.NoError(t, l.Update(ctx, assetID, progression.AttributeSet{{Key: "level", Value: "2"}, {Key: "rarity", Value: "Epic"}}))
	rec, err := l.Get(ctx, assetID)
	require.NoError(t, err)
	assert.Equal(t, "Bow", rec.Name)
	assert.Equal(t, progression.AttributeSet{{Key: "level", Value: "2"}, {Key: "rarity", Value: "Epic"}}, rec.Attributes)

	_, err = l.Get(ctx, "it-ledger-missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

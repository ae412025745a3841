package gormrepo

import (
	"testing"
	"time"

	"nftforge/internal/adapter/repo/gorm/model"
	"nftforge/internal/domain/progression"

	"github.com/stretchr/testify/require"
)

func TestToPortEvent_DecodesPayload(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	evt, err := toPortEvent(model.TransitionEvent{
		ID: 7, AssetID: "a", Kind: "evolve", OccurredAt: at,
		Payload: []byte(`{"state_after":{"level":3}}`),
	})
	require.NoError(t, err)
	require.Equal(t, progression.TransitionEvolve, evt.Kind)
	require.Equal(t, at, evt.OccurredAt)
	require.Equal(t, map[string]any{"level": float64(3)}, evt.Payload["state_after"])
}

func TestToPortEvent_CorruptPayloadIsAnError(t *testing.T) {
	_, err := toPortEvent(model.TransitionEvent{ID: 7, AssetID: "a", Kind: "evolve", Payload: []byte(`{"state_after":`)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode payload of event 7")
}

package memory

import (
	"context"
	"sync"

	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type Ledger struct {
	mu      sync.RWMutex
	records map[string]ports.AssetRecord
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]ports.AssetRecord)}
}

func (l *Ledger) Create(_ context.Context, assetID, name, uri string, attrs progression.AttributeSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.records[assetID]; exists {
		return ports.ErrConflict
	}
	l.records[assetID] = ports.AssetRecord{
		AssetID:    assetID,
		Name:       name,
		URI:        uri,
		Attributes: cloneAttrs(attrs),
	}
	return nil
}

func (l *Ledger) Update(_ context.Context, assetID string, attrs progression.AttributeSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[assetID]
	rec.AssetID = assetID
	rec.Attributes = cloneAttrs(attrs)
	l.records[assetID] = rec
	return nil
}

func (l *Ledger) Get(_ context.Context, assetID string) (ports.AssetRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[assetID]
	if !ok {
		return ports.AssetRecord{}, ports.ErrNotFound
	}
	rec.Attributes = cloneAttrs(rec.Attributes)
	return rec, nil
}

func cloneAttrs(attrs progression.AttributeSet) progression.AttributeSet {
	if attrs == nil {
		return progression.AttributeSet{}
	}
	return append(progression.AttributeSet(nil), attrs...)
}

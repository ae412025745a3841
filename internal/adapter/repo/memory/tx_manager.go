package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serializes every transaction behind the store lock and restores the
// pre-transaction maps when fn fails.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

package ports

import "context"

// TxManager gives the host's single-writer guarantee: everything fn does
// commits together or not at all.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

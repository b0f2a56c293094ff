package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles atomic multi-store updates. The postgres
// implementation wraps fn in a database transaction; the in-memory
// implementation relies on copy-on-write stores and runs fn directly.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}

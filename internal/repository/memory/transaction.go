package memory

import (
	"context"

	"digitalium/internal/domain/repositories"
)

// TransactionManager is the in-memory stand-in for database transactions.
// The memory stores are copy-on-write, so each individual mutation is
// already atomic with respect to readers; multi-step flows rely on
// validating everything up front before the first write.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager.
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

// ExecTx runs fn directly.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

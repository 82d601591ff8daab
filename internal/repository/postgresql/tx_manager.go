package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/database"
)

// TxManager runs service-level units of work inside pgx transactions, with
// per-employee serialization via Postgres advisory locks.
type TxManager struct {
	db *database.DB
}

func NewTxManager(db *database.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, m.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}

// LockEmployee takes pg_advisory_xact_lock keyed on the employee id. Two
// concurrent apply/approve calls for the same employee cannot both pass the
// balance or overlap checks and jointly over-allocate; the second waits until
// the first commits. The lock releases automatically at transaction end.
func (m *TxManager) LockEmployee(ctx context.Context, employeeID string) error {
	tx, ok := ctx.Value("tx").(pgx.Tx)
	if !ok {
		return fmt.Errorf("employee lock requires an active transaction")
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("acquire employee lock: %w", err)
	}
	return nil
}

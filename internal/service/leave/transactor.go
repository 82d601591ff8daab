package leave

import "context"

// Transactor runs a validate-read-then-write sequence as one atomic unit
// against the record store.
type Transactor interface {
	// InTransaction runs fn inside a transaction; the context passed to fn
	// routes all repository calls through that transaction.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// LockEmployee serializes the current transaction against every other
	// mutating leave operation for the same employee. Must be called inside
	// InTransaction.
	LockEmployee(ctx context.Context, employeeID string) error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Transactor runs a unit of work inside a single database transaction.
type Transactor interface {
	// WithinTransaction executes fn in a transaction carried by the context passed to fn.
	// Repositories called with that context join the transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise. Nested calls join the
	// outer transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

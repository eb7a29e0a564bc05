package repositories

import "context"

// UnitOfWork executes a function within a transaction scope. Repositories
// called with the context passed to fn participate in the same transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

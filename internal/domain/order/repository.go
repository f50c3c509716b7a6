package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence.
//
// Save persists a new order; AppendStatus persists one status transition as
// an atomic append to the history log plus an update of the current status
// and tracking number, without rewriting the rest of the order. Listings
// return full result sets sorted by creation time descending.
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns all orders for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	// FindAll returns all orders, newest first
	FindAll(ctx context.Context) ([]*Order, error)

	// Save persists a newly created order together with its seeded history
	Save(ctx context.Context, o *Order) error

	// AppendStatus persists the latest status transition of the order:
	// the new history entry, the current status, the updated timestamp and,
	// when set, the tracking number
	AppendStatus(ctx context.Context, o *Order) error
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, error)

	// FindInStock finds all products currently marked in stock
	FindInStock(ctx context.Context) ([]*Product, error)

	// SearchByName finds products whose name contains the given term
	SearchByName(ctx context.Context, term string) ([]*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domain "github.com/medistore/backend/internal/domain/catalog"
)

// CreateProductInput contains the input for creating a product
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      string
}

// UpdateProductInput contains the input for updating a product
type UpdateProductInput struct {
	ProductID     uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      string
	InStock       bool
}

// ListInput contains the input for listing products
type ListInput struct {
	Search      string
	InStockOnly bool
}

// ProductView is the read model returned to callers
type ProductView struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	InStock         bool             `json:"in_stock"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toView(p *domain.Product) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(),
		ImageURL:        p.ImageURL,
		InStock:         p.InStock,
		CreatedAt:       p.CreatedAt,
	}
}

func toViews(products []*domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}

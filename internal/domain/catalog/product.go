package catalog

import (
	"strings"

	"github.com/medistore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a medicine in the storefront catalog
// It is the aggregate root for catalog-related operations
type Product struct {
	shared.BaseAggregateRoot
	Name          string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	ImageURL      string           `gorm:"type:varchar(500)"`
	InStock       bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, description string, price decimal.Decimal, imageURL string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price,
		ImageURL:          imageURL,
		InStock:           true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, imageURL string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.ImageURL = imageURL
	p.Touch()

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.Touch()

	return nil
}

// SetOriginalPrice sets the pre-discount list price.
// It must not be lower than the current selling price.
func (p *Product) SetOriginalPrice(original decimal.Decimal) error {
	if original.LessThan(p.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be lower than selling price")
	}

	p.OriginalPrice = &original
	p.Touch()

	return nil
}

// ClearOriginalPrice removes the list price so no discount is shown
func (p *Product) ClearOriginalPrice() {
	p.OriginalPrice = nil
	p.Touch()
}

// DiscountPercent returns the rounded discount percentage derived from the
// original price, or zero when no original price is set.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || p.OriginalPrice.IsZero() {
		return 0
	}
	diff := p.OriginalPrice.Sub(p.Price)
	pct := diff.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// MarkInStock marks the product as available
func (p *Product) MarkInStock() {
	if p.InStock {
		return
	}
	p.InStock = true
	p.Touch()
	p.AddDomainEvent(NewProductStockChangedEvent(p))
}

// MarkOutOfStock marks the product as unavailable.
// Carts holding the product keep their lines; stock gating is advisory.
func (p *Product) MarkOutOfStock() {
	if !p.InStock {
		return
	}
	p.InStock = false
	p.Touch()
	p.AddDomainEvent(NewProductStockChangedEvent(p))
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

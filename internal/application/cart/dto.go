package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domain "github.com/medistore/backend/internal/domain/cart"
)

// AddItemInput contains the input for adding a product to a cart
type AddItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// SetQuantityInput contains the input for setting a line quantity
type SetQuantityInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// RemoveItemInput contains the input for removing a line
type RemoveItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// CheckoutInput contains the input for converting a cart into an order
type CheckoutInput struct {
	UserID          uuid.UUID
	DeliveryAddress string
	Phone           string
}

// LineView is the read model for a single cart line
type LineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	ImageURL  string          `json:"image_url,omitempty"`
	InStock   bool            `json:"in_stock"`
}

// CartView is the read model for a whole cart
type CartView struct {
	Lines     []LineView      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// CheckoutResult is returned after a successful checkout
type CheckoutResult struct {
	OrderID     uuid.UUID       `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toLineViews(lines []domain.Line) []LineView {
	views := make([]LineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, LineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Amount:    l.Amount(),
			ImageURL:  l.ImageURL,
			InStock:   l.InStock,
		})
	}
	return views
}

func toCartView(c *domain.Cart) CartView {
	return CartView{
		Lines:     toLineViews(c.Lines()),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

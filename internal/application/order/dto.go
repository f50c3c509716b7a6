package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domain "github.com/medistore/backend/internal/domain/order"
)

// UpdateStatusInput contains the input for an admin status update
type UpdateStatusInput struct {
	OrderID        uuid.UUID
	Status         domain.Status
	Note           string
	UpdatedBy      string
	TrackingNumber string
}

// ItemView is the read model for a single order item
type ItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// HistoryEntryView is the read model for one status history entry
type HistoryEntryView struct {
	Status    domain.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Note      string        `json:"note"`
	UpdatedBy string        `json:"updated_by"`
}

// OrderView is the read model returned to callers
type OrderView struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	Items             []ItemView         `json:"items"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	Status            domain.Status      `json:"status"`
	DeliveryAddress   string             `json:"delivery_address"`
	Phone             string             `json:"phone"`
	TrackingNumber    *string            `json:"tracking_number,omitempty"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	StatusHistory     []HistoryEntryView `json:"status_history"`
	CreatedAt         time.Time          `json:"created_at"`
}

func toView(o *domain.Order) OrderView {
	items := make([]ItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
			ImageURL:  item.ImageURL,
		})
	}

	history := make([]HistoryEntryView, 0, len(o.StatusHistory))
	for _, entry := range o.StatusHistory {
		history = append(history, HistoryEntryView{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
			UpdatedBy: entry.UpdatedBy,
		})
	}

	return OrderView{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             items,
		TotalAmount:       o.TotalAmount,
		Status:            o.Status,
		DeliveryAddress:   o.DeliveryAddress,
		Phone:             o.Phone,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
		StatusHistory:     history,
		CreatedAt:         o.CreatedAt,
	}
}

func toViews(orders []*domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toView(o))
	}
	return views
}

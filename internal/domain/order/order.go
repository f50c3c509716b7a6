package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the current status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// DefaultUpdatedBy is recorded on history entries when no operator is given
const DefaultUpdatedBy = "system"

// estimatedDeliveryDays is added to the creation time to produce the
// customer-facing delivery estimate
const estimatedDeliveryDays = 6

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// AllStatuses returns every valid status in progression order
func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Item is a value-copied snapshot of a cart line taken at order creation.
// Later catalog changes never alter a placed order.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// Amount returns unit price multiplied by quantity
func (i Item) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusHistoryEntry is one entry in the append-only status log.
// Entries are immutable once appended.
type StatusHistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Order represents a committed purchase. It is the aggregate root for the
// order lifecycle: created once from a cart, mutated only through
// ApplyStatus, never deleted.
type Order struct {
	shared.BaseAggregateRoot
	UserID            uuid.UUID
	Items             []Item
	TotalAmount       decimal.Decimal
	Status            Status
	DeliveryAddress   string
	Phone             string
	TrackingNumber    *string
	EstimatedDelivery time.Time
	StatusHistory     []StatusHistoryEntry
}

// NewOrder creates an order from item snapshots. The total is computed here
// and never recomputed; status starts at pending with a seeded history entry.
func NewOrder(userID uuid.UUID, items []Item, deliveryAddress, phone string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if deliveryAddress == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
		}
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}

	now := time.Now()
	copied := make([]Item, len(items))
	copy(copied, items)

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             copied,
		TotalAmount:       total,
		Status:            StatusPending,
		DeliveryAddress:   deliveryAddress,
		Phone:             phone,
		EstimatedDelivery: now.AddDate(0, 0, estimatedDeliveryDays),
		StatusHistory: []StatusHistoryEntry{{
			Status:    StatusPending,
			Timestamp: now,
			Note:      "Order placed successfully",
		}},
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// ApplyStatus appends a new history entry and moves the order to the given
// status. Any status-to-status transition is accepted, including re-entering
// the current status or moving "backwards"; the admin workflow relies on this
// permissiveness. An empty note defaults to a generated message and an empty
// updatedBy defaults to "system". A non-empty tracking number also updates
// the order's tracking number.
func (o *Order) ApplyStatus(status Status, note, updatedBy, trackingNumber string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}

	if note == "" {
		note = fmt.Sprintf("Order status updated to %s", status)
	}
	if updatedBy == "" {
		updatedBy = DefaultUpdatedBy
	}

	now := time.Now()
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: now,
		Note:      note,
		UpdatedBy: updatedBy,
	})
	o.Status = status
	if trackingNumber != "" {
		o.TrackingNumber = &trackingNumber
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, note, updatedBy))

	return nil
}

// CurrentHistoryEntry returns the most recently appended history entry.
// The order invariant guarantees the history is never empty and that the
// last entry's status equals the order's current status.
func (o *Order) CurrentHistoryEntry() StatusHistoryEntry {
	return o.StatusHistory[len(o.StatusHistory)-1]
}

// ItemCount returns the sum of item quantities
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// IsDelivered returns true when the order reached its customary terminal state
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// IsCancelled returns true when the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// FilterByStatus partitions orders by status. The literal "all" and the
// empty string return the input unchanged.
func FilterByStatus(orders []*Order, status string) []*Order {
	if status == "all" || status == "" {
		return orders
	}
	filtered := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == Status(status) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

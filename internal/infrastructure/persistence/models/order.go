package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID            uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Items             []OrderItemModel          `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount       decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	Status            order.Status              `gorm:"type:varchar(20);not null;default:'pending';index"`
	DeliveryAddress   string                    `gorm:"type:text;not null"`
	Phone             string                    `gorm:"type:varchar(50);not null"`
	TrackingNumber    *string                   `gorm:"type:varchar(100)"`
	EstimatedDelivery time.Time                 `gorm:"not null"`
	StatusHistory     []OrderStatusHistoryModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
// History entries are assumed preloaded in position order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
		},
		UserID:            m.UserID,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		DeliveryAddress:   m.DeliveryAddress,
		Phone:             m.Phone,
		TrackingNumber:    m.TrackingNumber,
		EstimatedDelivery: m.EstimatedDelivery,
		Items:             make([]order.Item, len(m.Items)),
		StatusHistory:     make([]order.StatusHistoryEntry, len(m.StatusHistory)),
	}
	for i, item := range m.Items {
		o.Items[i] = item.ToDomain()
	}
	for i, entry := range m.StatusHistory {
		o.StatusHistory[i] = entry.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.DeliveryAddress = o.DeliveryAddress
	m.Phone = o.Phone
	m.TrackingNumber = o.TrackingNumber
	m.EstimatedDelivery = o.EstimatedDelivery
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(o.ID, item)
	}
	m.StatusHistory = make([]OrderStatusHistoryModel, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		m.StatusHistory[i] = *OrderStatusHistoryModelFromDomain(o.ID, i, entry)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line snapshot.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ProductID: m.ProductID,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		ImageURL:  m.ImageURL,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain order item.
func OrderItemModelFromDomain(orderID uuid.UUID, i order.Item) *OrderItemModel {
	return &OrderItemModel{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: i.ProductID,
		Name:      i.Name,
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
		ImageURL:  i.ImageURL,
	}
}

// OrderStatusHistoryModel is the persistence model for one entry in an
// order's append-only status log. Position preserves the append order even
// when two entries share a timestamp.
type OrderStatusHistoryModel struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_order_history_position,priority:1"`
	Position  int          `gorm:"not null;index:idx_order_history_position,priority:2"`
	Status    order.Status `gorm:"type:varchar(20);not null"`
	Timestamp time.Time    `gorm:"not null"`
	Note      string       `gorm:"type:text"`
	UpdatedBy string       `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (OrderStatusHistoryModel) TableName() string {
	return "order_status_history"
}

// ToDomain converts the persistence model to a domain history entry.
func (m *OrderStatusHistoryModel) ToDomain() order.StatusHistoryEntry {
	return order.StatusHistoryEntry{
		Status:    m.Status,
		Timestamp: m.Timestamp,
		Note:      m.Note,
		UpdatedBy: m.UpdatedBy,
	}
}

// OrderStatusHistoryModelFromDomain creates a persistence model from a domain history entry.
func OrderStatusHistoryModelFromDomain(orderID uuid.UUID, position int, e order.StatusHistoryEntry) *OrderStatusHistoryModel {
	return &OrderStatusHistoryModel{
		ID:        uuid.New(),
		OrderID:   orderID,
		Position:  position,
		Status:    e.Status,
		Timestamp: e.Timestamp,
		Note:      e.Note,
		UpdatedBy: e.UpdatedBy,
	}
}

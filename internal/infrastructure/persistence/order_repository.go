package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/medistore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM.
// An order spans three tables: orders, order_items and order_status_history.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items and history
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var m models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByUser returns all orders for a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	return r.findAll(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindAll returns all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx, r.db.WithContext(ctx))
}

func (r *GormOrderRepository) findAll(ctx context.Context, query *gorm.DB) ([]*order.Order, error) {
	var ms []models.OrderModel
	if err := query.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(ms))
	for i := range ms {
		orders[i] = ms[i].ToDomain()
	}
	return orders, nil
}

// Save persists a newly created order together with its items and seeded
// history in one transaction
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	m := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
}

// AppendStatus persists the latest status transition: it inserts the newest
// history entry and updates the order's current status, tracking number and
// updated timestamp. Earlier history rows and items are never rewritten.
func (r *GormOrderRepository) AppendStatus(ctx context.Context, o *order.Order) error {
	if len(o.StatusHistory) == 0 {
		return shared.NewDomainError("INVALID_ORDER", "Order has no status history")
	}
	position := len(o.StatusHistory) - 1
	entry := models.OrderStatusHistoryModelFromDomain(o.ID, position, o.StatusHistory[position])

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Updates(map[string]interface{}{
				"status":          o.Status,
				"tracking_number": o.TrackingNumber,
				"updated_at":      o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Create(entry).Error
	})
}

package order

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles order query and lifecycle operations
type Service struct {
	repo      domain.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new order service
func NewService(repo domain.Repository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns a single order. When requesterID is set, only the order's
// owner may read it; admins pass uuid.Nil to skip the ownership check.
func (s *Service) Get(ctx context.Context, orderID, requesterID uuid.UUID) (*OrderView, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	if requesterID != uuid.Nil && o.UserID != requesterID {
		return nil, shared.NewDomainError("FORBIDDEN", "Order belongs to another user")
	}

	view := toView(o)
	return &view, nil
}

// ListForUser returns the user's orders, newest first, optionally
// filtered by status. "all" or an empty status returns everything.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]OrderView, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}
	return toViews(domain.FilterByStatus(orders, status)), nil
}

// ListAll returns every order, newest first, optionally filtered by status
func (s *Service) ListAll(ctx context.Context, status string) ([]OrderView, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}
	return toViews(domain.FilterByStatus(orders, status)), nil
}

// UpdateStatus applies a status transition and appends it to the order's
// history. Concurrent updates resolve last-write-wins; both history
// entries survive because the append never rewrites existing rows.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderView, error) {
	o, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	if err := o.ApplyStatus(input.Status, input.Note, input.UpdatedBy, input.TrackingNumber); err != nil {
		return nil, err
	}

	if err := s.repo.AppendStatus(ctx, o); err != nil {
		s.logger.Error("Failed to persist status update",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order status")
	}

	for _, event := range o.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))

	view := toView(o)
	return &view, nil
}

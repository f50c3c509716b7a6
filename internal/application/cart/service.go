package cart

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/cart"
	"github.com/medistore/backend/internal/domain/catalog"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service exposes cart operations over the per-user cart store and
// translates a cart into an order at checkout
type Service struct {
	store       *domain.Store
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewService creates a new cart service
func NewService(
	store *domain.Store,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// View returns the current cart contents for a user
func (s *Service) View(userID uuid.UUID) CartView {
	return toCartView(s.store.Get(userID))
}

// AddItem looks the product up in the catalog and adds one unit of it.
// The cart keeps a snapshot of the product, not a reference.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (CartView, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return CartView{}, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	c := s.store.Get(input.UserID)
	c.AddItem(domain.ProductInfo{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  product.ImageURL,
		InStock:   product.InStock,
	})

	return toCartView(c), nil
}

// SetQuantity sets the quantity of a line; zero or less removes it
func (s *Service) SetQuantity(input SetQuantityInput) CartView {
	c := s.store.Get(input.UserID)
	c.SetQuantity(input.ProductID, input.Quantity)
	return toCartView(c)
}

// RemoveItem drops a line from the cart
func (s *Service) RemoveItem(input RemoveItemInput) CartView {
	c := s.store.Get(input.UserID)
	c.RemoveItem(input.ProductID)
	return toCartView(c)
}

// Clear empties the user's cart
func (s *Service) Clear(userID uuid.UUID) CartView {
	c := s.store.Get(userID)
	c.Clear()
	return toCartView(c)
}

// Subscribe attaches a listener to the user's cart
func (s *Service) Subscribe(userID uuid.UUID, listener domain.Listener) domain.UnsubscribeFunc {
	return s.store.Get(userID).Subscribe(listener)
}

// Checkout converts the user's cart into an order. The cart is cleared
// only after the order is persisted; any failure leaves it untouched.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	c := s.store.Get(input.UserID)

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
		})
	}

	o, err := order.NewOrder(input.UserID, items, input.DeliveryAddress, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save order at checkout",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create order")
	}

	for _, event := range o.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()

	c.Clear()

	s.logger.Info("Checkout completed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("total", o.TotalAmount.String()))

	return &CheckoutResult{
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
	}, nil
}

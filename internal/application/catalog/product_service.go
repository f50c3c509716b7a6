package catalog

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/catalog"
	"github.com/medistore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog browsing and admin product management
type ProductService struct {
	repo      domain.ProductRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repo domain.ProductRepository, publisher shared.EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns catalog products, optionally narrowed by search text or
// stock availability
func (s *ProductService) List(ctx context.Context, input ListInput) ([]ProductView, error) {
	var (
		products []*domain.Product
		err      error
	)

	switch {
	case input.Search != "":
		products, err = s.repo.SearchByName(ctx, input.Search)
	case input.InStockOnly:
		products, err = s.repo.FindInStock(ctx)
	default:
		products, err = s.repo.FindAll(ctx, shared.DefaultFilter())
	}

	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	return toViews(products), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	view := toView(p)
	return &view, nil
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	p, err := domain.NewProduct(input.Name, input.Description, input.Price, input.ImageURL)
	if err != nil {
		return nil, err
	}

	if input.OriginalPrice != nil {
		if err := p.SetOriginalPrice(*input.OriginalPrice); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.publishEvents(ctx, p)

	s.logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name))

	view := toView(p)
	return &view, nil
}

// Update replaces a product's details
func (s *ProductService) Update(ctx context.Context, input UpdateProductInput) (*ProductView, error) {
	p, err := s.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if err := p.Update(input.Name, input.Description, input.ImageURL); err != nil {
		return nil, err
	}
	if err := p.SetPrice(input.Price); err != nil {
		return nil, err
	}
	if input.OriginalPrice != nil {
		if err := p.SetOriginalPrice(*input.OriginalPrice); err != nil {
			return nil, err
		}
	} else {
		p.ClearOriginalPrice()
	}
	if input.InStock {
		p.MarkInStock()
	} else {
		p.MarkOutOfStock()
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.publishEvents(ctx, p)

	view := toView(p)
	return &view, nil
}

// Delete removes a product from the catalog. Existing cart lines and
// order items keep their snapshots.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, p *domain.Product) {
	for _, event := range p.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish product event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	p.ClearDomainEvents()
}

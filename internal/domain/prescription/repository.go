package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the prescription persistence interface
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Prescription, error)
	FindAll(ctx context.Context) ([]*Prescription, error)
	Save(ctx context.Context, p *Prescription) error
	Update(ctx context.Context, p *Prescription) error
}

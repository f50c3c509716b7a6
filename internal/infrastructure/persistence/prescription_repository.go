package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPrescriptionRepository implements prescription.Repository using GORM
type GormPrescriptionRepository struct {
	db *gorm.DB
}

// NewGormPrescriptionRepository creates a new GormPrescriptionRepository
func NewGormPrescriptionRepository(db *gorm.DB) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{db: db}
}

// FindByID finds a prescription by its ID
func (r *GormPrescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	var p prescription.Prescription
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUser returns all prescriptions uploaded by a user, newest first
func (r *GormPrescriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*prescription.Prescription, error) {
	var prescriptions []*prescription.Prescription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// FindAll returns all prescriptions, newest first
func (r *GormPrescriptionRepository) FindAll(ctx context.Context) ([]*prescription.Prescription, error) {
	var prescriptions []*prescription.Prescription
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// Save creates a prescription
func (r *GormPrescriptionRepository) Save(ctx context.Context, p *prescription.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update persists changes to an existing prescription
func (r *GormPrescriptionRepository) Update(ctx context.Context, p *prescription.Prescription) error {
	return r.db.WithContext(ctx).Save(p).Error
}

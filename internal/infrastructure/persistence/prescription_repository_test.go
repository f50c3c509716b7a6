package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPrescriptionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&prescription.Prescription{})
	require.NoError(t, err)

	return db
}

func TestGormPrescriptionRepository_SaveAndFindByID(t *testing.T) {
	db := setupPrescriptionTestDB(t)
	repo := NewGormPrescriptionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p, err := prescription.NewPrescription(userID, "https://cdn.example.com/rx.pdf", "rx.pdf", "1 Main St", "urgent")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, "rx.pdf", found.FileName)
	assert.Equal(t, prescription.StatusPending, found.Status)
}

func TestGormPrescriptionRepository_FindByUser(t *testing.T) {
	db := setupPrescriptionTestDB(t)
	repo := NewGormPrescriptionRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	first, err := prescription.NewPrescription(userID, "https://cdn.example.com/a.pdf", "a.pdf", "1 Main St", "")
	require.NoError(t, err)
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, first))

	second, err := prescription.NewPrescription(userID, "https://cdn.example.com/b.pdf", "b.pdf", "1 Main St", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	other, err := prescription.NewPrescription(uuid.New(), "https://cdn.example.com/c.pdf", "c.pdf", "2 Oak Ave", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	results, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b.pdf", results[0].FileName)
	assert.Equal(t, "a.pdf", results[1].FileName)
}

func TestGormPrescriptionRepository_Update(t *testing.T) {
	db := setupPrescriptionTestDB(t)
	repo := NewGormPrescriptionRepository(db)
	ctx := context.Background()

	p, err := prescription.NewPrescription(uuid.New(), "https://cdn.example.com/rx.pdf", "rx.pdf", "1 Main St", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, p.UpdateStatus(prescription.StatusApproved, "verified by pharmacist"))
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, prescription.StatusApproved, found.Status)
	assert.Equal(t, "verified by pharmacist", found.Notes)
}

func TestGormPrescriptionRepository_FindByID_NotFound(t *testing.T) {
	db := setupPrescriptionTestDB(t)
	repo := NewGormPrescriptionRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/identity"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{})
	require.NoError(t, err)

	return db
}

func TestGormUserRepository_SaveAndFindByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "Alice", found.FullName)

	// Lookup is case-insensitive because emails are stored lowercased
	found, err = repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("bob@example.com", "password123", "Bob")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	exists, err := repo.ExistsByEmail(ctx, "BOB@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_Update(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("carol@example.com", "password123", "Carol")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	require.NoError(t, u.UpdateProfile("Carol Jones", "555-0100", "1 Main St"))
	require.NoError(t, repo.Update(ctx, u))

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol Jones", found.FullName)
	assert.Equal(t, "555-0100", found.Phone)
}

func TestGormUserRepository_FindByID_NotFound(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/medistore/backend/internal/application/cart"
	catalogapp "github.com/medistore/backend/internal/application/catalog"
	identityapp "github.com/medistore/backend/internal/application/identity"
	orderapp "github.com/medistore/backend/internal/application/order"
	prescriptionapp "github.com/medistore/backend/internal/application/prescription"
	cartdomain "github.com/medistore/backend/internal/domain/cart"
	"github.com/medistore/backend/internal/domain/catalog"
	"github.com/medistore/backend/internal/domain/identity"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/medistore/backend/internal/infrastructure/auth"
	"github.com/medistore/backend/internal/infrastructure/config"
	"github.com/medistore/backend/internal/infrastructure/storage"
	"github.com/medistore/backend/internal/interfaces/http/handler"
	"github.com/medistore/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePublisher struct{}

func (fakePublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }

type fakeProductRepo struct{}

func (fakeProductRepo) FindByID(context.Context, uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (fakeProductRepo) FindAll(context.Context, shared.Filter) ([]*catalog.Product, error) {
	return nil, nil
}
func (fakeProductRepo) FindInStock(context.Context) ([]*catalog.Product, error) { return nil, nil }
func (fakeProductRepo) SearchByName(context.Context, string) ([]*catalog.Product, error) {
	return nil, nil
}
func (fakeProductRepo) Save(context.Context, *catalog.Product) error { return nil }
func (fakeProductRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeOrderRepo struct{}

func (fakeOrderRepo) FindByID(context.Context, uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (fakeOrderRepo) FindByUser(context.Context, uuid.UUID) ([]*order.Order, error) { return nil, nil }
func (fakeOrderRepo) FindAll(context.Context) ([]*order.Order, error) { return nil, nil }
func (fakeOrderRepo) Save(context.Context, *order.Order) error { return nil }
func (fakeOrderRepo) AppendStatus(context.Context, *order.Order) error { return nil }

type fakePrescriptionRepo struct{}

func (fakePrescriptionRepo) FindByID(context.Context, uuid.UUID) (*prescription.Prescription, error) {
	return nil, shared.ErrNotFound
}
func (fakePrescriptionRepo) FindByUser(context.Context, uuid.UUID) ([]*prescription.Prescription, error) {
	return nil, nil
}
func (fakePrescriptionRepo) FindAll(context.Context) ([]*prescription.Prescription, error) {
	return nil, nil
}
func (fakePrescriptionRepo) Save(context.Context, *prescription.Prescription) error { return nil }
func (fakePrescriptionRepo) Update(context.Context, *prescription.Prescription) error { return nil }

type fakeUserRepo struct{}

func (fakeUserRepo) FindByID(context.Context, uuid.UUID) (*identity.User, error) {
	return nil, shared.ErrNotFound
}
func (fakeUserRepo) FindByEmail(context.Context, string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}
func (fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (fakeUserRepo) Save(context.Context, *identity.User) error { return nil }
func (fakeUserRepo) Update(context.Context, *identity.User) error { return nil }

func newTestEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "medistore-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	log := zap.NewNop()
	publisher := fakePublisher{}

	authService := identityapp.NewAuthService(fakeUserRepo{}, jwtService, blacklist, publisher, log)
	productService := catalogapp.NewProductService(fakeProductRepo{}, publisher, log)
	cartService := cartapp.NewService(cartdomain.NewStore(), fakeProductRepo{}, fakeOrderRepo{}, publisher, log)
	orderService := orderapp.NewService(fakeOrderRepo{}, publisher, log)
	prescriptionService := prescriptionapp.NewService(fakePrescriptionRepo{}, fakeUserRepo{}, storage.NewInMemoryObjectStorage(), publisher, log)

	engine := gin.New()
	Setup(engine, Config{
		AuthHandler:         handler.NewAuthHandler(authService),
		ProductHandler:      handler.NewProductHandler(productService),
		CartHandler:         handler.NewCartHandler(cartService, log),
		OrderHandler:        handler.NewOrderHandler(orderService),
		PrescriptionHandler: handler.NewPrescriptionHandler(prescriptionService),
		JWTService:          jwtService,
		TokenBlacklist:      blacklist,
		Logger:              log,
		CORS:                middleware.DefaultCORSConfig(),
		MaxBodyBytes:        8 << 20,
	})
	return engine, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "someone@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, path := range []string{"/health", "/api/v1/health", "/api/v1/products"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/orders", "/api/v1/prescriptions", "/api/v1/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_AdminRoutesRejectCustomers(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := tokenFor(t, jwtService, "user")

	for _, path := range []string{"/api/v1/admin/orders", "/api/v1/admin/prescriptions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestRouter_AdminRoutesAllowAdmins(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := tokenFor(t, jwtService, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthenticatedCartAccess(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := tokenFor(t, jwtService, "user")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

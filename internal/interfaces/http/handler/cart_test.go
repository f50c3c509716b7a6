package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/medistore/backend/internal/application/cart"
	cartdomain "github.com/medistore/backend/internal/domain/cart"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/shared"
)

// MockOrderRepository implements order.Repository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendStatus(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type cartTestEnv struct {
	router      *gin.Engine
	userID      uuid.UUID
	productRepo *MockProductRepository
	orderRepo   *MockOrderRepository
	service     *cartapp.Service
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()

	productRepo := &MockProductRepository{}
	orderRepo := &MockOrderRepository{}
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	service := cartapp.NewService(cartdomain.NewStore(), productRepo, orderRepo, publisher, zap.NewNop())
	h := NewCartHandler(service, zap.NewNop())

	userID := uuid.New()
	router := gin.New()
	router.Use(withTestUser(userID, "user"))
	router.GET("/cart", h.Get)
	router.GET("/cart/stream", h.Stream)
	router.POST("/cart/items", h.AddItem)
	router.PUT("/cart/items/:id", h.SetQuantity)
	router.DELETE("/cart/items/:id", h.RemoveItem)
	router.DELETE("/cart", h.Clear)
	router.POST("/cart/checkout", h.Checkout)

	return &cartTestEnv{
		router:      router,
		userID:      userID,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		service:     service,
	}
}

func (env *cartTestEnv) addProduct(t *testing.T, name string) uuid.UUID {
	t.Helper()
	p := testProduct(t, name)
	env.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	body, _ := json.Marshal(AddCartItemRequest{ProductID: p.ID.String()})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	return p.ID
}

func decodeCartView(t *testing.T, body []byte) cartapp.CartView {
	t.Helper()
	var resp struct {
		Data cartapp.CartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestCartHandler_Get_Empty(t *testing.T) {
	env := newCartTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec.Body.Bytes())
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.ItemCount)
}

func TestCartHandler_AddItem(t *testing.T) {
	env := newCartTestEnv(t)
	env.addProduct(t, "Aspirin")

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	view := decodeCartView(t, rec.Body.Bytes())
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Aspirin", view.Lines[0].Name)
	assert.Equal(t, 1, view.Lines[0].Quantity)
	assert.Equal(t, 1, view.ItemCount)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	env := newCartTestEnv(t)
	env.productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(AddCartItemRequest{ProductID: uuid.NewString()})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestCartHandler_SetQuantity(t *testing.T) {
	env := newCartTestEnv(t)
	productID := env.addProduct(t, "Aspirin")

	body := []byte(`{"quantity": 3}`)
	req := httptest.NewRequest(http.MethodPut, "/cart/items/"+productID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec.Body.Bytes())
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, "30", view.Total.String())
}

func TestCartHandler_SetQuantityZeroRemovesLine(t *testing.T) {
	env := newCartTestEnv(t)
	productID := env.addProduct(t, "Aspirin")

	body := []byte(`{"quantity": 0}`)
	req := httptest.NewRequest(http.MethodPut, "/cart/items/"+productID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec.Body.Bytes())
	assert.Empty(t, view.Lines)
}

func TestCartHandler_SetQuantityMissingField(t *testing.T) {
	env := newCartTestEnv(t)
	productID := env.addProduct(t, "Aspirin")

	req := httptest.NewRequest(http.MethodPut, "/cart/items/"+productID.String(), bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	env := newCartTestEnv(t)
	productID := env.addProduct(t, "Aspirin")

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec.Body.Bytes())
	assert.Empty(t, view.Lines)
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	env := newCartTestEnv(t)

	body, _ := json.Marshal(CheckoutRequest{
		DeliveryAddress: "12 Main Street",
		Phone:           "555-0100",
	})
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_EMPTY_CART")
}

func TestCartHandler_Checkout(t *testing.T) {
	env := newCartTestEnv(t)
	env.addProduct(t, "Aspirin")
	env.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(CheckoutRequest{
		DeliveryAddress: "12 Main Street",
		Phone:           "555-0100",
	})
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data cartapp.CheckoutResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.Data.OrderID)
	assert.Equal(t, "10", resp.Data.TotalAmount.String())

	// checkout clears the cart
	assert.Equal(t, 0, env.service.View(env.userID).ItemCount)
	env.orderRepo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartHandler_Stream_InitialSnapshot(t *testing.T) {
	env := newCartTestEnv(t)
	env.addProduct(t, "Aspirin")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/cart/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		env.router.ServeHTTP(rec, req)
		close(done)
	}()

	// the initial snapshot is written immediately; cancel shortly after
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not stop after context cancellation")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: cart")
	assert.Contains(t, body, "Aspirin")
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/medistore/backend/internal/application/cart"
	cartdomain "github.com/medistore/backend/internal/domain/cart"
	"github.com/medistore/backend/internal/interfaces/http/dto"
)

// AddCartItemRequest represents the request body for adding a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// SetCartQuantityRequest represents the request body for setting a line quantity.
// Quantity is a pointer so that an explicit zero is distinguishable from a
// missing field; zero or less removes the line.
type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CheckoutRequest represents the request body for checking out the cart
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required,max=255"`
	Phone           string `json:"phone" binding:"required,max=30"`
}

// CartHandler handles shopping cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
	logger      *zap.Logger
	heartbeat   time.Duration
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cartapp.Service, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
		heartbeat:   30 * time.Second,
	}
}

// Get returns the authenticated user's cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, h.cartService.View(userID))
}

// AddItem adds one unit of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), cartapp.AddItemInput{
		UserID:    userID,
		ProductID: uuid.MustParse(req.ProductID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// SetQuantity sets the quantity of a cart line. Zero or less removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view := h.cartService.SetQuantity(cartapp.SetQuantityInput{
		UserID:    userID,
		ProductID: uuid.MustParse(uriReq.ID),
		Quantity:  *req.Quantity,
	})

	h.Success(c, view)
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view := h.cartService.RemoveItem(cartapp.RemoveItemInput{
		UserID:    userID,
		ProductID: uuid.MustParse(uriReq.ID),
	})

	h.Success(c, view)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, h.cartService.Clear(userID))
}

// Checkout converts the cart into an order and clears it on success
func (h *CartHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.Checkout(c.Request.Context(), cartapp.CheckoutInput{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Stream pushes the user's cart state over Server-Sent Events. The connection
// receives the current snapshot immediately, then a "cart" event after every
// mutation, with comment heartbeats to keep intermediaries from closing the
// stream.
func (h *CartHandler) Stream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.InternalError(c, "Streaming not supported")
		return
	}

	// The server-wide WriteTimeout would cut a long-lived stream; lift it
	// for this response. Unsupported writers keep the server cap.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("write deadline not adjustable for cart stream", zap.Error(err))
	}

	// Buffered so a slow client drops intermediate snapshots instead of
	// blocking cart mutations.
	updates := make(chan cartapp.CartView, 8)
	unsubscribe := h.cartService.Subscribe(userID, func(_ []cartdomain.Line) {
		select {
		case updates <- h.cartService.View(userID):
		default:
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	if err := writeCartEvent(c, h.cartService.View(userID)); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case view := <-updates:
			if err := writeCartEvent(c, view); err != nil {
				h.logger.Debug("cart stream write failed, closing",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeCartEvent(c *gin.Context, view cartapp.CartView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Writer, "event: cart\ndata: %s\n\n", payload)
	return err
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/medistore/backend/internal/application/order"
	orderdomain "github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/interfaces/http/dto"
	"github.com/medistore/backend/internal/interfaces/http/middleware"
)

// UpdateOrderStatusRequest represents the request body for an order status update
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	Note           string `json:"note" binding:"max=500"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}

// ListOrdersQuery represents the query parameters for listing orders
type ListOrdersQuery struct {
	Status string `form:"status"`
}

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// ListMine returns the authenticated user's orders, newest first
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, err := h.orderService.ListForUser(c.Request.Context(), userID, query.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Get returns a single order. Non-admin callers can only read their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	requesterID := userID
	if middleware.GetJWTRole(c) == "admin" {
		// Admins may read any order; the service skips the ownership check
		// for the nil requester.
		requesterID = uuid.Nil
	}

	order, err := h.orderService.Get(c.Request.Context(), uuid.MustParse(req.ID), requesterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns every order, newest first. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	var query ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, err := h.orderService.ListAll(c.Request.Context(), query.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// UpdateStatus transitions an order and appends a history entry. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	updatedBy := middleware.GetJWTUserID(c)

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderapp.UpdateStatusInput{
		OrderID:        uuid.MustParse(uriReq.ID),
		Status:         orderdomain.Status(req.Status),
		Note:           req.Note,
		UpdatedBy:      updatedBy,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	prescriptionapp "github.com/medistore/backend/internal/application/prescription"
	prescriptiondomain "github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/interfaces/http/dto"
)

// UpdatePrescriptionStatusRequest represents the request body for a review decision
type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
	Notes  string `json:"notes" binding:"max=500"`
}

// PrescriptionHandler handles prescription upload and review HTTP requests
type PrescriptionHandler struct {
	BaseHandler
	prescriptionService *prescriptionapp.Service
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptionService *prescriptionapp.Service) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
	}
}

// Upload accepts a multipart prescription upload. Expected form fields:
// "file" (required), "delivery_address" and "notes" (optional).
func (h *PrescriptionHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	// Size and content type are validated by the service before anything is
	// written, but reject obviously oversized uploads before buffering.
	if header.Size > prescriptiondomain.MaxFileSize {
		h.ErrorWithCode(c, dto.ErrCodeFileTooLarge, "File size must be less than 5MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}

	view, err := h.prescriptionService.Upload(c.Request.Context(), prescriptionapp.UploadInput{
		UserID:          userID,
		FileName:        header.Filename,
		ContentType:     header.Header.Get("Content-Type"),
		Size:            header.Size,
		Data:            data,
		DeliveryAddress: c.PostForm("delivery_address"),
		Notes:           c.PostForm("notes"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// ListMine returns the authenticated user's prescriptions, newest first
func (h *PrescriptionHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	prescriptions, err := h.prescriptionService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prescriptions)
}

// ListAll returns every prescription, newest first. Admin only.
func (h *PrescriptionHandler) ListAll(c *gin.Context) {
	prescriptions, err := h.prescriptionService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prescriptions)
}

// UpdateStatus records an admin review decision. Admin only.
func (h *PrescriptionHandler) UpdateStatus(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid prescription ID")
		return
	}

	var req UpdatePrescriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.prescriptionService.UpdateStatus(c.Request.Context(), prescriptionapp.UpdateStatusInput{
		PrescriptionID: uuid.MustParse(uriReq.ID),
		Status:         prescriptiondomain.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

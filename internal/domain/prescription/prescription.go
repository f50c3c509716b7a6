package prescription

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/shared"
)

// Status represents the review status of an uploaded prescription
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Upload constraints enforced before any storage or persistence write
const (
	// MaxFileSize is the upload size ceiling in bytes (5 MiB)
	MaxFileSize = 5 * 1024 * 1024
)

// AllowedContentTypes lists the accepted upload content types
var AllowedContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"application/pdf": {},
}

// ValidateUpload checks file size and content type ahead of the storage
// call. Violations surface immediately; nothing is written.
func ValidateUpload(size int64, contentType string) error {
	if size <= 0 {
		return shared.NewDomainError("INVALID_FILE", "File is empty")
	}
	if size > MaxFileSize {
		return shared.NewDomainError("FILE_TOO_LARGE", "File size exceeds 5MB limit")
	}
	if _, ok := AllowedContentTypes[contentType]; !ok {
		return shared.NewDomainError("INVALID_FILE_TYPE", "Only JPG, PNG, and PDF files are allowed")
	}
	return nil
}

// Prescription represents an uploaded prescription awaiting review.
// The file itself lives in object storage; this aggregate records its
// location and the admin review state.
type Prescription struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	FileURL         string    `gorm:"type:varchar(500);not null"`
	FileName        string    `gorm:"type:varchar(255);not null"`
	Status          Status    `gorm:"type:varchar(20);not null;default:'pending'"`
	DeliveryAddress string    `gorm:"type:text"`
	Notes           string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Prescription) TableName() string {
	return "prescriptions"
}

// NewPrescription creates a prescription record for an already-stored file
func NewPrescription(userID uuid.UUID, fileURL, fileName, deliveryAddress, notes string) (*Prescription, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if fileURL == "" {
		return nil, shared.NewDomainError("INVALID_FILE_URL", "File URL cannot be empty")
	}
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}

	p := &Prescription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		FileURL:           fileURL,
		FileName:          fileName,
		Status:            StatusPending,
		DeliveryAddress:   deliveryAddress,
		Notes:             notes,
	}

	p.AddDomainEvent(NewPrescriptionUploadedEvent(p))

	return p, nil
}

// UpdateStatus moves the prescription to a new review status and replaces
// the reviewer notes
func (p *Prescription) UpdateStatus(status Status, notes string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown prescription status %q", status))
	}

	p.Status = status
	p.Notes = notes
	p.Touch()

	return nil
}

// IsPending returns true while the prescription awaits review
func (p *Prescription) IsPending() bool {
	return p.Status == StatusPending
}

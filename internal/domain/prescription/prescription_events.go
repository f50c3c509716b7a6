package prescription

import (
	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/shared"
)

const (
	EventTypePrescriptionUploaded      = "PrescriptionUploaded"
	EventTypePrescriptionStatusChanged = "PrescriptionStatusChanged"
)

// PrescriptionUploadedEvent fires once a prescription file is stored and
// its record persisted. The notification handler listens for it.
type PrescriptionUploadedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	FileURL  string    `json:"file_url"`
	FileName string    `json:"file_name"`
}

// NewPrescriptionUploadedEvent creates a prescription uploaded event
func NewPrescriptionUploadedEvent(p *Prescription) *PrescriptionUploadedEvent {
	return &PrescriptionUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePrescriptionUploaded, "Prescription", p.GetID()),
		UserID:          p.UserID,
		FileURL:         p.FileURL,
		FileName:        p.FileName,
	}
}

// PrescriptionStatusChangedEvent fires when an admin review changes the
// prescription status
type PrescriptionStatusChangedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewPrescriptionStatusChangedEvent creates a prescription status changed event
func NewPrescriptionStatusChangedEvent(p *Prescription, oldStatus Status) *PrescriptionStatusChangedEvent {
	return &PrescriptionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePrescriptionStatusChanged, "Prescription", p.GetID()),
		UserID:          p.UserID,
		OldStatus:       oldStatus,
		NewStatus:       p.Status,
	}
}

package prescription

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/prescription"
)

// UploadInput contains the input for a prescription upload
type UploadInput struct {
	UserID          uuid.UUID
	FileName        string
	ContentType     string
	Size            int64
	Data            []byte
	DeliveryAddress string
	Notes           string
}

// UpdateStatusInput contains the input for an admin review decision
type UpdateStatusInput struct {
	PrescriptionID uuid.UUID
	Status         domain.Status
	Notes          string
}

// PrescriptionView is the read model returned to callers
type PrescriptionView struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	FileURL         string        `json:"file_url"`
	FileName        string        `json:"file_name"`
	Status          domain.Status `json:"status"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	UploaderName    string        `json:"uploader_name,omitempty"`
	UploaderEmail   string        `json:"uploader_email,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func toView(p *domain.Prescription) PrescriptionView {
	return PrescriptionView{
		ID:              p.ID,
		UserID:          p.UserID,
		FileURL:         p.FileURL,
		FileName:        p.FileName,
		Status:          p.Status,
		DeliveryAddress: p.DeliveryAddress,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toViews(prescriptions []*domain.Prescription) []PrescriptionView {
	views := make([]PrescriptionView, 0, len(prescriptions))
	for _, p := range prescriptions {
		views = append(views, toView(p))
	}
	return views
}

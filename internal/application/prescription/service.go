package prescription

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/domain/identity"
	domain "github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles prescription upload and review operations
type Service struct {
	repo      domain.Repository
	userRepo  identity.UserRepository
	storage   ObjectStorageService
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new prescription service
func NewService(
	repo domain.Repository,
	userRepo identity.UserRepository,
	storage ObjectStorageService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
	}
}

// Upload validates the file, stores it, and persists the prescription
// record. Validation failures surface before any write happens.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*PrescriptionView, error) {
	if input.UserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := domain.ValidateUpload(input.Size, input.ContentType); err != nil {
		return nil, err
	}

	storageKey := buildStorageKey(input.UserID, input.FileName)
	if err := s.storage.Upload(ctx, storageKey, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload prescription file",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store prescription file")
	}

	fileURL := s.storage.PublicURL(storageKey)

	p, err := domain.NewPrescription(input.UserID, fileURL, input.FileName, input.DeliveryAddress, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save prescription record",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save prescription")
	}

	s.publishEvents(ctx, p)

	s.logger.Info("Prescription uploaded",
		zap.String("prescription_id", p.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("file_name", input.FileName))

	view := toView(p)
	return &view, nil
}

// ListForUser returns the user's prescriptions, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]PrescriptionView, error) {
	prescriptions, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list prescriptions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list prescriptions")
	}
	return toViews(prescriptions), nil
}

// ListAll returns every prescription, newest first, with uploader
// name and email resolved for the admin console. A failed user lookup
// leaves the uploader fields blank rather than failing the listing.
func (s *Service) ListAll(ctx context.Context) ([]PrescriptionView, error) {
	prescriptions, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list prescriptions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list prescriptions")
	}

	views := toViews(prescriptions)
	uploaders := make(map[uuid.UUID]*identity.User)
	for i := range views {
		user, ok := uploaders[views[i].UserID]
		if !ok {
			user, err = s.userRepo.FindByID(ctx, views[i].UserID)
			if err != nil {
				s.logger.Warn("Failed to resolve prescription uploader",
					zap.String("user_id", views[i].UserID.String()),
					zap.Error(err))
			}
			uploaders[views[i].UserID] = user
		}
		if user != nil {
			views[i].UploaderName = user.FullName
			views[i].UploaderEmail = user.Email
		}
	}
	return views, nil
}

// UpdateStatus applies an admin review decision
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*PrescriptionView, error) {
	p, err := s.repo.FindByID(ctx, input.PrescriptionID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Prescription not found")
	}

	oldStatus := p.Status
	if err := p.UpdateStatus(input.Status, input.Notes); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update prescription",
			zap.String("prescription_id", p.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update prescription")
	}

	p.AddDomainEvent(domain.NewPrescriptionStatusChangedEvent(p, oldStatus))
	s.publishEvents(ctx, p)

	s.logger.Info("Prescription status updated",
		zap.String("prescription_id", p.ID.String()),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(p.Status)))

	view := toView(p)
	return &view, nil
}

func (s *Service) publishEvents(ctx context.Context, p *domain.Prescription) {
	for _, event := range p.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish prescription event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	p.ClearDomainEvents()
}

// buildStorageKey produces a collision-free object key scoped by user
func buildStorageKey(userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("prescriptions/%s/%s%s", userID, uuid.New(), ext)
}

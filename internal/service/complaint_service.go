package service

import (
	"context"
	"fmt"
	"time"

	"waterbilling/internal/broker"
	"waterbilling/internal/models"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComplaintService handles customer complaint tickets
type ComplaintService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(store *store.Store, eventPublisher *broker.EventPublisher) *ComplaintService {
	return &ComplaintService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateComplaintRequest represents a request to file a complaint
type CreateComplaintRequest struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
}

// UpdateComplaintRequest represents a partial complaint update
type UpdateComplaintRequest struct {
	ID          string  `json:"id" binding:"required"`
	CustomerID  *string `json:"customer_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	Resolution  *string `json:"resolution"`
}

// ListComplaints retrieves all complaints, newest first
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.store.GetComplaints(ctx)
}

// GetComplaint retrieves a complaint by ID
func (s *ComplaintService) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	return s.store.GetComplaintByID(ctx, id)
}

// CreateComplaint files a new complaint
func (s *ComplaintService) CreateComplaint(ctx context.Context, req *CreateComplaintRequest) (*models.Complaint, error) {
	ctx, span := util.StartSpan(ctx, "ComplaintService.CreateComplaint")
	defer span.End()

	id := sanitize(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	complaint := &models.Complaint{
		ID:          id,
		CustomerID:  sanitize(req.CustomerID),
		Title:       sanitize(req.Title),
		Description: sanitize(req.Description),
		Category:    sanitize(req.Category),
		Priority:    sanitize(priority),
		Status:      models.ComplaintStatusOpen,
		AssignedTo:  sanitize(req.AssignedTo),
	}

	if err := s.store.CreateComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	util.ComplaintsOpenedTotal.Inc()
	s.logger.Info("Complaint opened",
		zap.String("complaint_id", complaint.ID),
		zap.String("customer_id", complaint.CustomerID),
		zap.String("priority", complaint.Priority))

	event := &models.ComplaintOpenedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeComplaintOpened,
			Timestamp: time.Now(),
		},
		ComplaintID: complaint.ID,
		CustomerID:  complaint.CustomerID,
		Category:    complaint.Category,
		Priority:    complaint.Priority,
	}
	if err := s.eventPublisher.PublishComplaintOpened(ctx, event); err != nil {
		s.logger.Error("Failed to publish ComplaintOpened event", zap.Error(err))
	}

	return complaint, nil
}

// UpdateComplaint applies the supplied fields onto the stored complaint
func (s *ComplaintService) UpdateComplaint(ctx context.Context, req *UpdateComplaintRequest) (*models.Complaint, error) {
	ctx, span := util.StartSpan(ctx, "ComplaintService.UpdateComplaint")
	defer span.End()

	complaint, err := s.store.GetComplaintByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := *complaint
	if v := sanitizePtr(req.CustomerID); v != nil {
		updated.CustomerID = *v
	}
	if v := sanitizePtr(req.Title); v != nil {
		updated.Title = *v
	}
	if v := sanitizePtr(req.Description); v != nil {
		updated.Description = *v
	}
	if v := sanitizePtr(req.Category); v != nil {
		updated.Category = *v
	}
	if v := sanitizePtr(req.Priority); v != nil {
		updated.Priority = *v
	}
	if v := sanitizePtr(req.Status); v != nil {
		updated.Status = *v
	}
	if v := sanitizePtr(req.AssignedTo); v != nil {
		updated.AssignedTo = *v
	}
	if v := sanitizePtr(req.Resolution); v != nil {
		updated.Resolution = *v
	}

	if err := s.store.UpdateComplaint(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}

	return &updated, nil
}

// DeleteComplaint deletes a complaint by ID
func (s *ComplaintService) DeleteComplaint(ctx context.Context, id string) error {
	return s.store.DeleteComplaint(ctx, sanitize(id))
}

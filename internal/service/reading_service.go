package service

import (
	"context"
	"fmt"

	"waterbilling/internal/models"
	"waterbilling/internal/redisclient"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReadingService handles meter readings
type ReadingService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewReadingService creates a new reading service
func NewReadingService(store *store.Store, redis *redisclient.Client) *ReadingService {
	return &ReadingService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// CreateReadingRequest represents a request to record a meter reading.
// PreviousReading defaults to the meter's latest recorded reading when absent.
type CreateReadingRequest struct {
	ID              string   `json:"id"`
	CustomerID      string   `json:"customer_id" binding:"required"`
	MeterNumber     string   `json:"meter_number" binding:"required"`
	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading" binding:"required"`
	ReadingDate     string   `json:"reading_date" binding:"required"`
	Status          string   `json:"status"`
	Reader          string   `json:"reader" binding:"required"`
}

// UpdateReadingRequest represents a partial meter reading update.
// Consumption is recomputed when either reading operand is supplied.
type UpdateReadingRequest struct {
	ID              string   `json:"id" binding:"required"`
	CustomerID      *string  `json:"customer_id"`
	MeterNumber     *string  `json:"meter_number"`
	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading"`
	ReadingDate     *string  `json:"reading_date"`
	Status          *string  `json:"status"`
	Reader          *string  `json:"reader"`
}

// computeConsumption derives consumption from the two reading operands
func computeConsumption(current, previous float64) float64 {
	return current - previous
}

// ListReadings retrieves all meter readings, newest first
func (s *ReadingService) ListReadings(ctx context.Context) ([]models.MeterReading, error) {
	return s.store.GetMeterReadings(ctx)
}

// GetReading retrieves a meter reading by ID
func (s *ReadingService) GetReading(ctx context.Context, id string) (*models.MeterReading, error) {
	return s.store.GetMeterReadingByID(ctx, id)
}

// GetCustomerReadings retrieves readings for a customer
func (s *ReadingService) GetCustomerReadings(ctx context.Context, customerID string) ([]models.MeterReading, error) {
	return s.store.GetReadingsByCustomerID(ctx, customerID)
}

// LatestReading retrieves the most recent reading value for a meter.
// Served from the Redis cache when possible, falling back to the database.
func (s *ReadingService) LatestReading(ctx context.Context, meterNumber string) (float64, string, error) {
	current, date, hit, err := s.redis.GetLatestReading(ctx, meterNumber)
	if err != nil {
		s.logger.Warn("Reading cache lookup failed, falling back to DB",
			zap.String("meter_number", meterNumber),
			zap.Error(err))
	} else if hit {
		util.ReadingCacheHits.WithLabelValues("hit").Inc()
		return current, date, nil
	}

	util.ReadingCacheHits.WithLabelValues("miss").Inc()

	reading, err := s.store.GetLatestReadingByMeter(ctx, meterNumber)
	if err != nil {
		return 0, "", err
	}
	if reading == nil {
		return 0, "", fmt.Errorf("no readings for meter: %s", meterNumber)
	}

	if err := s.redis.SetLatestReading(ctx, meterNumber, reading.CurrentReading, reading.ReadingDate); err != nil {
		s.logger.Warn("Failed to cache latest reading",
			zap.String("meter_number", meterNumber),
			zap.Error(err))
	}

	return reading.CurrentReading, reading.ReadingDate, nil
}

// CreateReading derives consumption and persists a new meter reading
func (s *ReadingService) CreateReading(ctx context.Context, req *CreateReadingRequest) (*models.MeterReading, error) {
	ctx, span := util.StartSpan(ctx, "ReadingService.CreateReading")
	defer span.End()

	id := sanitize(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	status := req.Status
	if status == "" {
		status = models.ReadingStatusPending
	}

	meterNumber := sanitize(req.MeterNumber)

	previous := 0.0
	if req.PreviousReading != nil {
		previous = *req.PreviousReading
	} else if latest, err := s.store.GetLatestReadingByMeter(ctx, meterNumber); err != nil {
		return nil, fmt.Errorf("failed to look up previous reading: %w", err)
	} else if latest != nil {
		previous = latest.CurrentReading
	}

	reading := &models.MeterReading{
		ID:              id,
		CustomerID:      sanitize(req.CustomerID),
		MeterNumber:     meterNumber,
		PreviousReading: previous,
		CurrentReading:  *req.CurrentReading,
		Consumption:     computeConsumption(*req.CurrentReading, previous),
		ReadingDate:     sanitize(req.ReadingDate),
		Status:          sanitize(status),
		Reader:          sanitize(req.Reader),
	}

	if err := s.store.CreateMeterReading(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to create meter reading: %w", err)
	}

	util.ReadingsRecordedTotal.Inc()
	s.logger.Info("Meter reading recorded",
		zap.String("reading_id", reading.ID),
		zap.String("meter_number", reading.MeterNumber),
		zap.Float64("consumption", reading.Consumption))

	if err := s.store.UpdateCustomerLastReading(ctx, reading.CustomerID, reading.CurrentReading); err != nil {
		s.logger.Error("Failed to update customer last reading",
			zap.String("customer_id", reading.CustomerID),
			zap.Error(err))
	}

	if err := s.redis.SetLatestReading(ctx, reading.MeterNumber, reading.CurrentReading, reading.ReadingDate); err != nil {
		s.logger.Warn("Failed to cache latest reading",
			zap.String("meter_number", reading.MeterNumber),
			zap.Error(err))
	}

	return reading, nil
}

// applyReadingUpdate overlays the supplied fields onto a reading and
// recomputes consumption when either operand is supplied
func applyReadingUpdate(reading models.MeterReading, req *UpdateReadingRequest) models.MeterReading {
	updated := reading
	if v := sanitizePtr(req.CustomerID); v != nil {
		updated.CustomerID = *v
	}
	if v := sanitizePtr(req.MeterNumber); v != nil {
		updated.MeterNumber = *v
	}
	if req.PreviousReading != nil {
		updated.PreviousReading = *req.PreviousReading
	}
	if req.CurrentReading != nil {
		updated.CurrentReading = *req.CurrentReading
	}
	if req.PreviousReading != nil || req.CurrentReading != nil {
		updated.Consumption = computeConsumption(updated.CurrentReading, updated.PreviousReading)
	}
	if v := sanitizePtr(req.ReadingDate); v != nil {
		updated.ReadingDate = *v
	}
	if v := sanitizePtr(req.Status); v != nil {
		updated.Status = *v
	}
	if v := sanitizePtr(req.Reader); v != nil {
		updated.Reader = *v
	}
	return updated
}

// UpdateReading applies the supplied fields and recomputes consumption
// when either reading operand changed
func (s *ReadingService) UpdateReading(ctx context.Context, req *UpdateReadingRequest) (*models.MeterReading, error) {
	ctx, span := util.StartSpan(ctx, "ReadingService.UpdateReading")
	defer span.End()

	reading, err := s.store.GetMeterReadingByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := applyReadingUpdate(*reading, req)
	if err := s.store.UpdateMeterReading(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update meter reading: %w", err)
	}

	if err := s.redis.InvalidateLatestReading(ctx, updated.MeterNumber); err != nil {
		s.logger.Warn("Failed to invalidate reading cache",
			zap.String("meter_number", updated.MeterNumber),
			zap.Error(err))
	}

	return &updated, nil
}

// DeleteReading deletes a meter reading by ID
func (s *ReadingService) DeleteReading(ctx context.Context, id string) error {
	reading, err := s.store.GetMeterReadingByID(ctx, sanitize(id))
	if err == nil && reading != nil {
		if err := s.redis.InvalidateLatestReading(ctx, reading.MeterNumber); err != nil {
			s.logger.Warn("Failed to invalidate reading cache",
				zap.String("meter_number", reading.MeterNumber),
				zap.Error(err))
		}
	}
	return s.store.DeleteMeterReading(ctx, sanitize(id))
}

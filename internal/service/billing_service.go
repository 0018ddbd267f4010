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

// BillingService handles bill generation and maintenance
type BillingService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(store *store.Store, eventPublisher *broker.EventPublisher) *BillingService {
	return &BillingService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateBillRequest represents a request to generate a bill.
// The total is always derived from the three charge fields.
type CreateBillRequest struct {
	ID              string   `json:"id"`
	CustomerID      string   `json:"customer_id" binding:"required"`
	MeterNumber     string   `json:"meter_number" binding:"required"`
	BillingPeriod   string   `json:"billing_period" binding:"required"`
	Consumption     *float64 `json:"consumption"`
	Rate            *float64 `json:"rate"`
	WaterCharges    *float64 `json:"water_charges"`
	SewerageCharges *float64 `json:"sewerage_charges"`
	ServiceCharge   *float64 `json:"service_charge"`
	DueDate         string   `json:"due_date" binding:"required"`
	Status          string   `json:"status"`
	IssueDate       string   `json:"issue_date"`
}

// UpdateBillRequest represents a partial bill update.
// The total is recomputed when any charge field is supplied.
type UpdateBillRequest struct {
	ID              string   `json:"id" binding:"required"`
	CustomerID      *string  `json:"customer_id"`
	MeterNumber     *string  `json:"meter_number"`
	BillingPeriod   *string  `json:"billing_period"`
	Consumption     *float64 `json:"consumption"`
	Rate            *float64 `json:"rate"`
	WaterCharges    *float64 `json:"water_charges"`
	SewerageCharges *float64 `json:"sewerage_charges"`
	ServiceCharge   *float64 `json:"service_charge"`
	DueDate         *string  `json:"due_date"`
	Status          *string  `json:"status"`
}

// computeBillTotal derives the bill total from its three charge components
func computeBillTotal(waterCharges, sewerageCharges, serviceCharge float64) float64 {
	return waterCharges + sewerageCharges + serviceCharge
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ListBills retrieves all bills, newest issue date first
func (s *BillingService) ListBills(ctx context.Context) ([]models.Bill, error) {
	return s.store.GetBills(ctx)
}

// GetBill retrieves a bill by ID
func (s *BillingService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	return s.store.GetBillByID(ctx, id)
}

// GetCustomerBills retrieves bills for a customer
func (s *BillingService) GetCustomerBills(ctx context.Context, customerID string) ([]models.Bill, error) {
	return s.store.GetBillsByCustomerID(ctx, customerID)
}

// CreateBill derives the total and persists a new bill
func (s *BillingService) CreateBill(ctx context.Context, req *CreateBillRequest) (*models.Bill, error) {
	ctx, span := util.StartSpan(ctx, "BillingService.CreateBill")
	defer span.End()

	id := sanitize(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	status := req.Status
	if status == "" {
		status = models.BillStatusPending
	}

	issueDate := sanitize(req.IssueDate)
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}

	bill := &models.Bill{
		ID:              id,
		CustomerID:      sanitize(req.CustomerID),
		MeterNumber:     sanitize(req.MeterNumber),
		BillingPeriod:   sanitize(req.BillingPeriod),
		Consumption:     floatOrZero(req.Consumption),
		Rate:            floatOrZero(req.Rate),
		WaterCharges:    floatOrZero(req.WaterCharges),
		SewerageCharges: floatOrZero(req.SewerageCharges),
		ServiceCharge:   floatOrZero(req.ServiceCharge),
		DueDate:         sanitize(req.DueDate),
		Status:          sanitize(status),
		IssueDate:       issueDate,
	}
	bill.TotalAmount = computeBillTotal(bill.WaterCharges, bill.SewerageCharges, bill.ServiceCharge)

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	util.BillsIssuedTotal.Inc()
	s.logger.Info("Bill issued",
		zap.String("bill_id", bill.ID),
		zap.String("customer_id", bill.CustomerID),
		zap.Float64("total_amount", bill.TotalAmount))

	event := &models.BillIssuedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeBillIssued,
			Timestamp: time.Now(),
		},
		BillID:        bill.ID,
		CustomerID:    bill.CustomerID,
		BillingPeriod: bill.BillingPeriod,
		TotalAmount:   bill.TotalAmount,
		DueDate:       bill.DueDate,
	}

	if err := s.eventPublisher.PublishBillIssued(ctx, event); err != nil {
		s.logger.Error("Failed to publish BillIssued event", zap.Error(err))
	}

	return bill, nil
}

// applyBillUpdate overlays the supplied fields onto a bill and recomputes
// the total when any charge component is supplied
func applyBillUpdate(bill models.Bill, req *UpdateBillRequest) models.Bill {
	updated := bill
	if v := sanitizePtr(req.CustomerID); v != nil {
		updated.CustomerID = *v
	}
	if v := sanitizePtr(req.MeterNumber); v != nil {
		updated.MeterNumber = *v
	}
	if v := sanitizePtr(req.BillingPeriod); v != nil {
		updated.BillingPeriod = *v
	}
	if req.Consumption != nil {
		updated.Consumption = *req.Consumption
	}
	if req.Rate != nil {
		updated.Rate = *req.Rate
	}
	if req.WaterCharges != nil {
		updated.WaterCharges = *req.WaterCharges
	}
	if req.SewerageCharges != nil {
		updated.SewerageCharges = *req.SewerageCharges
	}
	if req.ServiceCharge != nil {
		updated.ServiceCharge = *req.ServiceCharge
	}
	if req.WaterCharges != nil || req.SewerageCharges != nil || req.ServiceCharge != nil {
		updated.TotalAmount = computeBillTotal(updated.WaterCharges, updated.SewerageCharges, updated.ServiceCharge)
	}
	if v := sanitizePtr(req.DueDate); v != nil {
		updated.DueDate = *v
	}
	if v := sanitizePtr(req.Status); v != nil {
		updated.Status = *v
	}
	return updated
}

// UpdateBill applies the supplied fields and recomputes the total when
// any charge component changed
func (s *BillingService) UpdateBill(ctx context.Context, req *UpdateBillRequest) (*models.Bill, error) {
	ctx, span := util.StartSpan(ctx, "BillingService.UpdateBill")
	defer span.End()

	bill, err := s.store.GetBillByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := applyBillUpdate(*bill, req)
	if err := s.store.UpdateBill(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return &updated, nil
}

// DeleteBill deletes a bill by ID
func (s *BillingService) DeleteBill(ctx context.Context, id string) error {
	return s.store.DeleteBill(ctx, sanitize(id))
}

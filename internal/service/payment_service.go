package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waterbilling/internal/broker"
	"waterbilling/internal/models"
	"waterbilling/internal/redisclient"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDuplicateTransactionRef reports a payment submitted with a
// transaction reference that was already claimed.
var ErrDuplicateTransactionRef = errors.New("duplicate transaction reference")

const transactionRefTTL = 24 * time.Hour

// PaymentService handles payment recording and the settlement cascade
type PaymentService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	settlement     *Settlement
	logger         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	settlement *Settlement,
) *PaymentService {
	return &PaymentService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		settlement:     settlement,
		logger:         util.GetLogger(),
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	ID             string   `json:"id"`
	CustomerID     string   `json:"customer_id" binding:"required"`
	BillID         string   `json:"bill_id" binding:"required"`
	Amount         *float64 `json:"amount" binding:"required"`
	PaymentMethod  string   `json:"payment_method" binding:"required"`
	TransactionRef string   `json:"transaction_ref"`
	PaymentDate    string   `json:"payment_date"`
	Status         string   `json:"status"`
	PhoneNumber    string   `json:"phone_number"`
}

// UpdatePaymentRequest represents a partial payment update
type UpdatePaymentRequest struct {
	ID             string   `json:"id" binding:"required"`
	CustomerID     *string  `json:"customer_id"`
	BillID         *string  `json:"bill_id"`
	Amount         *float64 `json:"amount"`
	PaymentMethod  *string  `json:"payment_method"`
	TransactionRef *string  `json:"transaction_ref"`
	PaymentDate    *string  `json:"payment_date"`
	Status         *string  `json:"status"`
	PhoneNumber    *string  `json:"phone_number"`
}

// ListPayments retrieves all payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.store.GetPayments(ctx)
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return s.store.GetPaymentByID(ctx, id)
}

// GetCustomerPayments retrieves payments for a customer
func (s *PaymentService) GetCustomerPayments(ctx context.Context, customerID string) ([]models.Payment, error) {
	return s.store.GetPaymentsByCustomerID(ctx, customerID)
}

// RecordPayment persists a payment and, when it arrives Completed, runs
// the settlement cascade against the bill and customer balance.
func (s *PaymentService) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.RecordPayment")
	defer span.End()

	id := sanitize(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	status := req.Status
	if status == "" {
		status = models.PaymentStatusPending
	}

	paymentDate := sanitize(req.PaymentDate)
	if paymentDate == "" {
		paymentDate = time.Now().Format("2006-01-02")
	}

	transactionRef := sanitize(req.TransactionRef)
	if transactionRef == "" {
		transactionRef = fmt.Sprintf("TXN-%s", uuid.New().String()[:8])
	}

	claimed, err := s.redis.ClaimTransactionRef(ctx, transactionRef, transactionRefTTL)
	if err != nil {
		s.logger.Warn("Transaction ref claim failed, proceeding without dedup",
			zap.String("transaction_ref", transactionRef),
			zap.Error(err))
	} else if !claimed {
		util.PaymentsDuplicateTotal.Inc()
		return nil, ErrDuplicateTransactionRef
	}

	payment := &models.Payment{
		ID:             id,
		CustomerID:     sanitize(req.CustomerID),
		BillID:         sanitize(req.BillID),
		Amount:         *req.Amount,
		PaymentMethod:  sanitize(req.PaymentMethod),
		TransactionRef: transactionRef,
		PaymentDate:    paymentDate,
		Status:         sanitize(status),
		PhoneNumber:    sanitize(req.PhoneNumber),
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		if relErr := s.redis.ReleaseTransactionRef(ctx, transactionRef); relErr != nil {
			s.logger.Warn("Failed to release transaction ref",
				zap.String("transaction_ref", transactionRef),
				zap.Error(relErr))
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	util.PaymentsRecordedTotal.WithLabelValues(payment.PaymentMethod, payment.Status).Inc()
	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("transaction_ref", payment.TransactionRef),
		zap.Float64("amount", payment.Amount))

	recordedEvent := &models.PaymentRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentRecorded,
			Timestamp: time.Now(),
		},
		PaymentID:      payment.ID,
		CustomerID:     payment.CustomerID,
		BillID:         payment.BillID,
		Amount:         payment.Amount,
		PaymentMethod:  payment.PaymentMethod,
		TransactionRef: payment.TransactionRef,
		Status:         payment.Status,
	}
	if err := s.eventPublisher.PublishPaymentRecorded(ctx, recordedEvent); err != nil {
		s.logger.Error("Failed to publish PaymentRecorded event", zap.Error(err))
	}

	if payment.Status == models.PaymentStatusCompleted {
		if err := s.completePayment(ctx, payment); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// UpdatePayment applies the supplied fields; an update that supplies
// status Completed triggers the settlement cascade.
func (s *PaymentService) UpdatePayment(ctx context.Context, req *UpdatePaymentRequest) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.UpdatePayment")
	defer span.End()

	payment, err := s.store.GetPaymentByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := *payment
	if v := sanitizePtr(req.CustomerID); v != nil {
		updated.CustomerID = *v
	}
	if v := sanitizePtr(req.BillID); v != nil {
		updated.BillID = *v
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if v := sanitizePtr(req.PaymentMethod); v != nil {
		updated.PaymentMethod = *v
	}
	if v := sanitizePtr(req.TransactionRef); v != nil {
		updated.TransactionRef = *v
	}
	if v := sanitizePtr(req.PaymentDate); v != nil {
		updated.PaymentDate = *v
	}
	if v := sanitizePtr(req.Status); v != nil {
		updated.Status = *v
	}
	if v := sanitizePtr(req.PhoneNumber); v != nil {
		updated.PhoneNumber = *v
	}

	if err := s.store.UpdatePayment(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	// The cascade runs on every update that supplies Completed; there is
	// no guard against re-settling, so repeated updates keep deducting.
	if req.Status != nil && updated.Status == models.PaymentStatusCompleted {
		if err := s.completePayment(ctx, &updated); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

// completePayment runs the settlement cascade and publishes the
// PaymentCompleted event
func (s *PaymentService) completePayment(ctx context.Context, payment *models.Payment) error {
	if err := s.settlement.Settle(ctx, payment); err != nil {
		return fmt.Errorf("settlement failed: %w", err)
	}

	event := &models.PaymentCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentCompleted,
			Timestamp: time.Now(),
		},
		PaymentID:      payment.ID,
		CustomerID:     payment.CustomerID,
		BillID:         payment.BillID,
		Amount:         payment.Amount,
		TransactionRef: payment.TransactionRef,
	}
	if err := s.eventPublisher.PublishPaymentCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentCompleted event", zap.Error(err))
	}
	return nil
}

// DeletePayment deletes a payment by ID
func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	return s.store.DeletePayment(ctx, sanitize(id))
}

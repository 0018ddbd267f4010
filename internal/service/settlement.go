package service

import (
	"context"
	"fmt"
	"time"

	"waterbilling/internal/models"
	"waterbilling/internal/util"

	"go.uber.org/zap"
)

// settlementStore is the slice of the store the cascade writes through
type settlementStore interface {
	UpdateBillStatus(ctx context.Context, billID, status string) error
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomerBalance(ctx context.Context, customerID string, outstanding float64) error
}

// Settlement reflects a completed payment onto the linked bill and the
// customer's outstanding balance. The two writes are sequential and not
// wrapped in a transaction; a downstream failure leaves the earlier write
// in place and surfaces as the returned error.
type Settlement struct {
	store  settlementStore
	logger *zap.Logger
}

// NewSettlement creates a new settlement component
func NewSettlement(store settlementStore) *Settlement {
	return &Settlement{
		store:  store,
		logger: util.GetLogger(),
	}
}

// settleOutstanding clamps a balance deduction at zero
func settleOutstanding(outstanding, amount float64) float64 {
	if remaining := outstanding - amount; remaining > 0 {
		return remaining
	}
	return 0
}

// Settle marks the referenced bill Paid and deducts the payment amount
// from the customer's outstanding balance, floored at zero.
func (s *Settlement) Settle(ctx context.Context, payment *models.Payment) error {
	ctx, span := util.StartSpan(ctx, "Settlement.Settle")
	defer span.End()

	start := time.Now()
	defer func() {
		util.SettlementLatency.Observe(time.Since(start).Seconds())
	}()

	s.logger.Info("Settling payment",
		zap.String("payment_id", payment.ID),
		zap.String("bill_id", payment.BillID),
		zap.Float64("amount", payment.Amount))

	if err := s.store.UpdateBillStatus(ctx, payment.BillID, models.BillStatusPaid); err != nil {
		util.SettlementsFailedTotal.WithLabelValues("bill").Inc()
		return fmt.Errorf("failed to mark bill paid: %w", err)
	}

	customer, err := s.store.GetCustomerByID(ctx, payment.CustomerID)
	if err != nil {
		util.SettlementsFailedTotal.WithLabelValues("customer").Inc()
		return fmt.Errorf("failed to load customer for settlement: %w", err)
	}

	newOutstanding := settleOutstanding(customer.OutstandingAmount, payment.Amount)
	if err := s.store.UpdateCustomerBalance(ctx, customer.ID, newOutstanding); err != nil {
		util.SettlementsFailedTotal.WithLabelValues("balance").Inc()
		return fmt.Errorf("failed to update customer balance: %w", err)
	}

	util.SettlementsTotal.Inc()
	s.logger.Info("Payment settled",
		zap.String("payment_id", payment.ID),
		zap.String("customer_id", customer.ID),
		zap.Float64("outstanding_amount", newOutstanding))
	return nil
}

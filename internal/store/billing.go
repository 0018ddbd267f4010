package store

import (
	"context"
	"database/sql"
	"fmt"

	"waterbilling/internal/models"
)

// GetBills retrieves all bills with customer names, newest issue date first
func (s *Store) GetBills(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.SelectContext(ctx, &bills, `
		SELECT b.*, COALESCE(c.name, '') AS customer_name
		FROM bills b
		LEFT JOIN customers c ON b.customer_id = c.id
		ORDER BY b.issue_date DESC`)
	return bills, err
}

// GetBillByID retrieves a bill by ID
func (s *Store) GetBillByID(ctx context.Context, id string) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.GetContext(ctx, &bill, `
		SELECT b.*, COALESCE(c.name, '') AS customer_name
		FROM bills b
		LEFT JOIN customers c ON b.customer_id = c.id
		WHERE b.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBillsByCustomerID retrieves bills for a customer
func (s *Store) GetBillsByCustomerID(ctx context.Context, customerID string) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE customer_id = $1 ORDER BY issue_date DESC", customerID)
	return bills, err
}

// CreateBill inserts a new bill
func (s *Store) CreateBill(ctx context.Context, b *models.Bill) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bills (id, customer_id, meter_number, billing_period, consumption, rate,
			water_charges, sewerage_charges, service_charge, total_amount, due_date, status, issue_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.CustomerID, b.MeterNumber, b.BillingPeriod, b.Consumption, b.Rate,
		b.WaterCharges, b.SewerageCharges, b.ServiceCharge, b.TotalAmount, b.DueDate, b.Status, b.IssueDate)
	return err
}

// UpdateBill replaces the editable fields of a bill
func (s *Store) UpdateBill(ctx context.Context, b *models.Bill) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE bills
		SET customer_id = $1, meter_number = $2, billing_period = $3, consumption = $4, rate = $5,
			water_charges = $6, sewerage_charges = $7, service_charge = $8, total_amount = $9,
			due_date = $10, status = $11
		WHERE id = $12`,
		b.CustomerID, b.MeterNumber, b.BillingPeriod, b.Consumption, b.Rate,
		b.WaterCharges, b.SewerageCharges, b.ServiceCharge, b.TotalAmount,
		b.DueDate, b.Status, b.ID)
	return err
}

// UpdateBillStatus updates a bill's status
func (s *Store) UpdateBillStatus(ctx context.Context, billID, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bills SET status = $1 WHERE id = $2", status, billID)
	return err
}

// MarkOverdueBills flags unpaid bills whose due date has passed.
// Returns the number of bills flagged.
func (s *Store) MarkOverdueBills(ctx context.Context, today string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET status = $1 WHERE status IN ($2, $3) AND due_date < $4",
		models.BillStatusOverdue, models.BillStatusPending, models.BillStatusSent, today)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBill deletes a bill by ID
func (s *Store) DeleteBill(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	return err
}

// GetPayments retrieves all payments with customer names, newest first
func (s *Store) GetPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.SelectContext(ctx, &payments, `
		SELECT p.*, COALESCE(c.name, '') AS customer_name
		FROM payments p
		LEFT JOIN customers c ON p.customer_id = c.id
		ORDER BY p.payment_date DESC`)
	return payments, err
}

// GetPaymentByID retrieves a payment by ID
func (s *Store) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment, `
		SELECT p.*, COALESCE(c.name, '') AS customer_name
		FROM payments p
		LEFT JOIN customers c ON p.customer_id = c.id
		WHERE p.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentsByCustomerID retrieves payments for a customer
func (s *Store) GetPaymentsByCustomerID(ctx context.Context, customerID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE customer_id = $1 ORDER BY payment_date DESC", customerID)
	return payments, err
}

// CreatePayment inserts a new payment
func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, customer_id, bill_id, amount, payment_method, transaction_ref, payment_date, status, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.CustomerID, p.BillID, p.Amount, p.PaymentMethod, p.TransactionRef, p.PaymentDate, p.Status, p.PhoneNumber)
	return err
}

// UpdatePayment replaces the editable fields of a payment
func (s *Store) UpdatePayment(ctx context.Context, p *models.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE payments
		SET customer_id = $1, bill_id = $2, amount = $3, payment_method = $4,
			transaction_ref = $5, payment_date = $6, status = $7, phone_number = $8
		WHERE id = $9`,
		p.CustomerID, p.BillID, p.Amount, p.PaymentMethod,
		p.TransactionRef, p.PaymentDate, p.Status, p.PhoneNumber, p.ID)
	return err
}

// DeletePayment deletes a payment by ID
func (s *Store) DeletePayment(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	return err
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}

package service

import (
	"context"
	"fmt"

	"waterbilling/internal/models"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"go.uber.org/zap"
)

// CustomerService handles customer records
type CustomerService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store *store.Store) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	ID             string `json:"id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	Address        string `json:"address" binding:"required"`
	MeterNumber    string `json:"meter_number" binding:"required"`
	Status         string `json:"status"`
	ConnectionDate string `json:"connection_date" binding:"required"`
}

// UpdateCustomerRequest represents a request to update a customer.
// Fields left nil keep their stored value.
type UpdateCustomerRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	MeterNumber *string `json:"meter_number"`
	Status      *string `json:"status"`
}

// CustomerSummary bundles a customer with their bills, payments and readings
type CustomerSummary struct {
	Customer *models.Customer      `json:"customer"`
	Bills    []models.Bill         `json:"bills"`
	Payments []models.Payment      `json:"payments"`
	Readings []models.MeterReading `json:"readings"`
}

// ListCustomers retrieves all customers ordered by name
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.GetCustomers(ctx)
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.GetCustomerByID(ctx, id)
}

// SearchCustomers searches customers by name, phone or ID
func (s *CustomerService) SearchCustomers(ctx context.Context, keywords string) ([]models.Customer, error) {
	return s.store.SearchCustomers(ctx, sanitize(keywords))
}

// CreateCustomer validates, sanitizes and persists a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	status := req.Status
	if status == "" {
		status = models.CustomerStatusActive
	}

	customer := &models.Customer{
		ID:             sanitize(req.ID),
		Name:           sanitize(req.Name),
		Phone:          sanitize(req.Phone),
		Email:          sanitize(req.Email),
		Address:        sanitize(req.Address),
		MeterNumber:    sanitize(req.MeterNumber),
		Status:         sanitize(status),
		ConnectionDate: sanitize(req.ConnectionDate),
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	util.CustomersCreatedTotal.Inc()
	s.logger.Info("Customer created", zap.String("customer_id", customer.ID))
	return customer, nil
}

// UpdateCustomer applies the supplied fields onto the stored customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, req *UpdateCustomerRequest) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.UpdateCustomer")
	defer span.End()

	customer, err := s.store.GetCustomerByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := *customer
	if v := sanitizePtr(req.Name); v != nil {
		updated.Name = *v
	}
	if v := sanitizePtr(req.Phone); v != nil {
		updated.Phone = *v
	}
	if v := sanitizePtr(req.Email); v != nil {
		updated.Email = *v
	}
	if v := sanitizePtr(req.Address); v != nil {
		updated.Address = *v
	}
	if v := sanitizePtr(req.MeterNumber); v != nil {
		updated.MeterNumber = *v
	}
	if v := sanitizePtr(req.Status); v != nil {
		updated.Status = *v
	}

	if err := s.store.UpdateCustomer(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &updated, nil
}

// DeleteCustomer deletes a customer by ID
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.DeleteCustomer(ctx, sanitize(id))
}

// GetCustomerSummary retrieves a customer with their bills, payments and readings
func (s *CustomerService) GetCustomerSummary(ctx context.Context, id string) (*CustomerSummary, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.GetCustomerSummary")
	defer span.End()

	customer, err := s.store.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.GetBillsByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer bills: %w", err)
	}

	payments, err := s.store.GetPaymentsByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer payments: %w", err)
	}

	readings, err := s.store.GetReadingsByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer readings: %w", err)
	}

	return &CustomerSummary{
		Customer: customer,
		Bills:    bills,
		Payments: payments,
		Readings: readings,
	}, nil
}

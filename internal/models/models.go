package models

import "time"

// Customer represents a water & sewage utility account holder
type Customer struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Phone             string    `db:"phone" json:"phone"`
	Email             string    `db:"email" json:"email"`
	Address           string    `db:"address" json:"address"`
	MeterNumber       string    `db:"meter_number" json:"meter_number"`
	Status            string    `db:"status" json:"status"`
	ConnectionDate    string    `db:"connection_date" json:"connection_date"`
	LastReading       float64   `db:"last_reading" json:"last_reading"`
	OutstandingAmount float64   `db:"outstanding_amount" json:"outstanding_amount"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// MeterReading represents a single meter reading entry
type MeterReading struct {
	ID              string    `db:"id" json:"id"`
	CustomerID      string    `db:"customer_id" json:"customer_id"`
	CustomerName    string    `db:"customer_name" json:"customer_name,omitempty"`
	MeterNumber     string    `db:"meter_number" json:"meter_number"`
	PreviousReading float64   `db:"previous_reading" json:"previous_reading"`
	CurrentReading  float64   `db:"current_reading" json:"current_reading"`
	Consumption     float64   `db:"consumption" json:"consumption"`
	ReadingDate     string    `db:"reading_date" json:"reading_date"`
	Status          string    `db:"status" json:"status"`
	Reader          string    `db:"reader" json:"reader"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Bill represents a billing-period invoice for a customer
type Bill struct {
	ID              string    `db:"id" json:"id"`
	CustomerID      string    `db:"customer_id" json:"customer_id"`
	CustomerName    string    `db:"customer_name" json:"customer_name,omitempty"`
	MeterNumber     string    `db:"meter_number" json:"meter_number"`
	BillingPeriod   string    `db:"billing_period" json:"billing_period"`
	Consumption     float64   `db:"consumption" json:"consumption"`
	Rate            float64   `db:"rate" json:"rate"`
	WaterCharges    float64   `db:"water_charges" json:"water_charges"`
	SewerageCharges float64   `db:"sewerage_charges" json:"sewerage_charges"`
	ServiceCharge   float64   `db:"service_charge" json:"service_charge"`
	TotalAmount     float64   `db:"total_amount" json:"total_amount"`
	DueDate         string    `db:"due_date" json:"due_date"`
	Status          string    `db:"status" json:"status"`
	IssueDate       string    `db:"issue_date" json:"issue_date"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Payment represents a payment against a bill
type Payment struct {
	ID             string    `db:"id" json:"id"`
	CustomerID     string    `db:"customer_id" json:"customer_id"`
	CustomerName   string    `db:"customer_name" json:"customer_name,omitempty"`
	BillID         string    `db:"bill_id" json:"bill_id"`
	Amount         float64   `db:"amount" json:"amount"`
	PaymentMethod  string    `db:"payment_method" json:"payment_method"`
	TransactionRef string    `db:"transaction_ref" json:"transaction_ref"`
	PaymentDate    string    `db:"payment_date" json:"payment_date"`
	Status         string    `db:"status" json:"status"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Complaint represents a customer complaint ticket
type Complaint struct {
	ID           string    `db:"id" json:"id"`
	CustomerID   string    `db:"customer_id" json:"customer_id"`
	CustomerName string    `db:"customer_name" json:"customer_name,omitempty"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Category     string    `db:"category" json:"category"`
	Priority     string    `db:"priority" json:"priority"`
	Status       string    `db:"status" json:"status"`
	AssignedTo   string    `db:"assigned_to" json:"assigned_to"`
	Resolution   string    `db:"resolution" json:"resolution"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// User represents a dashboard or portal account
type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Role       string    `db:"role" json:"role"`
	CustomerID *string   `db:"customer_id" json:"customer_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Customer statuses
const (
	CustomerStatusActive    = "Active"
	CustomerStatusInactive  = "Inactive"
	CustomerStatusSuspended = "Suspended"
)

// Meter reading statuses
const (
	ReadingStatusConfirmed = "Confirmed"
	ReadingStatusPending   = "Pending"
	ReadingStatusAnomaly   = "Anomaly"
)

// Bill statuses
const (
	BillStatusPending = "Pending"
	BillStatusSent    = "Sent"
	BillStatusPaid    = "Paid"
	BillStatusOverdue = "Overdue"
)

// Payment statuses
const (
	PaymentStatusCompleted = "Completed"
	PaymentStatusPending   = "Pending"
	PaymentStatusFailed    = "Failed"
)

// Payment methods
const (
	PaymentMethodMpesa = "M-Pesa"
	PaymentMethodBank  = "Bank Transfer"
	PaymentMethodCash  = "Cash"
	PaymentMethodCard  = "Card"
)

// Complaint statuses
const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
	ComplaintStatusClosed     = "Closed"
)

// Complaint priorities
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}

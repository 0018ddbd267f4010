package models

import "time"

// Event types
const (
	EventTypeBillIssued       = "BILL_ISSUED"
	EventTypePaymentRecorded  = "PAYMENT_RECORDED"
	EventTypePaymentCompleted = "PAYMENT_COMPLETED"
	EventTypeComplaintOpened  = "COMPLAINT_OPENED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// BillIssuedEvent published when a bill is created
type BillIssuedEvent struct {
	BaseEvent
	BillID        string  `json:"bill_id"`
	CustomerID    string  `json:"customer_id"`
	BillingPeriod string  `json:"billing_period"`
	TotalAmount   float64 `json:"total_amount"`
	DueDate       string  `json:"due_date"`
}

// PaymentRecordedEvent published when any payment is recorded
type PaymentRecordedEvent struct {
	BaseEvent
	PaymentID      string  `json:"payment_id"`
	CustomerID     string  `json:"customer_id"`
	BillID         string  `json:"bill_id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionRef string  `json:"transaction_ref"`
	Status         string  `json:"status"`
}

// PaymentCompletedEvent published after the settlement cascade ran
type PaymentCompletedEvent struct {
	BaseEvent
	PaymentID      string  `json:"payment_id"`
	CustomerID     string  `json:"customer_id"`
	BillID         string  `json:"bill_id"`
	Amount         float64 `json:"amount"`
	TransactionRef string  `json:"transaction_ref"`
}

// ComplaintOpenedEvent published when a complaint is filed
type ComplaintOpenedEvent struct {
	BaseEvent
	ComplaintID string `json:"complaint_id"`
	CustomerID  string `json:"customer_id"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"waterbilling/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHandleMessagePaymentCompleted(t *testing.T) {
	eh := NewEventHandler()

	var got *models.PaymentCompletedEvent
	eh.OnPaymentCompleted(func(ctx context.Context, event *models.PaymentCompletedEvent) error {
		got = event
		return nil
	})

	event := models.PaymentCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypePaymentCompleted,
			Timestamp: time.Now(),
		},
		PaymentID:      "P2001",
		CustomerID:     "W1001",
		BillID:         "B3001",
		Amount:         1500,
		TransactionRef: "TXN-abc12345",
	}
	value, err := json.Marshal(event)
	assert.NoError(t, err)

	err = eh.HandleMessage(context.Background(), kafka.Message{Value: value})

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "P2001", got.PaymentID)
	assert.Equal(t, 1500.0, got.Amount)
}

func TestHandleMessageBillIssued(t *testing.T) {
	eh := NewEventHandler()

	var got *models.BillIssuedEvent
	eh.OnBillIssued(func(ctx context.Context, event *models.BillIssuedEvent) error {
		got = event
		return nil
	})

	event := models.BillIssuedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-2",
			EventType: models.EventTypeBillIssued,
			Timestamp: time.Now(),
		},
		BillID:        "B3001",
		CustomerID:    "W1001",
		BillingPeriod: "2026-08",
		TotalAmount:   1610,
		DueDate:       "2026-09-15",
	}
	value, err := json.Marshal(event)
	assert.NoError(t, err)

	err = eh.HandleMessage(context.Background(), kafka.Message{Value: value})

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "B3001", got.BillID)
	assert.Equal(t, "2026-08", got.BillingPeriod)
}

func TestHandleMessageUnregisteredHandler(t *testing.T) {
	eh := NewEventHandler()

	event := models.ComplaintOpenedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-3",
			EventType: models.EventTypeComplaintOpened,
			Timestamp: time.Now(),
		},
		ComplaintID: "C4001",
	}
	value, err := json.Marshal(event)
	assert.NoError(t, err)

	// No handler registered for the type; message is acknowledged anyway
	err = eh.HandleMessage(context.Background(), kafka.Message{Value: value})
	assert.NoError(t, err)
}

func TestHandleMessageUnknownType(t *testing.T) {
	eh := NewEventHandler()

	value, err := json.Marshal(models.BaseEvent{
		EventID:   "evt-4",
		EventType: "SOMETHING_ELSE",
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)

	err = eh.HandleMessage(context.Background(), kafka.Message{Value: value})
	assert.NoError(t, err)
}

func TestHandleMessageBadPayload(t *testing.T) {
	eh := NewEventHandler()

	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

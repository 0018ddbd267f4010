package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"waterbilling/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing billing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishBillIssued publishes a BillIssued event
func (ep *EventPublisher) PublishBillIssued(ctx context.Context, event *models.BillIssuedEvent) error {
	key := fmt.Sprintf("bill-%s", event.BillID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentRecorded publishes a PaymentRecorded event
func (ep *EventPublisher) PublishPaymentRecorded(ctx context.Context, event *models.PaymentRecordedEvent) error {
	key := fmt.Sprintf("payment-%s", event.PaymentID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentCompleted publishes a PaymentCompleted event
func (ep *EventPublisher) PublishPaymentCompleted(ctx context.Context, event *models.PaymentCompletedEvent) error {
	key := fmt.Sprintf("payment-%s", event.PaymentID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishComplaintOpened publishes a ComplaintOpened event
func (ep *EventPublisher) PublishComplaintOpened(ctx context.Context, event *models.ComplaintOpenedEvent) error {
	key := fmt.Sprintf("complaint-%s", event.ComplaintID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming billing events
type EventHandler struct {
	onPaymentCompleted func(context.Context, *models.PaymentCompletedEvent) error
	onBillIssued       func(context.Context, *models.BillIssuedEvent) error
	onComplaintOpened  func(context.Context, *models.ComplaintOpenedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnPaymentCompleted registers a handler for PaymentCompleted events
func (eh *EventHandler) OnPaymentCompleted(handler func(context.Context, *models.PaymentCompletedEvent) error) {
	eh.onPaymentCompleted = handler
}

// OnBillIssued registers a handler for BillIssued events
func (eh *EventHandler) OnBillIssued(handler func(context.Context, *models.BillIssuedEvent) error) {
	eh.onBillIssued = handler
}

// OnComplaintOpened registers a handler for ComplaintOpened events
func (eh *EventHandler) OnComplaintOpened(handler func(context.Context, *models.ComplaintOpenedEvent) error) {
	eh.onComplaintOpened = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypePaymentCompleted:
		if eh.onPaymentCompleted != nil {
			var event models.PaymentCompletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PaymentCompleted event: %w", err)
			}
			return eh.onPaymentCompleted(ctx, &event)
		}

	case models.EventTypeBillIssued:
		if eh.onBillIssued != nil {
			var event models.BillIssuedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal BillIssued event: %w", err)
			}
			return eh.onBillIssued(ctx, &event)
		}

	case models.EventTypeComplaintOpened:
		if eh.onComplaintOpened != nil {
			var event models.ComplaintOpenedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ComplaintOpened event: %w", err)
			}
			return eh.onComplaintOpened(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}

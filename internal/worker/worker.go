package worker

import (
	"context"
	"log"
	"time"

	"waterbilling/internal/broker"
	"waterbilling/internal/models"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"go.uber.org/zap"
)

// BillingWorker consumes billing events and dispatches notifications
type BillingWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewBillingWorker creates a new billing worker
func NewBillingWorker(consumer *broker.Consumer, store *store.Store) *BillingWorker {
	w := &BillingWorker{
		consumer: consumer,
		store:    store,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnPaymentCompleted(w.handlePaymentCompleted)
	eventHandler.OnBillIssued(w.handleBillIssued)
	eventHandler.OnComplaintOpened(w.handleComplaintOpened)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *BillingWorker) Start(ctx context.Context) error {
	log.Println("Starting billing worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *BillingWorker) Stop() error {
	log.Println("Stopping billing worker...")
	return w.consumer.Close()
}

// handlePaymentCompleted notifies the customer that their payment settled
func (w *BillingWorker) handlePaymentCompleted(ctx context.Context, event *models.PaymentCompletedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		w.logger.Info("Event already processed", zap.String("event_id", event.EventID))
		return nil
	}

	// Notification dispatch is a log line here; a gateway integration
	// would slot in at this point.
	w.logger.Info("Payment receipt notification",
		zap.String("customer_id", event.CustomerID),
		zap.String("bill_id", event.BillID),
		zap.Float64("amount", event.Amount),
		zap.String("transaction_ref", event.TransactionRef))
	util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

// handleBillIssued notifies the customer that a new bill is available
func (w *BillingWorker) handleBillIssued(ctx context.Context, event *models.BillIssuedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		w.logger.Info("Event already processed", zap.String("event_id", event.EventID))
		return nil
	}

	w.logger.Info("Bill notification",
		zap.String("customer_id", event.CustomerID),
		zap.String("bill_id", event.BillID),
		zap.Float64("total_amount", event.TotalAmount),
		zap.String("due_date", event.DueDate))
	util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

// handleComplaintOpened notifies staff about a new complaint
func (w *BillingWorker) handleComplaintOpened(ctx context.Context, event *models.ComplaintOpenedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		w.logger.Info("Event already processed", zap.String("event_id", event.EventID))
		return nil
	}

	w.logger.Info("Complaint notification",
		zap.String("complaint_id", event.ComplaintID),
		zap.String("customer_id", event.CustomerID),
		zap.String("priority", event.Priority))
	util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

// OverdueWorker periodically flags unpaid bills past their due date
type OverdueWorker struct {
	store    *store.Store
	interval time.Duration
	logger   *zap.Logger
}

// NewOverdueWorker creates a new overdue sweeper
func NewOverdueWorker(store *store.Store, interval time.Duration) *OverdueWorker {
	return &OverdueWorker{
		store:    store,
		interval: interval,
		logger:   util.GetLogger(),
	}
}

// Start runs the sweep loop until the context is cancelled
func (w *OverdueWorker) Start(ctx context.Context) error {
	log.Printf("Starting overdue worker, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once on startup so a restart does not delay the sweep
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Overdue worker context cancelled, stopping...")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	today := time.Now().Format("2006-01-02")

	n, err := w.store.MarkOverdueBills(ctx, today)
	if err != nil {
		w.logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		util.BillsOverdueTotal.Add(float64(n))
		w.logger.Info("Overdue sweep flagged bills", zap.Int64("count", n))
	}
}

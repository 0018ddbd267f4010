package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"waterbilling/internal/models"
	"waterbilling/internal/redisclient"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"go.uber.org/zap"
)

// StatsService aggregates dashboard figures across entities
type StatsService struct {
	store    *store.Store
	redis    *redisclient.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *store.Store, redis *redisclient.Client, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		store:    store,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// DashboardSummary is the aggregate payload behind the staff dashboard
type DashboardSummary struct {
	TotalCustomers     int     `json:"total_customers"`
	ActiveCustomers    int     `json:"active_customers"`
	SuspendedCustomers int     `json:"suspended_customers"`
	TotalOutstanding   float64 `json:"total_outstanding"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCollected    float64 `json:"total_collected"`
	PendingBills      int     `json:"pending_bills"`
	OverdueBills      int     `json:"overdue_bills"`
	CompletedPayments int     `json:"completed_payments"`
	PendingPayments   int     `json:"pending_payments"`
	MpesaUsagePercent float64 `json:"mpesa_usage_percent"`
	OpenComplaints    int     `json:"open_complaints"`
	AvgConsumption    float64 `json:"avg_consumption"`
	GeneratedAt       string  `json:"generated_at"`
}

// GetDashboardSummary computes the dashboard aggregates, served from the
// Redis cache within the configured TTL
func (s *StatsService) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	ctx, span := util.StartSpan(ctx, "StatsService.GetDashboardSummary")
	defer span.End()

	if payload, err := s.redis.GetCachedStats(ctx, "dashboard"); err != nil {
		s.logger.Warn("Stats cache lookup failed", zap.Error(err))
	} else if payload != nil {
		var summary DashboardSummary
		if err := json.Unmarshal(payload, &summary); err == nil {
			return &summary, nil
		}
		s.logger.Warn("Discarding corrupt cached dashboard summary")
	}

	summary, err := s.computeDashboardSummary(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.redis.SetCachedStats(ctx, "dashboard", payload, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache dashboard summary", zap.Error(err))
		}
	}

	return summary, nil
}

func (s *StatsService) computeDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	bills, err := s.store.GetBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	payments, err := s.store.GetPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	complaints, err := s.store.GetComplaints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaints: %w", err)
	}
	readings, err := s.store.GetMeterReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meter readings: %w", err)
	}

	return buildDashboardSummary(customers, bills, payments, complaints, readings), nil
}

// buildDashboardSummary aggregates the dashboard figures from the loaded rows
func buildDashboardSummary(
	customers []models.Customer,
	bills []models.Bill,
	payments []models.Payment,
	complaints []models.Complaint,
	readings []models.MeterReading,
) *DashboardSummary {
	summary := &DashboardSummary{
		TotalCustomers: len(customers),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}

	for _, c := range customers {
		switch c.Status {
		case models.CustomerStatusActive:
			summary.ActiveCustomers++
		case models.CustomerStatusSuspended:
			summary.SuspendedCustomers++
		}
		summary.TotalOutstanding += c.OutstandingAmount
	}

	for _, b := range bills {
		summary.TotalRevenue += b.TotalAmount
		switch b.Status {
		case models.BillStatusPending, models.BillStatusSent:
			summary.PendingBills++
		case models.BillStatusOverdue:
			summary.OverdueBills++
		}
	}

	mpesa := 0
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusCompleted:
			summary.CompletedPayments++
			summary.TotalCollected += p.Amount
		case models.PaymentStatusPending:
			summary.PendingPayments++
		}
		if p.PaymentMethod == models.PaymentMethodMpesa {
			mpesa++
		}
	}
	if len(payments) > 0 {
		summary.MpesaUsagePercent = float64(mpesa) / float64(len(payments)) * 100
	}

	for _, c := range complaints {
		if c.Status == models.ComplaintStatusOpen {
			summary.OpenComplaints++
		}
	}

	if len(readings) > 0 {
		var total float64
		for _, r := range readings {
			total += r.Consumption
		}
		summary.AvgConsumption = total / float64(len(readings))
	}

	return summary
}

package service

import (
	"testing"

	"waterbilling/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildDashboardSummary(t *testing.T) {
	customers := []models.Customer{
		{ID: "W1001", Status: models.CustomerStatusActive, OutstandingAmount: 500},
		{ID: "W1002", Status: models.CustomerStatusSuspended, OutstandingAmount: 1200},
		{ID: "W1003", Status: models.CustomerStatusInactive},
	}
	bills := []models.Bill{
		{ID: "B3001", Status: models.BillStatusPending, TotalAmount: 1000},
		{ID: "B3002", Status: models.BillStatusSent, TotalAmount: 700},
		{ID: "B3003", Status: models.BillStatusOverdue, TotalAmount: 300},
	}
	payments := []models.Payment{
		{ID: "P2001", Status: models.PaymentStatusCompleted, Amount: 800, PaymentMethod: models.PaymentMethodMpesa},
		{ID: "P2002", Status: models.PaymentStatusPending, Amount: 200, PaymentMethod: models.PaymentMethodCash},
	}
	complaints := []models.Complaint{
		{ID: "C4001", Status: models.ComplaintStatusOpen},
		{ID: "C4002", Status: models.ComplaintStatusResolved},
	}
	readings := []models.MeterReading{
		{ID: "R5001", Consumption: 10},
		{ID: "R5002", Consumption: 30},
	}

	summary := buildDashboardSummary(customers, bills, payments, complaints, readings)

	assert.Equal(t, 3, summary.TotalCustomers)
	assert.Equal(t, 1, summary.ActiveCustomers)
	assert.Equal(t, 1, summary.SuspendedCustomers)
	assert.Equal(t, 1700.0, summary.TotalOutstanding)
	assert.Equal(t, 2000.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.PendingBills)
	assert.Equal(t, 1, summary.OverdueBills)
	assert.Equal(t, 1, summary.CompletedPayments)
	assert.Equal(t, 1, summary.PendingPayments)
	assert.Equal(t, 800.0, summary.TotalCollected)
	assert.Equal(t, 50.0, summary.MpesaUsagePercent)
	assert.Equal(t, 1, summary.OpenComplaints)
	assert.Equal(t, 20.0, summary.AvgConsumption)
}

func TestBuildDashboardSummaryEmpty(t *testing.T) {
	summary := buildDashboardSummary(nil, nil, nil, nil, nil)

	assert.Zero(t, summary.TotalCustomers)
	assert.Zero(t, summary.MpesaUsagePercent)
	assert.Zero(t, summary.AvgConsumption)
	assert.NotEmpty(t, summary.GeneratedAt)
}

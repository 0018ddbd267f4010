package service

import (
	"testing"

	"waterbilling/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeBillTotal(t *testing.T) {
	total := computeBillTotal(1200, 360, 50)

	assert.Equal(t, 1610.0, total)
}

func TestComputeBillTotalZeroCharges(t *testing.T) {
	assert.Equal(t, 0.0, computeBillTotal(0, 0, 0))
}

func TestFloatOrZero(t *testing.T) {
	v := 42.5

	assert.Equal(t, 42.5, floatOrZero(&v))
	assert.Equal(t, 0.0, floatOrZero(nil))
}

func TestApplyBillUpdateRecomputesTotal(t *testing.T) {
	bill := models.Bill{
		ID:              "B3001",
		WaterCharges:    1200,
		SewerageCharges: 360,
		ServiceCharge:   50,
		TotalAmount:     1610,
	}

	water := 2000.0
	updated := applyBillUpdate(bill, &UpdateBillRequest{ID: "B3001", WaterCharges: &water})

	assert.Equal(t, 2000.0, updated.WaterCharges)
	assert.Equal(t, 2410.0, updated.TotalAmount)
}

func TestApplyBillUpdateTotalUntouchedWithoutCharges(t *testing.T) {
	// A stale stored total stays as-is when no charge field is supplied
	bill := models.Bill{
		ID:              "B3001",
		WaterCharges:    1200,
		SewerageCharges: 360,
		ServiceCharge:   50,
		TotalAmount:     9999,
	}

	status := models.BillStatusSent
	updated := applyBillUpdate(bill, &UpdateBillRequest{ID: "B3001", Status: &status})

	assert.Equal(t, models.BillStatusSent, updated.Status)
	assert.Equal(t, 9999.0, updated.TotalAmount)
}

func TestApplyBillUpdateEachChargeTriggersRecompute(t *testing.T) {
	bill := models.Bill{
		WaterCharges:    100,
		SewerageCharges: 30,
		ServiceCharge:   20,
		TotalAmount:     150,
	}

	tests := []struct {
		name string
		req  UpdateBillRequest
		want float64
	}{
		{"water", UpdateBillRequest{WaterCharges: ptrFloat(200)}, 250},
		{"sewerage", UpdateBillRequest{SewerageCharges: ptrFloat(60)}, 180},
		{"service", UpdateBillRequest{ServiceCharge: ptrFloat(0)}, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := applyBillUpdate(bill, &tt.req)
			assert.Equal(t, tt.want, updated.TotalAmount)
		})
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}

package service

import (
	"testing"

	"waterbilling/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeConsumption(t *testing.T) {
	assert.Equal(t, 15.0, computeConsumption(115, 100))
}

func TestComputeConsumptionNoUsage(t *testing.T) {
	assert.Equal(t, 0.0, computeConsumption(100, 100))
}

func TestComputeConsumptionMeterRollback(t *testing.T) {
	// A corrected reading below the previous one yields a negative
	// consumption and is stored as-is.
	assert.Equal(t, -5.0, computeConsumption(95, 100))
}

func TestApplyReadingUpdateRecomputesConsumption(t *testing.T) {
	reading := models.MeterReading{
		ID:              "R5001",
		PreviousReading: 100,
		CurrentReading:  115,
		Consumption:     15,
	}

	tests := []struct {
		name string
		req  UpdateReadingRequest
		want float64
	}{
		{"current supplied", UpdateReadingRequest{CurrentReading: ptrFloat(130)}, 30},
		{"previous supplied", UpdateReadingRequest{PreviousReading: ptrFloat(110)}, 5},
		{"both supplied", UpdateReadingRequest{PreviousReading: ptrFloat(200), CurrentReading: ptrFloat(260)}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := applyReadingUpdate(reading, &tt.req)
			assert.Equal(t, tt.want, updated.Consumption)
		})
	}
}

func TestApplyReadingUpdateConsumptionUntouchedOtherwise(t *testing.T) {
	// A stored consumption stays as-is when neither operand is supplied
	reading := models.MeterReading{
		ID:              "R5001",
		PreviousReading: 100,
		CurrentReading:  115,
		Consumption:     42,
	}

	status := models.ReadingStatusConfirmed
	updated := applyReadingUpdate(reading, &UpdateReadingRequest{ID: "R5001", Status: &status})

	assert.Equal(t, models.ReadingStatusConfirmed, updated.Status)
	assert.Equal(t, 42.0, updated.Consumption)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"waterbilling/internal/models"
)

// GetMeterReadings retrieves all meter readings with customer names, newest first
func (s *Store) GetMeterReadings(ctx context.Context) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.db.SelectContext(ctx, &readings, `
		SELECT mr.*, COALESCE(c.name, '') AS customer_name
		FROM meter_readings mr
		LEFT JOIN customers c ON mr.customer_id = c.id
		ORDER BY mr.reading_date DESC`)
	return readings, err
}

// GetMeterReadingByID retrieves a meter reading by ID
func (s *Store) GetMeterReadingByID(ctx context.Context, id string) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := s.db.GetContext(ctx, &reading, `
		SELECT mr.*, COALESCE(c.name, '') AS customer_name
		FROM meter_readings mr
		LEFT JOIN customers c ON mr.customer_id = c.id
		WHERE mr.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("meter reading not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// GetReadingsByCustomerID retrieves readings for a customer
func (s *Store) GetReadingsByCustomerID(ctx context.Context, customerID string) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.db.SelectContext(ctx, &readings,
		"SELECT * FROM meter_readings WHERE customer_id = $1 ORDER BY reading_date DESC", customerID)
	return readings, err
}

// GetLatestReadingByMeter retrieves the most recent reading for a meter.
// Returns nil when the meter has no readings yet.
func (s *Store) GetLatestReadingByMeter(ctx context.Context, meterNumber string) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := s.db.GetContext(ctx, &reading,
		"SELECT * FROM meter_readings WHERE meter_number = $1 ORDER BY reading_date DESC LIMIT 1", meterNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// CreateMeterReading inserts a new meter reading
func (s *Store) CreateMeterReading(ctx context.Context, r *models.MeterReading) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meter_readings (id, customer_id, meter_number, previous_reading, current_reading, consumption, reading_date, status, reader)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.CustomerID, r.MeterNumber, r.PreviousReading, r.CurrentReading, r.Consumption, r.ReadingDate, r.Status, r.Reader)
	return err
}

// UpdateMeterReading replaces the editable fields of a meter reading
func (s *Store) UpdateMeterReading(ctx context.Context, r *models.MeterReading) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE meter_readings
		SET customer_id = $1, meter_number = $2, previous_reading = $3, current_reading = $4,
			consumption = $5, reading_date = $6, status = $7, reader = $8
		WHERE id = $9`,
		r.CustomerID, r.MeterNumber, r.PreviousReading, r.CurrentReading,
		r.Consumption, r.ReadingDate, r.Status, r.Reader, r.ID)
	return err
}

// DeleteMeterReading deletes a meter reading by ID
func (s *Store) DeleteMeterReading(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM meter_readings WHERE id = $1", id)
	return err
}

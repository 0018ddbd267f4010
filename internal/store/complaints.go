package store

import (
	"context"
	"database/sql"
	"fmt"

	"waterbilling/internal/models"
)

// GetComplaints retrieves all complaints with customer names, newest first
func (s *Store) GetComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.SelectContext(ctx, &complaints, `
		SELECT cp.*, COALESCE(c.name, '') AS customer_name
		FROM complaints cp
		LEFT JOIN customers c ON cp.customer_id = c.id
		ORDER BY cp.created_at DESC`)
	return complaints, err
}

// GetComplaintByID retrieves a complaint by ID
func (s *Store) GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.db.GetContext(ctx, &complaint, `
		SELECT cp.*, COALESCE(c.name, '') AS customer_name
		FROM complaints cp
		LEFT JOIN customers c ON cp.customer_id = c.id
		WHERE cp.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("complaint not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// GetComplaintsByCustomerID retrieves complaints for a customer
func (s *Store) GetComplaintsByCustomerID(ctx context.Context, customerID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.SelectContext(ctx, &complaints,
		"SELECT * FROM complaints WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return complaints, err
}

// CreateComplaint inserts a new complaint
func (s *Store) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO complaints (id, customer_id, title, description, category, priority, status, assigned_to, resolution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CustomerID, c.Title, c.Description, c.Category, c.Priority, c.Status, c.AssignedTo, c.Resolution)
	return err
}

// UpdateComplaint replaces the editable fields of a complaint
func (s *Store) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE complaints
		SET customer_id = $1, title = $2, description = $3, category = $4, priority = $5,
			status = $6, assigned_to = $7, resolution = $8, updated_at = NOW()
		WHERE id = $9`,
		c.CustomerID, c.Title, c.Description, c.Category, c.Priority,
		c.Status, c.AssignedTo, c.Resolution, c.ID)
	return err
}

// DeleteComplaint deletes a complaint by ID
func (s *Store) DeleteComplaint(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM complaints WHERE id = $1", id)
	return err
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"waterbilling/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetCustomers retrieves all customers ordered by name
func (s *Store) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers, "SELECT * FROM customers ORDER BY name ASC")
	return customers, err
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchCustomers searches customers by name, phone or ID,
// case-insensitively
func (s *Store) SearchCustomers(ctx context.Context, keywords string) ([]models.Customer, error) {
	pattern := "%" + keywords + "%"
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers WHERE name ILIKE $1 OR phone ILIKE $2 OR id ILIKE $3 ORDER BY name ASC",
		pattern, pattern, pattern)
	return customers, err
}

// CreateCustomer inserts a new customer
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, address, meter_number, status, connection_date, last_reading, outstanding_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.MeterNumber, c.Status, c.ConnectionDate, c.LastReading, c.OutstandingAmount)
	return err
}

// UpdateCustomer replaces the editable fields of a customer
func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, address = $4, meter_number = $5, status = $6, updated_at = NOW()
		WHERE id = $7`,
		c.Name, c.Phone, c.Email, c.Address, c.MeterNumber, c.Status, c.ID)
	return err
}

// UpdateCustomerBalance sets a customer's outstanding amount
func (s *Store) UpdateCustomerBalance(ctx context.Context, customerID string, outstanding float64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE customers SET outstanding_amount = $1, updated_at = NOW() WHERE id = $2",
		outstanding, customerID)
	return err
}

// UpdateCustomerLastReading sets a customer's last recorded meter reading
func (s *Store) UpdateCustomerLastReading(ctx context.Context, customerID string, lastReading float64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE customers SET last_reading = $1, updated_at = NOW() WHERE id = $2",
		lastReading, customerID)
	return err
}

// DeleteCustomer deletes a customer by ID
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	return err
}

// GetUsers retrieves all users
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY email ASC")
	return users, err
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, role, customer_id) VALUES ($1, $2, $3, $4)",
		u.ID, u.Email, u.Role, u.CustomerID)
	return err
}

// UpdateUser replaces the editable fields of a user
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET email = $1, role = $2, customer_id = $3, updated_at = NOW() WHERE id = $4",
		u.Email, u.Role, u.CustomerID, u.ID)
	return err
}

// DeleteUser deletes a user by ID
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

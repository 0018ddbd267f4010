package service

import (
	"context"
	"errors"
	"testing"

	"waterbilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettlementStore struct {
	customer *models.Customer

	billStatusErr error
	customerErr   error
	balanceErr    error

	calls          []string
	billID         string
	billStatus     string
	balanceID      string
	balanceWritten float64
}

func (f *fakeSettlementStore) UpdateBillStatus(ctx context.Context, billID, status string) error {
	f.calls = append(f.calls, "bill")
	f.billID = billID
	f.billStatus = status
	return f.billStatusErr
}

func (f *fakeSettlementStore) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	f.calls = append(f.calls, "customer")
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	return f.customer, nil
}

func (f *fakeSettlementStore) UpdateCustomerBalance(ctx context.Context, customerID string, outstanding float64) error {
	f.calls = append(f.calls, "balance")
	f.balanceID = customerID
	f.balanceWritten = outstanding
	return f.balanceErr
}

func TestSettleOutstanding(t *testing.T) {
	assert.Equal(t, 300.0, settleOutstanding(500, 200))
}

func TestSettleOutstandingExactAmount(t *testing.T) {
	assert.Equal(t, 0.0, settleOutstanding(500, 500))
}

func TestSettleOutstandingOverpayment(t *testing.T) {
	// Overpayments floor the balance at zero rather than going negative
	assert.Equal(t, 0.0, settleOutstanding(500, 800))
}

func TestSettleMarksBillPaidAndDeductsBalance(t *testing.T) {
	store := &fakeSettlementStore{
		customer: &models.Customer{ID: "W1001", OutstandingAmount: 2000},
	}
	s := NewSettlement(store)

	payment := &models.Payment{
		ID:         "P2001",
		CustomerID: "W1001",
		BillID:     "B3001",
		Amount:     1500,
	}

	err := s.Settle(context.Background(), payment)
	require.NoError(t, err)

	assert.Equal(t, "B3001", store.billID)
	assert.Equal(t, models.BillStatusPaid, store.billStatus)
	assert.Equal(t, "W1001", store.balanceID)
	assert.Equal(t, 500.0, store.balanceWritten)
	// Bill write lands before the customer balance write
	assert.Equal(t, []string{"bill", "customer", "balance"}, store.calls)
}

func TestSettleOverpaymentFloorsBalance(t *testing.T) {
	store := &fakeSettlementStore{
		customer: &models.Customer{ID: "W1001", OutstandingAmount: 400},
	}
	s := NewSettlement(store)

	err := s.Settle(context.Background(), &models.Payment{
		ID: "P2002", CustomerID: "W1001", BillID: "B3002", Amount: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, store.balanceWritten)
}

func TestSettleStopsWhenBillUpdateFails(t *testing.T) {
	store := &fakeSettlementStore{
		customer:      &models.Customer{ID: "W1001", OutstandingAmount: 2000},
		billStatusErr: errors.New("bills table unavailable"),
	}
	s := NewSettlement(store)

	err := s.Settle(context.Background(), &models.Payment{
		ID: "P2003", CustomerID: "W1001", BillID: "B3003", Amount: 100,
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"bill"}, store.calls)
}

func TestSettleBillWriteSurvivesBalanceFailure(t *testing.T) {
	// The writes are sequential and not transactional: when the balance
	// update fails, the bill is already marked Paid and stays that way.
	store := &fakeSettlementStore{
		customer:   &models.Customer{ID: "W1001", OutstandingAmount: 2000},
		balanceErr: errors.New("customers table unavailable"),
	}
	s := NewSettlement(store)

	err := s.Settle(context.Background(), &models.Payment{
		ID: "P2004", CustomerID: "W1001", BillID: "B3004", Amount: 100,
	})

	assert.Error(t, err)
	assert.Equal(t, models.BillStatusPaid, store.billStatus)
	assert.Equal(t, []string{"bill", "customer", "balance"}, store.calls)
}

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
)

const (
	TestShopName     = "Test Laundry"
	TestShopLocation = "Jakarta, Indonesia"
)

// SeedLaundryAccount creates the singleton shop revenue account with a
// zero balance.
func SeedLaundryAccount(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO laundry_account (singleton, name, location, balance)
		 VALUES (TRUE, $1, $2, 0)
		 ON CONFLICT (singleton) DO NOTHING`,
		TestShopName, TestShopLocation,
	)
	if err != nil {
		t.Fatalf("seed laundry account: %v", err)
	}
}

func SeedCustomer(t *testing.T, db *sql.DB, name, contact string, balance decimal.Decimal) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Contact:   contact,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO customers (id, name, contact, balance, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		customer.ID, customer.Name, customer.Contact, customer.Balance, customer.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", name, err)
	}
	return customer
}

func GetCustomerBalance(t *testing.T, db *sql.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM customers WHERE id = $1`, id).Scan(&balance); err != nil {
		t.Fatalf("get customer balance: %v", err)
	}
	return balance
}

func GetLaundryBalance(t *testing.T, db *sql.DB) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM laundry_account WHERE singleton`).Scan(&balance); err != nil {
		t.Fatalf("get laundry balance: %v", err)
	}
	return balance
}

func GetTransactionStatus(t *testing.T, db *sql.DB, id uuid.UUID) domain.TransactionStatus {
	t.Helper()

	var status domain.TransactionStatus
	if err := db.QueryRow(`SELECT status FROM transactions WHERE id = $1`, id).Scan(&status); err != nil {
		t.Fatalf("get transaction status: %v", err)
	}
	return status
}

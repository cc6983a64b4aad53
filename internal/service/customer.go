package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

type customerRepo interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	GetByNameForUpdate(ctx context.Context, tx *sql.Tx, name string) (*domain.Customer, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal) error
}

type CustomerService struct {
	customers customerRepo
	db        *sql.DB
}

func NewCustomerService(customers customerRepo, db *sql.DB) *CustomerService {
	return &CustomerService{customers: customers, db: db}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name, contact string) (*domain.Customer, error) {
	log := logging.FromContext(ctx)

	_, err := s.customers.GetByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("CreateCustomer: %w", domain.ErrCustomerExists)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("CreateCustomer: check existing: %w", err)
	}

	customer := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Contact:   contact,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	// The unique index on name backstops the existence probe, so a
	// racing duplicate still surfaces as ErrCustomerExists.
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("CreateCustomer: %w", err)
	}

	log.Info("customer created", "customer_id", customer.ID, "name", customer.Name)

	return customer, nil
}

func (s *CustomerService) GetBalance(ctx context.Context, name string) (decimal.Decimal, error) {
	customer, err := s.customers.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("GetBalance: %w", domain.ErrCustomerNotFound)
		}
		return decimal.Zero, fmt.Errorf("GetBalance: %w", err)
	}
	return customer.Balance, nil
}

// AdjustBalance applies a manual deposit or withdrawal. The delta is
// added unconditionally: this path carries no solvency floor and may
// leave the balance negative. Only transaction debits enforce
// sufficiency.
func (s *CustomerService) AdjustBalance(ctx context.Context, name string, delta decimal.Decimal) (decimal.Decimal, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("AdjustBalance: begin tx: %w", err)
	}
	defer tx.Rollback()

	customer, err := s.customers.GetByNameForUpdate(ctx, tx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("AdjustBalance: %w", domain.ErrCustomerNotFound)
		}
		return decimal.Zero, fmt.Errorf("AdjustBalance: %w", err)
	}

	newBalance := customer.Balance.Add(delta)
	if err := s.customers.UpdateBalance(ctx, tx, customer.ID, newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("AdjustBalance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("AdjustBalance: commit: %w", err)
	}

	log.Info("balance adjusted",
		"customer_id", customer.ID,
		"name", customer.Name,
		"delta", delta,
		"balance", newBalance,
	)

	return newBalance, nil
}

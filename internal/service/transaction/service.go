// Package transaction implements the order lifecycle: a transaction is
// created pending with the customer debited up front, moves forward
// through ongoing and ready, and ends either completed (price
// recognized as shop revenue) or cancelled from pending (price
// refunded). Every transition applies its balance effect and its
// status change inside one database transaction.
package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
)

type transactionRepo interface {
	Create(ctx context.Context, tx *sql.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status domain.TransactionStatus) error
	UpdatePricing(ctx context.Context, tx *sql.Tx, id uuid.UUID, weight, price decimal.Decimal) error
}

type customerRepo interface {
	GetByNameForUpdate(ctx context.Context, tx *sql.Tx, name string) (*domain.Customer, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Customer, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal) error
}

type laundryRepo interface {
	Get(ctx context.Context) (*domain.LaundryAccount, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx) (*domain.LaundryAccount, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, newBalance decimal.Decimal) error
}

type priceCalculator interface {
	Price(weight decimal.Decimal, service domain.ServiceType, txnType domain.TransactionType) decimal.Decimal
}

type Service struct {
	transactions transactionRepo
	customers    customerRepo
	laundry      laundryRepo
	pricing      priceCalculator
	db           *sql.DB
}

func NewService(
	transactions transactionRepo,
	customers customerRepo,
	laundry laundryRepo,
	pricing priceCalculator,
	db *sql.DB,
) *Service {
	return &Service{
		transactions: transactions,
		customers:    customers,
		laundry:      laundry,
		pricing:      pricing,
		db:           db,
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return txn, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return txns, nil
}

func (s *Service) LaundryBalance(ctx context.Context) (*domain.LaundryAccount, error) {
	account, err := s.laundry.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("LaundryBalance: %w", err)
	}
	return account, nil
}

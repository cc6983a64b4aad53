package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

type CreateRequest struct {
	CustomerName string
	Weight       decimal.Decimal
	Type         domain.TransactionType
	Service      domain.ServiceType
}

// Create opens a pending transaction and reserves its price from the
// customer's balance. If the balance cannot cover the price nothing is
// written.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := validateOrderParams(req.Weight, req.Service, req.Type); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	customer, err := s.customers.GetByNameForUpdate(ctx, tx, req.CustomerName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Create: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("Create: %w", err)
	}

	price := s.pricing.Price(req.Weight, req.Service, req.Type)
	if customer.Balance.LessThan(price) {
		return nil, fmt.Errorf("Create: %w", domain.ErrInsufficientBalance)
	}

	txn := &domain.Transaction{
		ID:         uuid.New(),
		Date:       time.Now().UTC(),
		Status:     domain.StatusPending,
		CustomerID: customer.ID,
		Price:      price,
		Type:       req.Type,
		Service:    req.Service,
		Weight:     req.Weight,
	}

	if err := s.transactions.Create(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	if err := s.customers.UpdateBalance(ctx, tx, customer.ID, customer.Balance.Sub(price)); err != nil {
		return nil, fmt.Errorf("Create: debit customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	log.Info("transaction created",
		"transaction_id", txn.ID,
		"customer_id", customer.ID,
		"price", price,
		"weight", req.Weight,
		"service_type", req.Service,
		"transaction_type", req.Type,
	)

	return txn, nil
}

func validateOrderParams(weight decimal.Decimal, service domain.ServiceType, txnType domain.TransactionType) error {
	if !weight.IsPositive() {
		return fmt.Errorf("weight must be positive: %w", domain.ErrInvalidRequest)
	}
	if !service.IsValid() {
		return fmt.Errorf("unknown service type %q: %w", service, domain.ErrInvalidRequest)
	}
	if txnType != domain.TypeRegular && txnType != domain.TypeExpress {
		return fmt.Errorf("unknown transaction type %q: %w", txnType, domain.ErrInvalidRequest)
	}
	return nil
}

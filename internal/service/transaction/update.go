package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

type UpdateRequest struct {
	CustomerName  string
	TransactionID uuid.UUID
	Weight        decimal.Decimal
	Type          domain.TransactionType
	Service       domain.ServiceType
}

// Update reprices a pending transaction: the old price is returned to
// the customer and the new price debited, as one atomic step. If the
// refunded balance still cannot cover the new price the whole edit is
// abandoned and neither the transaction nor the balance changes.
//
// Only weight and price are rewritten; the stored service and
// transaction type keep their creation values even though the new
// price reflects the requested ones.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := validateOrderParams(req.Weight, req.Service, req.Type); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Update: begin tx: %w", err)
	}
	defer tx.Rollback()

	customer, err := s.customers.GetByNameForUpdate(ctx, tx, req.CustomerName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Update: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}

	txn, err := s.transactions.GetForUpdate(ctx, tx, req.TransactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Update: %w", domain.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}

	if txn.CustomerID != customer.ID {
		return nil, fmt.Errorf("Update: %w", domain.ErrNotOwner)
	}
	if txn.Status != domain.StatusPending {
		return nil, fmt.Errorf("Update: %w", &domain.InvalidStateError{
			TransactionID: txn.ID,
			Status:        txn.Status,
		})
	}

	newPrice := s.pricing.Price(req.Weight, req.Service, req.Type)

	// Balance as it would stand after refunding the old reservation.
	refunded := customer.Balance.Add(txn.Price)
	if refunded.LessThan(newPrice) {
		return nil, fmt.Errorf("Update: %w", domain.ErrInsufficientBalance)
	}

	if err := s.transactions.UpdatePricing(ctx, tx, txn.ID, req.Weight, newPrice); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if err := s.customers.UpdateBalance(ctx, tx, customer.ID, refunded.Sub(newPrice)); err != nil {
		return nil, fmt.Errorf("Update: redebit customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Update: commit: %w", err)
	}

	log.Info("transaction repriced",
		"transaction_id", txn.ID,
		"customer_id", customer.ID,
		"old_price", txn.Price,
		"new_price", newPrice,
		"weight", req.Weight,
	)

	txn.Weight = req.Weight
	txn.Price = newPrice
	return txn, nil
}

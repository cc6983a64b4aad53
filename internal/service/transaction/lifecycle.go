package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

// CarryOn moves a pending transaction into ongoing: work has started.
// No balance effect; the price was reserved at creation.
func (s *Service) CarryOn(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.advance(ctx, id, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("CarryOn: %w", err)
	}
	return txn, nil
}

// FinishWorking moves an ongoing transaction into ready for pickup.
func (s *Service) FinishWorking(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.advance(ctx, id, domain.StatusOngoing)
	if err != nil {
		return nil, fmt.Errorf("FinishWorking: %w", err)
	}
	return txn, nil
}

// advance performs a status-only forward transition. The transaction
// must currently be in the required status.
func (s *Service) advance(ctx context.Context, id uuid.UUID, required domain.TransactionStatus) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("advance: begin tx: %w", err)
	}
	defer tx.Rollback()

	txn, err := s.lockTransaction(ctx, tx, id, required)
	if err != nil {
		return nil, fmt.Errorf("advance: %w", err)
	}

	next, ok := domain.NextStatus(txn.Status)
	if !ok {
		return nil, fmt.Errorf("advance: %w", &domain.InvalidStateError{
			TransactionID: txn.ID,
			Status:        txn.Status,
		})
	}

	if err := s.transactions.UpdateStatus(ctx, tx, txn.ID, next); err != nil {
		return nil, fmt.Errorf("advance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("advance: commit: %w", err)
	}

	log.Info("transaction advanced", "transaction_id", txn.ID, "from", txn.Status, "to", next)

	txn.Status = next
	return txn, nil
}

// Finish completes a ready transaction and recognizes its price as
// shop revenue. Status change and laundry credit commit together.
func (s *Service) Finish(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Finish: begin tx: %w", err)
	}
	defer tx.Rollback()

	txn, err := s.lockTransaction(ctx, tx, id, domain.StatusReady)
	if err != nil {
		return nil, fmt.Errorf("Finish: %w", err)
	}

	account, err := s.laundry.GetForUpdate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("Finish: %w", err)
	}

	if err := s.transactions.UpdateStatus(ctx, tx, txn.ID, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("Finish: %w", err)
	}
	if err := s.laundry.UpdateBalance(ctx, tx, account.Balance.Add(txn.Price)); err != nil {
		return nil, fmt.Errorf("Finish: credit laundry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Finish: commit: %w", err)
	}

	log.Info("transaction completed",
		"transaction_id", txn.ID,
		"price", txn.Price,
		"revenue", account.Balance.Add(txn.Price),
	)

	txn.Status = domain.StatusCompleted
	return txn, nil
}

// Cancel aborts a pending transaction and refunds the reserved price
// to the customer. Once work has started cancellation is not allowed.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Cancel: begin tx: %w", err)
	}
	defer tx.Rollback()

	txn, err := s.lockTransaction(ctx, tx, id, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("Cancel: %w", err)
	}

	customer, err := s.customers.GetForUpdate(ctx, tx, txn.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("Cancel: %w", err)
	}

	if err := s.transactions.UpdateStatus(ctx, tx, txn.ID, domain.StatusCancelled); err != nil {
		return nil, fmt.Errorf("Cancel: %w", err)
	}
	if err := s.customers.UpdateBalance(ctx, tx, customer.ID, customer.Balance.Add(txn.Price)); err != nil {
		return nil, fmt.Errorf("Cancel: refund customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Cancel: commit: %w", err)
	}

	log.Info("transaction cancelled",
		"transaction_id", txn.ID,
		"customer_id", customer.ID,
		"refund", txn.Price,
	)

	txn.Status = domain.StatusCancelled
	return txn, nil
}

// lockTransaction fetches the transaction under a row lock and checks
// it is in the status the transition requires.
func (s *Service) lockTransaction(ctx context.Context, tx *sql.Tx, id uuid.UUID, required domain.TransactionStatus) (*domain.Transaction, error) {
	txn, err := s.transactions.GetForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	if txn.Status != required {
		return nil, &domain.InvalidStateError{
			TransactionID: txn.ID,
			Status:        txn.Status,
		}
	}

	return txn, nil
}

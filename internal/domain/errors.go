package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCustomerExists      = errors.New("customer already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidState        = errors.New("operation not permitted in current status")
	ErrNotOwner            = errors.New("transaction does not belong to this customer")
	ErrInvalidRequest      = errors.New("invalid request")
)

// InvalidStateError reports a lifecycle operation attempted against a
// transaction whose current status does not permit it. It unwraps to
// ErrInvalidState so services match with errors.Is while the handler
// layer still has the id and status for the response text.
type InvalidStateError struct {
	TransactionID uuid.UUID
	Status        TransactionStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("transaction %s is %s", e.TransactionID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

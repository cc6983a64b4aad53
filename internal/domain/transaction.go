package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusOngoing   TransactionStatus = "ongoing"
	StatusReady     TransactionStatus = "ready"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

type ServiceType string

const (
	ServiceFullService ServiceType = "full_service"
	ServiceWashOnly    ServiceType = "wash_only"
	ServiceIronedOnly  ServiceType = "ironed_only"
)

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceFullService, ServiceWashOnly, ServiceIronedOnly:
		return true
	}
	return false
}

type TransactionType string

const (
	TypeRegular TransactionType = "regular"
	TypeExpress TransactionType = "express"
)

// Transaction is a single laundry order. Date and CustomerID are fixed
// at creation; Price and Weight change only through an edit while the
// transaction is still pending. Completed and cancelled transactions
// are immutable.
type Transaction struct {
	ID         uuid.UUID
	Date       time.Time
	Status     TransactionStatus
	CustomerID uuid.UUID
	Price      decimal.Decimal
	Type       TransactionType
	Service    ServiceType
	Weight     decimal.Decimal
}

// Lifecycle transitions, keyed by the status an operation requires the
// transaction to currently be in. Completed and cancelled are terminal.
var (
	transitions = map[TransactionStatus]TransactionStatus{
		StatusPending: StatusOngoing,
		StatusOngoing: StatusReady,
		StatusReady:   StatusCompleted,
	}
)

// NextStatus returns the forward-lifecycle successor of from, or false
// for terminal states. Cancellation is not a forward transition; it is
// only reachable from pending and handled separately.
func NextStatus(from TransactionStatus) (TransactionStatus, bool) {
	next, ok := transitions[from]
	return next, ok
}

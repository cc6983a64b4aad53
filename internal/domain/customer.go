package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer names are unique (case-sensitive) and act as the lookup key
// at the API boundary; the uuid is the storage key.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Contact   string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

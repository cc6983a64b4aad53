package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
)

func TestValidateOrderParams(t *testing.T) {
	tests := []struct {
		name    string
		weight  decimal.Decimal
		service domain.ServiceType
		txnType domain.TransactionType
		wantErr error
	}{
		{
			name:    "valid regular full service",
			weight:  decimal.NewFromInt(2),
			service: domain.ServiceFullService,
			txnType: domain.TypeRegular,
		},
		{
			name:    "valid express ironed only",
			weight:  decimal.RequireFromString("0.5"),
			service: domain.ServiceIronedOnly,
			txnType: domain.TypeExpress,
		},
		{
			name:    "zero weight",
			weight:  decimal.Zero,
			service: domain.ServiceWashOnly,
			txnType: domain.TypeRegular,
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "negative weight",
			weight:  decimal.NewFromInt(-1),
			service: domain.ServiceWashOnly,
			txnType: domain.TypeRegular,
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "unknown service type",
			weight:  decimal.NewFromInt(1),
			service: domain.ServiceType("dry_clean"),
			txnType: domain.TypeRegular,
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "unknown transaction type",
			weight:  decimal.NewFromInt(1),
			service: domain.ServiceWashOnly,
			txnType: domain.TransactionType("priority"),
			wantErr: domain.ErrInvalidRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateOrderParams(tc.weight, tc.service, tc.txnType)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

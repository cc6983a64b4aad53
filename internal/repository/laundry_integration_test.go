package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkanharyo/laundry-ledger/internal/repository"
	"github.com/arkanharyo/laundry-ledger/internal/testutil"
)

func TestLaundryInit_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLaundryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx, "Sudirman Laundry", "Jakarta, Indonesia"))

	account, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sudirman Laundry", account.Name)
	assert.Equal(t, "Jakarta, Indonesia", account.Location)
	assert.True(t, account.Balance.IsZero())

	// Accumulate some revenue, then simulate a restart: Init must not
	// reset the balance or reshape the row.
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repo.GetForUpdate(ctx, tx)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateBalance(ctx, tx, decimal.NewFromInt(45000)))
	require.NoError(t, tx.Commit())

	require.NoError(t, repo.Init(ctx, "Sudirman Laundry", "Jakarta, Indonesia"))

	account, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(45000)), "got %s", account.Balance)
}

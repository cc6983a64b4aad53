package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/repository"
	"github.com/arkanharyo/laundry-ledger/internal/testutil"
)

// The unique index is the authority on duplicate names: inserting past
// the service-level existence probe still fails cleanly.
func TestCustomerCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	first := &domain.Customer{
		ID:        uuid.New(),
		Name:      "budi",
		Contact:   "0811-111",
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &domain.Customer{
		ID:        uuid.New(),
		Name:      "budi",
		Contact:   "0811-999",
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, domain.ErrCustomerExists)
}

func TestCustomerGetByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedCustomer(t, db, "sari", "0811-222", decimal.NewFromInt(5000))

	got, err := repo.GetByName(ctx, "sari")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, got.ID)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(5000)))

	_, err = repo.GetByName(ctx, "SARI")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

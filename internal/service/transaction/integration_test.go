package transaction_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/pricing"
	"github.com/arkanharyo/laundry-ledger/internal/repository"
	"github.com/arkanharyo/laundry-ledger/internal/service/transaction"
	"github.com/arkanharyo/laundry-ledger/internal/testutil"
)

func setupService(t *testing.T, db *sql.DB) *transaction.Service {
	t.Helper()
	return transaction.NewService(
		repository.NewTransactionRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewLaundryRepository(db),
		pricing.NewEngine(8000, 6000, 1.5),
		db,
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s (%v)", want, got, msgAndArgs)
}

func fullServiceOrder(name string, weight string) transaction.CreateRequest {
	return transaction.CreateRequest{
		CustomerName: name,
		Weight:       dec(weight),
		Type:         domain.TypeRegular,
		Service:      domain.ServiceFullService,
	}
}

func TestCreate_ReservesPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "budi", "0811-111", dec("50000"))

	txn, err := svc.Create(ctx, fullServiceOrder("budi", "2"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, txn.Status)
	assert.Equal(t, customer.ID, txn.CustomerID)
	assertDecimal(t, dec("16000"), txn.Price)
	assert.False(t, txn.Date.IsZero())

	assertDecimal(t, dec("34000"), testutil.GetCustomerBalance(t, db, customer.ID))
	assertDecimal(t, dec("0"), testutil.GetLaundryBalance(t, db))
}

func TestCreate_InsufficientBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "sari", "0811-222", dec("1000"))

	_, err := svc.Create(ctx, fullServiceOrder("sari", "2"))
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nothing reserved, nothing written.
	assertDecimal(t, dec("1000"), testutil.GetCustomerBalance(t, db, customer.ID))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)

	_, err := svc.Create(context.Background(), fullServiceOrder("nobody", "1"))
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLifecycle_RevenueRecognition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "budi", "0811-111", dec("50000"))

	txn, err := svc.Create(ctx, fullServiceOrder("budi", "2"))
	require.NoError(t, err)
	balanceAfterCreate := testutil.GetCustomerBalance(t, db, customer.ID)
	assertDecimal(t, dec("34000"), balanceAfterCreate)

	stepped, err := svc.CarryOn(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, stepped.Status)

	stepped, err = svc.FinishWorking(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stepped.Status)

	// Customer balance untouched by the status-only transitions.
	assertDecimal(t, balanceAfterCreate, testutil.GetCustomerBalance(t, db, customer.ID))
	assertDecimal(t, dec("0"), testutil.GetLaundryBalance(t, db))

	stepped, err = svc.Finish(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stepped.Status)

	// Completion moves exactly the price into shop revenue and leaves
	// the customer balance where the reservation put it.
	assertDecimal(t, dec("16000"), testutil.GetLaundryBalance(t, db))
	assertDecimal(t, balanceAfterCreate, testutil.GetCustomerBalance(t, db, customer.ID))
	assert.Equal(t, domain.StatusCompleted, testutil.GetTransactionStatus(t, db, txn.ID))
}

func TestCancel_RefundsExactly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "budi", "0811-111", dec("50000"))

	txn, err := svc.Create(ctx, fullServiceOrder("budi", "2"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	assertDecimal(t, dec("50000"), testutil.GetCustomerBalance(t, db, customer.ID))
	assertDecimal(t, dec("0"), testutil.GetLaundryBalance(t, db))
	assert.Equal(t, domain.StatusCancelled, testutil.GetTransactionStatus(t, db, txn.ID))
}

func TestIllegalTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "budi", "0811-111", dec("100000"))

	txn, err := svc.Create(ctx, fullServiceOrder("budi", "2"))
	require.NoError(t, err)
	balanceAfterCreate := testutil.GetCustomerBalance(t, db, customer.ID)

	// A pending transaction cannot skip ahead.
	_, err = svc.FinishWorking(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.Finish(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = svc.CarryOn(ctx, txn.ID)
	require.NoError(t, err)

	// Once work has started the transaction cannot be cancelled,
	// restarted, or completed early.
	_, err = svc.Cancel(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.CarryOn(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.Finish(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	// The failed calls changed nothing.
	assert.Equal(t, domain.StatusOngoing, testutil.GetTransactionStatus(t, db, txn.ID))
	assertDecimal(t, balanceAfterCreate, testutil.GetCustomerBalance(t, db, customer.ID))
	assertDecimal(t, dec("0"), testutil.GetLaundryBalance(t, db))

	var stateErr *domain.InvalidStateError
	_, err = svc.Cancel(ctx, txn.ID)
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, txn.ID, stateErr.TransactionID)
	assert.Equal(t, domain.StatusOngoing, stateErr.Status)
}

func TestFinish_IsTerminal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	testutil.SeedCustomer(t, db, "budi", "0811-111", dec("50000"))

	txn, err := svc.Create(ctx, fullServiceOrder("budi", "1"))
	require.NoError(t, err)

	_, err = svc.CarryOn(ctx, txn.ID)
	require.NoError(t, err)
	_, err = svc.FinishWorking(ctx, txn.ID)
	require.NoError(t, err)
	_, err = svc.Finish(ctx, txn.ID)
	require.NoError(t, err)

	// Completed is terminal; a second finish must not double-count
	// revenue.
	_, err = svc.Finish(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assertDecimal(t, dec("8000"), testutil.GetLaundryBalance(t, db))
}

func TestTransitions_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	missing := uuid.New()
	for name, op := range map[string]func(context.Context, uuid.UUID) (*domain.Transaction, error){
		"carry on":       svc.CarryOn,
		"finish working": svc.FinishWorking,
		"finish":         svc.Finish,
		"cancel":         svc.Cancel,
	} {
		_, err := op(ctx, missing)
		require.ErrorIs(t, err, domain.ErrTransactionNotFound, name)
	}
}

func TestQueries_AreIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedLaundryAccount(t, db)
	svc := setupService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "budi", "0811-111", dec("50000"))

	created, err := svc.Create(ctx, fullServiceOrder("budi", "2"))
	require.NoError(t, err)

	first, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	listA, err := svc.List(ctx)
	require.NoError(t, err)
	listB, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, listA, listB)
	require.Len(t, listA, 1)
	assert.Equal(t, created.ID, listA[0].ID)

	_, err = svc.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	// Reads mutated nothing.
	assertDecimal(t, dec("34000"), testutil.GetCustomerBalance(t, db, customer.ID))
	assert.Equal(t, domain.StatusPending, testutil.GetTransactionStatus(t, db, created.ID))
}

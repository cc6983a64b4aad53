package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
)

type LaundryRepository struct {
	db *sql.DB
}

func NewLaundryRepository(db *sql.DB) *LaundryRepository {
	return &LaundryRepository{db: db}
}

// Init creates the singleton revenue account row if it does not exist
// yet. A restart never resets the accumulated balance.
func (r *LaundryRepository) Init(ctx context.Context, name, location string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO laundry_account (singleton, name, location, balance)
		VALUES (TRUE, $1, $2, 0)
		ON CONFLICT (singleton) DO NOTHING`,
		name, location,
	)
	if err != nil {
		return fmt.Errorf("Init: %w", err)
	}
	return nil
}

func (r *LaundryRepository) Get(ctx context.Context) (*domain.LaundryAccount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, location, balance FROM laundry_account WHERE singleton`,
	)
	a, err := scanLaundry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

func (r *LaundryRepository) GetForUpdate(ctx context.Context, tx *sql.Tx) (*domain.LaundryAccount, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT name, location, balance FROM laundry_account WHERE singleton FOR UPDATE`,
	)
	a, err := scanLaundry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return a, nil
}

func (r *LaundryRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, newBalance decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE laundry_account SET balance = $1 WHERE singleton`,
		newBalance,
	)
	if err != nil {
		return fmt.Errorf("UpdateBalance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateBalance: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateBalance: %w", domain.ErrNotFound)
	}
	return nil
}

func scanLaundry(s scanner) (*domain.LaundryAccount, error) {
	var a domain.LaundryAccount
	if err := s.Scan(&a.Name, &a.Location, &a.Balance); err != nil {
		return nil, err
	}
	return &a, nil
}

// Package pgstore keeps the ledger in PostgreSQL, one household per scope.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/store/csvstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id           TEXT PRIMARY KEY,
	household_id TEXT NOT NULL,
	amount       NUMERIC(14,2) NOT NULL CHECK (amount > 0),
	category     TEXT NOT NULL,
	description  TEXT NOT NULL,
	date         DATE NOT NULL,
	currency     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS transactions_household_date ON transactions (household_id, date);

CREATE TABLE IF NOT EXISTS income (
	id           TEXT PRIMARY KEY,
	household_id TEXT NOT NULL,
	amount       NUMERIC(14,2) NOT NULL CHECK (amount > 0),
	source       TEXT NOT NULL,
	category     TEXT NOT NULL,
	date         DATE NOT NULL,
	currency     TEXT NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS income_household_date ON income (household_id, date);
`

// Store reads and writes one household's records.
type Store struct {
	pool      *pgxpool.Pool
	household string
}

// Open connects to dsn and ensures the schema exists.
func Open(ctx context.Context, dsn, householdID string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	s := New(pool, householdID)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, householdID string) *Store {
	return &Store{pool: pool, household: householdID}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Transactions returns the household's expense records ordered by date.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, amount::text, category, description, date, currency, created_at, updated_at
		FROM transactions WHERE household_id = $1 ORDER BY date, created_at, id`, s.household)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var (
			t        model.Transaction
			amount   string
			category string
			currency string
		)
		if err := rows.Scan(&t.ID, &amount, &category, &t.Description, &t.Date, &currency, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("transaction %s amount %q: %w", t.ID, amount, err)
		}
		t.Category = model.ExpenseCategory(category)
		t.Currency = model.Currency(currency)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return out, nil
}

// Income returns the household's income records ordered by date.
func (s *Store) Income(ctx context.Context) ([]model.Income, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, amount::text, source, category, date, currency, notes, created_at, updated_at
		FROM income WHERE household_id = $1 ORDER BY date, created_at, id`, s.household)
	if err != nil {
		return nil, fmt.Errorf("querying income: %w", err)
	}
	defer rows.Close()

	var out []model.Income
	for rows.Next() {
		var (
			i        model.Income
			amount   string
			category string
			currency string
		)
		if err := rows.Scan(&i.ID, &amount, &i.Source, &category, &i.Date, &currency, &i.Notes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}
		if i.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("income %s amount %q: %w", i.ID, amount, err)
		}
		i.Category = model.IncomeCategory(category)
		i.Currency = model.Currency(currency)
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading income: %w", err)
	}
	return out, nil
}

// InsertTransactions validates the records like the CSV ledger does, then
// writes them all in one database transaction.
func (s *Store) InsertTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := csvstore.Join(csvstore.CheckTransactions(txns)); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, t := range txns {
			_, err := tx.Exec(ctx, `
				INSERT INTO transactions (id, household_id, amount, category, description, date, currency, created_at, updated_at)
				VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9)`,
				t.ID, s.household, t.Amount.StringFixed(2), string(t.Category), t.Description,
				t.Date, string(t.Currency), t.CreatedAt, t.UpdatedAt)
			if err != nil {
				return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// InsertIncome validates and writes income records like InsertTransactions.
func (s *Store) InsertIncome(ctx context.Context, income []model.Income) error {
	if err := csvstore.Join(csvstore.CheckIncome(income)); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, i := range income {
			_, err := tx.Exec(ctx, `
				INSERT INTO income (id, household_id, amount, source, category, date, currency, notes, created_at, updated_at)
				VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10)`,
				i.ID, s.household, i.Amount.StringFixed(2), i.Source, string(i.Category),
				i.Date, string(i.Currency), i.Notes, i.CreatedAt, i.UpdatedAt)
			if err != nil {
				return fmt.Errorf("inserting income %s: %w", i.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

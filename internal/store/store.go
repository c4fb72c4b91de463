// Package store selects the backend that holds committed records.
package store

import (
	"context"
	"fmt"
	"os"

	"github.com/tally-home/tally/internal/config"
	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/store/csvstore"
	"github.com/tally-home/tally/internal/store/pgstore"
)

// Store reads existing records for duplicate detection and persists
// accepted ones.
type Store interface {
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Income(ctx context.Context) ([]model.Income, error)
	InsertTransactions(ctx context.Context, txns []model.Transaction) error
	InsertIncome(ctx context.Context, income []model.Income) error
	Close()
}

var (
	_ Store = (*csvstore.Store)(nil)
	_ Store = (*pgstore.Store)(nil)
)

// Open returns the backend named by cfg. root is the data directory used
// by the csv driver.
func Open(ctx context.Context, cfg *config.Config, root string) (Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverCSV, "":
		return csvstore.New(root), nil
	case config.DriverPostgres:
		dsn := os.Getenv(cfg.Storage.DSNEnv)
		if dsn == "" {
			return nil, fmt.Errorf("storage driver %s needs $%s", config.DriverPostgres, cfg.Storage.DSNEnv)
		}
		s, err := pgstore.Open(ctx, dsn, cfg.Household.ID)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Existing loads both record kinds.
func Existing(ctx context.Context, s Store) ([]model.Transaction, []model.Income, error) {
	txns, err := s.Transactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	inc, err := s.Income(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading income: %w", err)
	}
	return txns, inc, nil
}

// Insert persists both record kinds, expenses first.
func Insert(ctx context.Context, s Store, txns []model.Transaction, income []model.Income) error {
	if len(txns) > 0 {
		if err := s.InsertTransactions(ctx, txns); err != nil {
			return fmt.Errorf("saving transactions: %w", err)
		}
	}
	if len(income) > 0 {
		if err := s.InsertIncome(ctx, income); err != nil {
			return fmt.Errorf("saving income: %w", err)
		}
	}
	return nil
}

// Package csvstore keeps the ledger as month-partitioned CSV files under
// <root>/ledger/YYYY/MM/.
package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tally-home/tally/internal/model"
)

const (
	ledgerDir        = "ledger"
	transactionsFile = "transactions.csv"
	incomeFile       = "income.csv"
)

// Store reads and appends ledger files. Writes are serialized within one
// process.
type Store struct {
	root string
	mu   sync.Mutex
}

// New creates a Store rooted at the data directory.
func New(root string) *Store {
	return &Store{root: root}
}

type monthKey struct{ year, month int }

// Transactions returns every stored expense record, oldest month first.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return readAll(ctx, s.root, transactionsFile, ReadTransactions)
}

// Income returns every stored income record, oldest month first.
func (s *Store) Income(ctx context.Context) ([]model.Income, error) {
	return readAll(ctx, s.root, incomeFile, ReadIncome)
}

// InsertTransactions validates txns together with the records already in
// their months and appends them. Nothing is written if any month fails
// validation or cannot be staged.
func (s *Store) InsertTransactions(ctx context.Context, txns []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[monthKey][]model.Transaction)
	for _, t := range txns {
		k := monthKey{t.Date.Year(), int(t.Date.Month())}
		groups[k] = append(groups[k], t)
	}

	var verrs []ValidationError
	for k, batch := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		existing, err := readFile(s.monthPath(k, transactionsFile), ReadTransactions)
		if err != nil {
			return err
		}
		verrs = append(verrs, ValidateTransactions(append(existing, batch...), k.year, k.month)...)
	}
	if err := Join(verrs); err != nil {
		return err
	}

	rows := make(map[monthKey][][]string, len(groups))
	for k, batch := range groups {
		for _, t := range batch {
			rows[k] = append(rows[k], MarshalTransaction(t))
		}
	}
	return s.write(transactionsFile, TransactionHeader, rows)
}

// InsertIncome validates and appends income records like InsertTransactions.
func (s *Store) InsertIncome(ctx context.Context, income []model.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[monthKey][]model.Income)
	for _, i := range income {
		k := monthKey{i.Date.Year(), int(i.Date.Month())}
		groups[k] = append(groups[k], i)
	}

	var verrs []ValidationError
	for k, batch := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		existing, err := readFile(s.monthPath(k, incomeFile), ReadIncome)
		if err != nil {
			return err
		}
		verrs = append(verrs, ValidateIncome(append(existing, batch...), k.year, k.month)...)
	}
	if err := Join(verrs); err != nil {
		return err
	}

	rows := make(map[monthKey][][]string, len(groups))
	for k, batch := range groups {
		for _, i := range batch {
			rows[k] = append(rows[k], MarshalIncome(i))
		}
	}
	return s.write(incomeFile, IncomeHeader, rows)
}

// Close is a no-op; it satisfies the store interface.
func (s *Store) Close() {}

// write adds rows to the named file of each month. Every month is staged to
// a temporary file first; the ledger changes only once all of them are
// written. A failed rename after that point can still leave earlier months
// updated.
func (s *Store) write(name, header string, rows map[monthKey][][]string) error {
	type staged struct{ tmp, path string }
	var done []staged
	discard := func() {
		for _, st := range done {
			os.Remove(st.tmp)
		}
	}
	for _, k := range sortedKeys(rows) {
		path := s.monthPath(k, name)
		tmp, err := stageRows(path, header, rows[k])
		if err != nil {
			discard()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		done = append(done, staged{tmp: tmp, path: path})
	}
	for n, st := range done {
		if err := os.Rename(st.tmp, st.path); err != nil {
			for _, rest := range done[n:] {
				os.Remove(rest.tmp)
			}
			return fmt.Errorf("replacing %s: %w", st.path, err)
		}
	}
	return nil
}

func (s *Store) monthPath(k monthKey, name string) string {
	return filepath.Join(s.root, ledgerDir, fmt.Sprintf("%04d", k.year), fmt.Sprintf("%02d", k.month), name)
}

func sortedKeys[T any](m map[monthKey]T) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	return keys
}

// readAll collects every month file named name under the ledger directory.
func readAll[T any](ctx context.Context, root, name string, read func(io.Reader) ([]T, error)) ([]T, error) {
	var paths []string
	err := filepath.WalkDir(filepath.Join(root, ledgerDir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ledger: %w", err)
	}
	// YYYY/MM paths sort chronologically.
	sort.Strings(paths)

	var out []T
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readFile(p, read)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

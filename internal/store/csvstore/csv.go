package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-home/tally/internal/model"
)

// Headers for the per-month ledger files.
const (
	TransactionHeader = "id,date,amount,currency,category,description,created_at,updated_at"
	IncomeHeader      = "id,date,amount,currency,category,source,notes,created_at,updated_at"
)

const (
	dateFormat = "2006-01-02"
	tsFormat   = time.RFC3339
)

const (
	txFields   = 8
	txColID    = 0
	txColDate  = 1
	txColAmt   = 2
	txColCurr  = 3
	txColCat   = 4
	txColDesc  = 5
	txColCrAt  = 6
	txColUpdAt = 7
)

const (
	incFields   = 9
	incColID    = 0
	incColDate  = 1
	incColAmt   = 2
	incColCurr  = 3
	incColCat   = 4
	incColSrc   = 5
	incColNotes = 6
	incColCrAt  = 7
	incColUpdAt = 8
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txFields)
	row[txColID] = t.ID
	row[txColDate] = t.Date.Format(dateFormat)
	row[txColAmt] = t.Amount.StringFixed(2)
	row[txColCurr] = string(t.Currency)
	row[txColCat] = string(t.Category)
	row[txColDesc] = t.Description
	row[txColCrAt] = t.CreatedAt.UTC().Format(tsFormat)
	row[txColUpdAt] = t.UpdatedAt.UTC().Format(tsFormat)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txFields, len(record))
	}
	date, amount, err := parseDateAmount(record[txColDate], record[txColAmt])
	if err != nil {
		return model.Transaction{}, err
	}
	created, updated, err := parseTimestamps(record[txColCrAt], record[txColUpdAt])
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:          record[txColID],
		Amount:      amount,
		Category:    model.ExpenseCategory(record[txColCat]),
		Description: record[txColDesc],
		Date:        date,
		Currency:    model.Currency(record[txColCurr]),
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// MarshalIncome converts an Income to a CSV row.
func MarshalIncome(i model.Income) []string {
	row := make([]string, incFields)
	row[incColID] = i.ID
	row[incColDate] = i.Date.Format(dateFormat)
	row[incColAmt] = i.Amount.StringFixed(2)
	row[incColCurr] = string(i.Currency)
	row[incColCat] = string(i.Category)
	row[incColSrc] = i.Source
	row[incColNotes] = i.Notes
	row[incColCrAt] = i.CreatedAt.UTC().Format(tsFormat)
	row[incColUpdAt] = i.UpdatedAt.UTC().Format(tsFormat)
	return row
}

// UnmarshalIncome converts a CSV row to an Income.
func UnmarshalIncome(record []string) (model.Income, error) {
	if len(record) != incFields {
		return model.Income{}, fmt.Errorf("expected %d fields, got %d", incFields, len(record))
	}
	date, amount, err := parseDateAmount(record[incColDate], record[incColAmt])
	if err != nil {
		return model.Income{}, err
	}
	created, updated, err := parseTimestamps(record[incColCrAt], record[incColUpdAt])
	if err != nil {
		return model.Income{}, err
	}
	return model.Income{
		ID:        record[incColID],
		Amount:    amount,
		Source:    record[incColSrc],
		Category:  model.IncomeCategory(record[incColCat]),
		Date:      date,
		Currency:  model.Currency(record[incColCurr]),
		Notes:     record[incColNotes],
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func parseDateAmount(dateStr, amountStr string) (time.Time, decimal.Decimal, error) {
	date, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	return date, amount, nil
}

func parseTimestamps(createdStr, updatedStr string) (time.Time, time.Time, error) {
	created, err := time.Parse(tsFormat, createdStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at %q: %w", createdStr, err)
	}
	updated, err := time.Parse(tsFormat, updatedStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at %q: %w", updatedStr, err)
	}
	return created, updated, nil
}

// ReadTransactions reads all rows from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	return readRows(r, txFields, UnmarshalTransaction)
}

// ReadIncome reads all rows from an income.csv reader.
func ReadIncome(r io.Reader) ([]model.Income, error) {
	return readRows(r, incFields, UnmarshalIncome)
}

func readRows[T any](r io.Reader, fields int, unmarshal func([]string) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []T
	for i, rec := range records[1:] {
		v, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return rows, nil
}

// stageRows writes the current content of path plus rows to a temporary
// file beside it and returns the temporary file's name. A new file starts
// with header. path itself is left untouched.
func stageRows(path, header string, rows [][]string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating ledger dir: %w", err)
	}
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading ledger: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("creating staging file: %w", err)
	}
	tmp := f.Name()
	if err := writeStaged(f, existing, header, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("closing staging file: %w", err)
	}
	return tmp, nil
}

func writeStaged(w io.Writer, existing []byte, header string, rows [][]string) error {
	if _, err := w.Write(existing); err != nil {
		return fmt.Errorf("copying ledger: %w", err)
	}
	cw := csv.NewWriter(w)
	if len(existing) == 0 {
		if err := cw.Write(strings.Split(header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

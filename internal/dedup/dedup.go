// Package dedup flags parsed candidates that match records already in the
// ledger.
package dedup

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-home/tally/internal/model"
)

// key identifies a record by calendar day, magnitude, and lowercased label.
type key struct {
	day    string
	amount string
	label  string
}

func makeKey(date time.Time, amount decimal.Decimal, label string) key {
	return key{
		day:    date.Format(time.DateOnly),
		amount: amount.Abs().String(),
		label:  strings.ToLower(label),
	}
}

// Detect returns a copy of batch in which every candidate whose key matches
// an existing record of the same kind is flagged as a duplicate and
// deselected. Other candidates are marked not duplicate and keep their
// selection, so a batch can be checked again after the ledger changes. The
// inputs are not modified.
//
// Matching is exact: a cent of difference or a changed label is a new record.
func Detect(batch model.Batch, transactions []model.Transaction, income []model.Income) model.Batch {
	seenTx := make(map[key]struct{}, len(transactions))
	for _, t := range transactions {
		seenTx[makeKey(t.Date, t.Amount, t.Description)] = struct{}{}
	}
	seenInc := make(map[key]struct{}, len(income))
	for _, i := range income {
		seenInc[makeKey(i.Date, i.Amount, i.Source)] = struct{}{}
	}

	out := model.Batch{
		Expenses: make([]model.ExpenseCandidate, len(batch.Expenses)),
		Income:   make([]model.IncomeCandidate, len(batch.Income)),
	}
	for n, c := range batch.Expenses {
		_, dup := seenTx[makeKey(c.Date, c.Amount, c.Description)]
		c.IsDuplicate = dup
		if dup {
			c.Selected = false
		}
		out.Expenses[n] = c
	}
	for n, c := range batch.Income {
		_, dup := seenInc[makeKey(c.Date, c.Amount, c.Source)]
		c.IsDuplicate = dup
		if dup {
			c.Selected = false
		}
		out.Income[n] = c
	}
	return out
}

package importer

import (
	"time"

	"github.com/tally-home/tally/internal/model"
)

// ToTransaction maps a reviewed expense candidate to the persisted shape,
// stamping both timestamps with now.
func ToTransaction(c model.ExpenseCandidate, now time.Time) model.Transaction {
	return model.Transaction{
		ID:          c.ID,
		Amount:      c.Amount,
		Category:    c.Category,
		Description: c.Description,
		Date:        c.Date,
		Currency:    c.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ToIncome maps a reviewed income candidate to the persisted shape.
func ToIncome(c model.IncomeCandidate, now time.Time) model.Income {
	return model.Income{
		ID:        c.ID,
		Amount:    c.Amount,
		Source:    c.Source,
		Category:  c.Category,
		Date:      c.Date,
		Currency:  c.Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Accepted converts the selected candidates of a batch, preserving row order.
func Accepted(b model.Batch, now time.Time) ([]model.Transaction, []model.Income) {
	var txns []model.Transaction
	for _, c := range b.Expenses {
		if c.Selected {
			txns = append(txns, ToTransaction(c, now))
		}
	}
	var inc []model.Income
	for _, c := range b.Income {
		if c.Selected {
			inc = append(inc, ToIncome(c, now))
		}
	}
	return txns, inc
}

package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-home/tally/internal/model"
)

func TestToTransaction(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := model.ExpenseCandidate{
		ID:          "e1",
		Amount:      decimal.RequireFromString("124.53"),
		Category:    model.ExpenseGroceries,
		Description: "COSTCO WHOLESALE",
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:    model.CurrencyCAD,
		Selected:    true,
	}

	tx := ToTransaction(c, now)
	assert.Equal(t, "e1", tx.ID)
	assert.Equal(t, "124.53", tx.Amount.String())
	assert.Equal(t, model.ExpenseGroceries, tx.Category)
	assert.Equal(t, "COSTCO WHOLESALE", tx.Description)
	assert.Equal(t, c.Date, tx.Date)
	assert.Equal(t, model.CurrencyCAD, tx.Currency)
	assert.Equal(t, now, tx.CreatedAt)
	assert.Equal(t, now, tx.UpdatedAt)
}

func TestToIncome(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := model.IncomeCandidate{
		ID:       "i1",
		Amount:   decimal.RequireFromString("2500"),
		Source:   "PAYROLL DEPOSIT - ACME CORP",
		Category: model.IncomeSalary,
		Date:     time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Currency: model.CurrencyUSD,
	}

	inc := ToIncome(c, now)
	assert.Equal(t, "i1", inc.ID)
	assert.Equal(t, "PAYROLL DEPOSIT - ACME CORP", inc.Source)
	assert.Equal(t, model.IncomeSalary, inc.Category)
	assert.Equal(t, model.CurrencyUSD, inc.Currency)
	assert.Empty(t, inc.Notes)
	assert.Equal(t, now, inc.CreatedAt)
	assert.Equal(t, now, inc.UpdatedAt)
}

func TestAccepted(t *testing.T) {
	now := time.Now().UTC()
	b := model.Batch{
		Expenses: []model.ExpenseCandidate{
			{ID: "e1", Selected: true},
			{ID: "e2", Selected: false, IsDuplicate: true},
			{ID: "e3", Selected: true},
		},
		Income: []model.IncomeCandidate{
			{ID: "i1", Selected: false},
			{ID: "i2", Selected: true, IsDuplicate: true},
		},
	}

	txns, inc := Accepted(b, now)
	require.Len(t, txns, 2)
	assert.Equal(t, "e1", txns[0].ID)
	assert.Equal(t, "e3", txns[1].ID)
	require.Len(t, inc, 1)
	assert.Equal(t, "i2", inc[0].ID, "a duplicate the user re-selected is kept")

	txns, inc = Accepted(model.Batch{}, now)
	assert.Empty(t, txns)
	assert.Empty(t, inc)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpenseCategories(t *testing.T) {
	cats := ExpenseCategories()
	assert.Len(t, cats, 18)
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %q", c)
		assert.NotEqual(t, string(c), c.Label(), "category %q should have a label", c)
	}
	assert.Equal(t, "Eating Out", ExpenseEatingOut.Label())
	assert.False(t, ExpenseCategory("salary").Valid())
	assert.Equal(t, "mystery", ExpenseCategory("mystery").Label())
}

func TestIncomeCategories(t *testing.T) {
	cats := IncomeCategories()
	assert.Len(t, cats, 7)
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, IncomeCategory("groceries").Valid())
}

func TestValidCategory(t *testing.T) {
	tests := []struct {
		kind     Kind
		category string
		want     bool
	}{
		{KindExpense, "groceries", true},
		{KindExpense, "salary", false},
		{KindIncome, "salary", true},
		{KindIncome, "groceries", false},
		{KindExpense, "other", true},
		{KindIncome, "other", true},
		{Kind("bogus"), "other", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidCategory(tt.kind, tt.category), "%s/%s", tt.kind, tt.category)
	}
}

func TestCurrencyValid(t *testing.T) {
	assert.True(t, CurrencyCAD.Valid())
	assert.True(t, CurrencyUSD.Valid())
	assert.False(t, Currency("EUR").Valid())
	assert.Len(t, Currencies(), 2)
}

func TestBatchCounts(t *testing.T) {
	b := Batch{
		Expenses: []ExpenseCandidate{
			{ID: "a", Selected: true},
			{ID: "b", IsDuplicate: true},
		},
		Income: []IncomeCandidate{
			{ID: "c", Selected: true},
		},
	}
	assert.False(t, b.Empty())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 1, b.Duplicates())
	assert.Equal(t, 2, b.Selected())
	assert.True(t, Batch{}.Empty())
}

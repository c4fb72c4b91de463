package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-home/tally/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDetect_Expense(t *testing.T) {
	existing := []model.Transaction{{
		ID:          "t1",
		Amount:      amt("124.53"),
		Category:    model.ExpenseGroceries,
		Description: "Costco Wholesale",
		Date:        time.Date(2024, 1, 15, 18, 42, 0, 0, time.UTC),
	}}
	batch := model.Batch{Expenses: []model.ExpenseCandidate{
		{ID: "e1", Amount: amt("124.53"), Description: "COSTCO WHOLESALE", Date: day(2024, 1, 15), Selected: true},
		{ID: "e2", Amount: amt("124.54"), Description: "COSTCO WHOLESALE", Date: day(2024, 1, 15), Selected: true},
		{ID: "e3", Amount: amt("124.53"), Description: "COSTCO WHOLESALE", Date: day(2024, 1, 16), Selected: true},
		{ID: "e4", Amount: amt("124.53"), Description: "COSTCO", Date: day(2024, 1, 15), Selected: true},
	}}

	got := Detect(batch, existing, nil)
	require.Len(t, got.Expenses, 4)

	assert.True(t, got.Expenses[0].IsDuplicate)
	assert.False(t, got.Expenses[0].Selected)
	for _, c := range got.Expenses[1:] {
		assert.False(t, c.IsDuplicate, c.ID)
		assert.True(t, c.Selected, c.ID)
	}
}

func TestDetect_Income(t *testing.T) {
	existing := []model.Income{{
		ID:     "r1",
		Amount: amt("2500.00"),
		Source: "payroll deposit - acme corp",
		Date:   day(2024, 1, 20),
	}}
	batch := model.Batch{Income: []model.IncomeCandidate{
		{ID: "i1", Amount: amt("2500"), Source: "PAYROLL DEPOSIT - ACME CORP", Date: day(2024, 1, 20), Selected: true},
	}}

	got := Detect(batch, nil, existing)
	require.Len(t, got.Income, 1)
	assert.True(t, got.Income[0].IsDuplicate, "2500.00 and 2500 are the same amount")
	assert.False(t, got.Income[0].Selected)
}

func TestDetect_KindsDoNotCross(t *testing.T) {
	existing := []model.Income{{Amount: amt("50"), Source: "REFUND", Date: day(2024, 1, 1)}}
	batch := model.Batch{Expenses: []model.ExpenseCandidate{
		{ID: "e1", Amount: amt("50"), Description: "REFUND", Date: day(2024, 1, 1), Selected: true},
	}}

	got := Detect(batch, nil, existing)
	assert.False(t, got.Expenses[0].IsDuplicate)
	assert.True(t, got.Expenses[0].Selected)
}

func TestDetect_LeavesUnselectedAlone(t *testing.T) {
	batch := model.Batch{Expenses: []model.ExpenseCandidate{
		{ID: "e1", Amount: amt("1"), Description: "X", Date: day(2024, 1, 1), Selected: false},
	}}
	got := Detect(batch, nil, nil)
	assert.False(t, got.Expenses[0].Selected)
	assert.False(t, got.Expenses[0].IsDuplicate)
}

func TestDetect_ClearsStaleFlags(t *testing.T) {
	batch := model.Batch{
		Expenses: []model.ExpenseCandidate{
			{ID: "e1", Amount: amt("10"), Description: "X", Date: day(2024, 1, 1), IsDuplicate: true, Selected: true},
		},
		Income: []model.IncomeCandidate{
			{ID: "i1", Amount: amt("20"), Source: "Y", Date: day(2024, 1, 2), IsDuplicate: true},
		},
	}
	got := Detect(batch, nil, nil)
	assert.False(t, got.Expenses[0].IsDuplicate)
	assert.True(t, got.Expenses[0].Selected)
	assert.False(t, got.Income[0].IsDuplicate)
	assert.False(t, got.Income[0].Selected)
}

func TestDetect_DoesNotMutateInput(t *testing.T) {
	existing := []model.Transaction{{Amount: amt("10"), Description: "X", Date: day(2024, 1, 1)}}
	batch := model.Batch{Expenses: []model.ExpenseCandidate{
		{ID: "e1", Amount: amt("10"), Description: "X", Date: day(2024, 1, 1), Selected: true},
	}}

	got := Detect(batch, existing, nil)
	assert.True(t, got.Expenses[0].IsDuplicate)
	assert.True(t, batch.Expenses[0].Selected)
	assert.False(t, batch.Expenses[0].IsDuplicate)
}

func TestDetect_OrderIndependent(t *testing.T) {
	existing := []model.Transaction{
		{Amount: amt("10"), Description: "A", Date: day(2024, 1, 1)},
		{Amount: amt("20"), Description: "B", Date: day(2024, 1, 2)},
	}
	reversed := []model.Transaction{existing[1], existing[0]}
	batch := model.Batch{Expenses: []model.ExpenseCandidate{
		{ID: "e1", Amount: amt("20"), Description: "b", Date: day(2024, 1, 2), Selected: true},
		{ID: "e2", Amount: amt("30"), Description: "C", Date: day(2024, 1, 3), Selected: true},
		{ID: "e3", Amount: amt("10"), Description: "a", Date: day(2024, 1, 1), Selected: true},
	}}

	assert.Equal(t, Detect(batch, existing, nil), Detect(batch, reversed, nil))

	got := Detect(batch, existing, nil)
	assert.Equal(t, 2, got.Duplicates())
	assert.Equal(t, "e2", got.Expenses[1].ID)
	assert.False(t, got.Expenses[1].IsDuplicate)
}

func TestDetect_EmptyInputs(t *testing.T) {
	got := Detect(model.Batch{}, nil, nil)
	assert.NotNil(t, got.Expenses)
	assert.NotNil(t, got.Income)
	assert.True(t, got.Empty())
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCandidate is a parsed statement row with a negative amount,
// awaiting review before it becomes a Transaction.
type ExpenseCandidate struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"` // always > 0; direction is the candidate kind
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Currency    Currency        `json:"currency"`
	Selected    bool            `json:"selected"`
	IsDuplicate bool            `json:"isDuplicate"`
}

// IncomeCandidate is a parsed statement row with a positive amount,
// awaiting review before it becomes an Income entry.
type IncomeCandidate struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Category    IncomeCategory  `json:"category"`
	Date        time.Time       `json:"date"`
	Currency    Currency        `json:"currency"`
	Selected    bool            `json:"selected"`
	IsDuplicate bool            `json:"isDuplicate"`
}

// Transaction is a persisted expense record.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Currency    Currency        `json:"currency"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Income is a persisted income record.
type Income struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Source    string          `json:"source"`
	Category  IncomeCategory  `json:"category"`
	Date      time.Time       `json:"date"`
	Currency  Currency        `json:"currency"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

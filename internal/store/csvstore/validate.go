package csvstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-home/tally/internal/model"
)

// Validation rule names.
const (
	RulePositiveAmount = "positive-amount"
	RuleDecimalPlaces  = "decimal-places"
	RuleCategory       = "category"
	RuleCurrency       = "currency"
	RuleLabel          = "label"
	RuleUniqueID       = "unique-id"
	RuleMonth          = "month"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        string
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.RecordID, e.Description)
}

// Join folds violations into one error, or nil when there are none.
func Join(verrs []ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i, ve := range verrs {
		errs[i] = ve
	}
	return fmt.Errorf("validation failed: %w", errors.Join(errs...))
}

var hundred = decimal.NewFromInt(100)

// checkCommon applies the rules shared by both record kinds.
func checkCommon(id string, amount decimal.Decimal, currency model.Currency, label string) []ValidationError {
	var errs []ValidationError
	if !amount.IsPositive() {
		errs = append(errs, ValidationError{
			Rule:        RulePositiveAmount,
			RecordID:    id,
			Description: fmt.Sprintf("amount %s must be greater than zero", amount),
		})
	}
	if !amount.Mul(hundred).Equal(amount.Mul(hundred).Floor()) {
		errs = append(errs, ValidationError{
			Rule:        RuleDecimalPlaces,
			RecordID:    id,
			Description: fmt.Sprintf("amount %s has more than 2 decimal places", amount),
		})
	}
	if !currency.Valid() {
		errs = append(errs, ValidationError{
			Rule:        RuleCurrency,
			RecordID:    id,
			Description: fmt.Sprintf("unknown currency %q", currency),
		})
	}
	if strings.TrimSpace(label) == "" {
		errs = append(errs, ValidationError{
			Rule:        RuleLabel,
			RecordID:    id,
			Description: "description or source is empty",
		})
	}
	return errs
}

func checkMonth(id string, date time.Time, year, month int) []ValidationError {
	if date.Year() == year && int(date.Month()) == month {
		return nil
	}
	return []ValidationError{{
		Rule:        RuleMonth,
		RecordID:    id,
		Description: fmt.Sprintf("date %s not in %04d-%02d", date.Format(dateFormat), year, month),
	}}
}

func checkUnique(ids []string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			errs = append(errs, ValidationError{Rule: RuleUniqueID, RecordID: id, Description: "id is empty"})
			continue
		}
		if seen[id] {
			errs = append(errs, ValidationError{Rule: RuleUniqueID, RecordID: id, Description: "duplicate id"})
		}
		seen[id] = true
	}
	return errs
}

// CheckTransactions applies the record rules that do not depend on where the
// records are stored: amount, currency, label, category and id uniqueness.
func CheckTransactions(txns []model.Transaction) []ValidationError {
	var errs []ValidationError
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		errs = append(errs, checkCommon(t.ID, t.Amount, t.Currency, t.Description)...)
		if !t.Category.Valid() {
			errs = append(errs, ValidationError{
				Rule:        RuleCategory,
				RecordID:    t.ID,
				Description: fmt.Sprintf("unknown expense category %q", t.Category),
			})
		}
		ids = append(ids, t.ID)
	}
	return append(errs, checkUnique(ids)...)
}

// CheckIncome is CheckTransactions for income records.
func CheckIncome(income []model.Income) []ValidationError {
	var errs []ValidationError
	ids := make([]string, 0, len(income))
	for _, i := range income {
		errs = append(errs, checkCommon(i.ID, i.Amount, i.Currency, i.Source)...)
		if !i.Category.Valid() {
			errs = append(errs, ValidationError{
				Rule:        RuleCategory,
				RecordID:    i.ID,
				Description: fmt.Sprintf("unknown income category %q", i.Category),
			})
		}
		ids = append(ids, i.ID)
	}
	return append(errs, checkUnique(ids)...)
}

// ValidateTransactions checks one month of expense records.
func ValidateTransactions(txns []model.Transaction, year, month int) []ValidationError {
	errs := CheckTransactions(txns)
	for _, t := range txns {
		errs = append(errs, checkMonth(t.ID, t.Date, year, month)...)
	}
	return errs
}

// ValidateIncome checks one month of income records.
func ValidateIncome(income []model.Income, year, month int) []ValidationError {
	errs := CheckIncome(income)
	for _, i := range income {
		errs = append(errs, checkMonth(i.ID, i.Date, year, month)...)
	}
	return errs
}

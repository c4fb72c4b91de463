// Package review holds the user's edits to a parsed batch between duplicate
// detection and commit.
package review

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tally-home/tally/internal/importer"
	"github.com/tally-home/tally/internal/model"
)

// ErrUnknownCandidate is returned when an edit names no candidate in the batch.
var ErrUnknownCandidate = errors.New("unknown candidate")

// Session is an editable copy of a Batch. It is not safe for concurrent use.
type Session struct {
	batch   model.Batch
	expense map[string]int
	income  map[string]int
}

// KindCounts summarizes one candidate list.
type KindCounts struct {
	Total      int `json:"total"`
	Selected   int `json:"selected"`
	Duplicates int `json:"duplicates"`
}

// Counts summarizes both candidate lists.
type Counts struct {
	Expenses KindCounts `json:"transactions"`
	Income   KindCounts `json:"income"`
}

// New starts a session over a copy of batch.
func New(batch model.Batch) *Session {
	s := &Session{
		batch: model.Batch{
			Expenses: append([]model.ExpenseCandidate{}, batch.Expenses...),
			Income:   append([]model.IncomeCandidate{}, batch.Income...),
		},
		expense: make(map[string]int, len(batch.Expenses)),
		income:  make(map[string]int, len(batch.Income)),
	}
	for i, c := range s.batch.Expenses {
		s.expense[c.ID] = i
	}
	for i, c := range s.batch.Income {
		s.income[c.ID] = i
	}
	return s
}

// Batch returns a copy of the current state.
func (s *Session) Batch() model.Batch {
	return model.Batch{
		Expenses: append([]model.ExpenseCandidate{}, s.batch.Expenses...),
		Income:   append([]model.IncomeCandidate{}, s.batch.Income...),
	}
}

var positionalRef = regexp.MustCompile(`^([eEiI])(\d+)$`)

// Resolve maps a reference to a candidate kind and ID. A reference is either
// a 1-based position ("e3" is the third expense, "i1" the first income) or
// a candidate ID, full or shortened to a unique prefix. Anything shaped like
// a position is only ever read as one.
func (s *Session) Resolve(ref string) (model.Kind, string, error) {
	ref = strings.TrimSpace(ref)
	if m := positionalRef.FindStringSubmatch(ref); m != nil {
		n, _ := strconv.Atoi(m[2])
		switch strings.ToLower(m[1]) {
		case "e":
			if n >= 1 && n <= len(s.batch.Expenses) {
				return model.KindExpense, s.batch.Expenses[n-1].ID, nil
			}
		case "i":
			if n >= 1 && n <= len(s.batch.Income) {
				return model.KindIncome, s.batch.Income[n-1].ID, nil
			}
		}
		return "", "", fmt.Errorf("%w: %q", ErrUnknownCandidate, ref)
	}

	var (
		kind    model.Kind
		matchID string
		matches int
	)
	for _, c := range s.batch.Expenses {
		if c.ID == ref {
			return model.KindExpense, c.ID, nil
		}
		if ref != "" && strings.HasPrefix(c.ID, ref) {
			kind, matchID = model.KindExpense, c.ID
			matches++
		}
	}
	for _, c := range s.batch.Income {
		if c.ID == ref {
			return model.KindIncome, c.ID, nil
		}
		if ref != "" && strings.HasPrefix(c.ID, ref) {
			kind, matchID = model.KindIncome, c.ID
			matches++
		}
	}
	switch matches {
	case 1:
		return kind, matchID, nil
	case 0:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownCandidate, ref)
	default:
		return "", "", fmt.Errorf("ambiguous candidate reference %q matches %d candidates", ref, matches)
	}
}

// SetExpenseCategory reassigns the category of an expense candidate.
func (s *Session) SetExpenseCategory(id string, category model.ExpenseCategory) error {
	i, ok := s.expense[id]
	if !ok {
		return fmt.Errorf("%w: expense %q", ErrUnknownCandidate, id)
	}
	if !category.Valid() {
		return fmt.Errorf("invalid expense category %q", category)
	}
	s.batch.Expenses[i].Category = category
	return nil
}

// SetIncomeCategory reassigns the category of an income candidate.
func (s *Session) SetIncomeCategory(id string, category model.IncomeCategory) error {
	i, ok := s.income[id]
	if !ok {
		return fmt.Errorf("%w: income %q", ErrUnknownCandidate, id)
	}
	if !category.Valid() {
		return fmt.Errorf("invalid income category %q", category)
	}
	s.batch.Income[i].Category = category
	return nil
}

// SetCategory reassigns a category by kind, validating it against that
// kind's enumeration.
func (s *Session) SetCategory(kind model.Kind, id, category string) error {
	switch kind {
	case model.KindExpense:
		return s.SetExpenseCategory(id, model.ExpenseCategory(category))
	case model.KindIncome:
		return s.SetIncomeCategory(id, model.IncomeCategory(category))
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
}

// SetSelected marks a candidate of either kind for import or excludes it.
// Duplicates may be re-selected.
func (s *Session) SetSelected(id string, selected bool) error {
	if i, ok := s.expense[id]; ok {
		s.batch.Expenses[i].Selected = selected
		return nil
	}
	if i, ok := s.income[id]; ok {
		s.batch.Income[i].Selected = selected
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCandidate, id)
}

// Toggle flips the selection of a candidate and returns the new state.
func (s *Session) Toggle(id string) (bool, error) {
	if i, ok := s.expense[id]; ok {
		s.batch.Expenses[i].Selected = !s.batch.Expenses[i].Selected
		return s.batch.Expenses[i].Selected, nil
	}
	if i, ok := s.income[id]; ok {
		s.batch.Income[i].Selected = !s.batch.Income[i].Selected
		return s.batch.Income[i].Selected, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCandidate, id)
}

// SelectAllExpenses sets the selection of every expense candidate.
func (s *Session) SelectAllExpenses(selected bool) {
	for i := range s.batch.Expenses {
		s.batch.Expenses[i].Selected = selected
	}
}

// SelectAllIncome sets the selection of every income candidate.
func (s *Session) SelectAllIncome(selected bool) {
	for i := range s.batch.Income {
		s.batch.Income[i].Selected = selected
	}
}

// Counts returns totals per kind.
func (s *Session) Counts() Counts {
	var c Counts
	for _, e := range s.batch.Expenses {
		c.Expenses.add(e.Selected, e.IsDuplicate)
	}
	for _, i := range s.batch.Income {
		c.Income.add(i.Selected, i.IsDuplicate)
	}
	return c
}

func (k *KindCounts) add(selected, duplicate bool) {
	k.Total++
	if selected {
		k.Selected++
	}
	if duplicate {
		k.Duplicates++
	}
}

// Accept converts the selected candidates into records stamped with now.
func (s *Session) Accept(now time.Time) ([]model.Transaction, []model.Income) {
	return importer.Accepted(s.batch, now)
}

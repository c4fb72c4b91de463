package model

// Batch holds the candidates produced from one statement file, each list in
// row order.
type Batch struct {
	Expenses []ExpenseCandidate `json:"transactions"`
	Income   []IncomeCandidate  `json:"income"`
}

// Empty reports whether the batch has no candidates of either kind.
func (b Batch) Empty() bool {
	return len(b.Expenses) == 0 && len(b.Income) == 0
}

// Len returns the total number of candidates.
func (b Batch) Len() int {
	return len(b.Expenses) + len(b.Income)
}

// Duplicates returns how many candidates are flagged as duplicates.
func (b Batch) Duplicates() int {
	n := 0
	for _, e := range b.Expenses {
		if e.IsDuplicate {
			n++
		}
	}
	for _, i := range b.Income {
		if i.IsDuplicate {
			n++
		}
	}
	return n
}

// Selected returns how many candidates are selected for import.
func (b Batch) Selected() int {
	n := 0
	for _, e := range b.Expenses {
		if e.Selected {
			n++
		}
	}
	for _, i := range b.Income {
		if i.Selected {
			n++
		}
	}
	return n
}

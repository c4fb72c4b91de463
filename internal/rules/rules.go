// Package rules holds the keyword table that classifies statement
// descriptions into expense and income categories.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tally-home/tally/internal/model"
)

// Rule maps a set of keywords to a category. A description matches when it
// contains any keyword, compared case-insensitively.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// File is the on-disk YAML shape of a rule table.
type File struct {
	Expense []Rule `yaml:"expense"`
	Income  []Rule `yaml:"income"`
}

// Table is an immutable, ordered rule table. The zero value matches nothing
// and classifies every description as "other".
type Table struct {
	expense []Rule
	income  []Rule
}

// NewTable validates the rules and returns a Table that owns copies of them.
// Keywords are lowercased once here; surrounding spaces are significant.
func NewTable(expense, income []Rule) (*Table, error) {
	exp, err := prepare(model.KindExpense, expense)
	if err != nil {
		return nil, err
	}
	inc, err := prepare(model.KindIncome, income)
	if err != nil {
		return nil, err
	}
	return &Table{expense: exp, income: inc}, nil
}

func prepare(kind model.Kind, in []Rule) ([]Rule, error) {
	out := make([]Rule, 0, len(in))
	for i, r := range in {
		if !model.ValidCategory(kind, r.Category) {
			return nil, fmt.Errorf("%s rule %d: invalid category %q", kind, i, r.Category)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("%s rule %d (%s): no keywords", kind, i, r.Category)
		}
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("%s rule %d (%s): keyword %d is empty", kind, i, r.Category, j)
			}
			kws[j] = strings.ToLower(kw)
		}
		out = append(out, Rule{Category: r.Category, Keywords: kws})
	}
	return out, nil
}

// Default returns the built-in rule table.
func Default() *Table {
	t, err := NewTable(defaultExpenseRules(), defaultIncomeRules())
	if err != nil {
		panic("invalid built-in rule table: " + err.Error())
	}
	return t
}

// Parse builds a Table from YAML data.
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return NewTable(f.Expense, f.Income)
}

// Load reads a YAML rule table from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// Save writes the table as YAML.
func (t *Table) Save(path string) error {
	data, err := yaml.Marshal(t.File())
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// File returns a copy of the table in its serializable form.
func (t *Table) File() File {
	return File{Expense: cloneRules(t.expense), Income: cloneRules(t.income)}
}

// Rules returns a copy of the ordered rules for kind.
func (t *Table) Rules(kind model.Kind) []Rule {
	switch kind {
	case model.KindExpense:
		return cloneRules(t.expense)
	case model.KindIncome:
		return cloneRules(t.income)
	default:
		return nil
	}
}

// Classify returns the category of the first rule for kind with a keyword
// contained in description, or "other".
func (t *Table) Classify(description string, kind model.Kind) string {
	var rs []Rule
	switch kind {
	case model.KindExpense:
		rs = t.expense
	case model.KindIncome:
		rs = t.income
	}
	lower := strings.ToLower(description)
	for _, r := range rs {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return "other"
}

// Expense classifies an expense description.
func (t *Table) Expense(description string) model.ExpenseCategory {
	return model.ExpenseCategory(t.Classify(description, model.KindExpense))
}

// Income classifies an income description.
func (t *Table) Income(description string) model.IncomeCategory {
	return model.IncomeCategory(t.Classify(description, model.KindIncome))
}

func cloneRules(in []Rule) []Rule {
	out := make([]Rule, len(in))
	for i, r := range in {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

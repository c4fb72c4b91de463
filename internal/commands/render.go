package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tally-home/tally/internal/id"
	"github.com/tally-home/tally/internal/importlog"
	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/review"
	"github.com/tally-home/tally/internal/rules"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	dupColor    = color.New(color.FgYellow)
	skipColor   = color.New(color.Faint)
	okColor     = color.New(color.FgGreen)
)

const descWidth = 40

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func mark(selected, duplicate bool) string {
	switch {
	case duplicate && selected:
		return "[x] dup"
	case duplicate:
		return "[ ] dup"
	case selected:
		return "[x]"
	default:
		return "[ ]"
	}
}

func lineColor(selected, duplicate bool) *color.Color {
	switch {
	case duplicate:
		return dupColor
	case !selected:
		return skipColor
	default:
		return okColor
	}
}

// renderBatch prints both candidate lists with their positional references
// (e1, i1, ...) and short IDs, either of which --category and --skip accept.
func renderBatch(w io.Writer, b model.Batch) {
	if len(b.Expenses) > 0 {
		headerColor.Fprintf(w, "Expenses (%d)\n", len(b.Expenses))
		for n, c := range b.Expenses {
			lineColor(c.Selected, c.IsDuplicate).Fprintf(w, "  e%-3d %-8s %-8s %s  %10s %s  %-16s %s\n",
				n+1, id.Short(c.ID), mark(c.Selected, c.IsDuplicate), c.Date.Format("2006-01-02"),
				c.Amount.StringFixed(2), c.Currency, c.Category, truncate(c.Description, descWidth))
		}
	}
	if len(b.Income) > 0 {
		headerColor.Fprintf(w, "Income (%d)\n", len(b.Income))
		for n, c := range b.Income {
			lineColor(c.Selected, c.IsDuplicate).Fprintf(w, "  i%-3d %-8s %-8s %s  %10s %s  %-16s %s\n",
				n+1, id.Short(c.ID), mark(c.Selected, c.IsDuplicate), c.Date.Format("2006-01-02"),
				c.Amount.StringFixed(2), c.Currency, c.Category, truncate(c.Source, descWidth))
		}
	}
}

func renderCounts(w io.Writer, c review.Counts) {
	fmt.Fprintf(w, "%d expenses (%d selected, %d duplicates), %d income (%d selected, %d duplicates)\n",
		c.Expenses.Total, c.Expenses.Selected, c.Expenses.Duplicates,
		c.Income.Total, c.Income.Selected, c.Income.Duplicates)
}

func renderRules(w io.Writer, t *rules.Table) {
	for _, kind := range []model.Kind{model.KindExpense, model.KindIncome} {
		headerColor.Fprintf(w, "%s\n", strings.ToUpper(string(kind)))
		for _, r := range t.Rules(kind) {
			fmt.Fprintf(w, "  %-16s %s\n", r.Category, strings.Join(quoteAll(r.Keywords), ", "))
		}
	}
}

// quoteAll shows keywords with significant surrounding spaces unambiguously.
func quoteAll(kws []string) []string {
	out := make([]string, len(kws))
	for i, kw := range kws {
		if strings.TrimSpace(kw) != kw {
			out[i] = fmt.Sprintf("%q", kw)
		} else {
			out[i] = kw
		}
	}
	return out
}

func renderHistory(w io.Writer, entries []importlog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No imports recorded.")
		return
	}
	headerColor.Fprintf(w, "%-20s %-8s %8s %6s %5s %-8s %s\n", "TIME", "ACTION", "EXPENSES", "INCOME", "DUPS", "COMMIT", "FILE")
	for _, e := range entries {
		c := skipColor
		if e.Action == importlog.ActionCommit {
			c = okColor
		}
		c.Fprintf(w, "%-20s %-8s %8d %6d %5d %-8s %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.Expenses, e.Income, e.Duplicates, e.CommitHash, e.File)
	}
}

package importer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tally-home/tally/internal/id"
	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/rules"
)

// RBCParser parses RBC chequing/savings CSV exports with the columns
// Account Type, Account Number, Transaction Date, Cheque Number,
// Description 1, Description 2, CAD$, USD$.
//
// All fields are optional. A nil Rules uses the built-in table, a nil NewID
// uses id.New, and a nil Logger discards skip diagnostics. An RBCParser is
// safe for concurrent use when its NewID is.
type RBCParser struct {
	Rules  *rules.Table
	NewID  id.Generator
	Logger *slog.Logger
}

// Format returns the parser name.
func (p *RBCParser) Format() string { return "rbc" }

// Parse reads a whole RBC CSV export and returns its candidates.
func (p *RBCParser) Parse(r io.Reader) (model.Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Batch{}, fmt.Errorf("reading rbc CSV: %w", err)
	}
	return p.ParseString(string(data)), nil
}

// ParseString parses file content. The first non-blank line is a header and
// is skipped unread. Rows that cannot produce a candidate are skipped
// without aborting the run, so the result may be empty.
func (p *RBCParser) ParseString(content string) model.Batch {
	table := p.Rules
	if table == nil {
		table = rules.Default()
	}
	newID := p.NewID
	if newID == nil {
		newID = id.New
	}
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	batch := model.Batch{
		Expenses: []model.ExpenseCandidate{},
		Income:   []model.IncomeCandidate{},
	}

	lines := splitLines(content)
	if len(lines) <= 1 {
		return batch
	}

	for _, ln := range lines[1:] {
		raw, ok := NewRawRow(SplitLine(ln.text))
		if !ok {
			log.Debug("skipping row", "line", ln.number, "reason", skipTooFewFields)
			continue
		}
		rec, reason := ParseRow(raw)
		if reason != "" {
			log.Debug("skipping row", "line", ln.number, "reason", reason)
			continue
		}

		// ParseRow never returns a zero amount, so the sign alone decides
		// the kind.
		if rec.Amount.IsPositive() {
			batch.Income = append(batch.Income, model.IncomeCandidate{
				ID:       newID(),
				Amount:   rec.Amount,
				Source:   rec.Description,
				Category: table.Income(rec.Description),
				Date:     rec.Date,
				Currency: rec.Currency,
				Selected: true,
			})
			continue
		}
		batch.Expenses = append(batch.Expenses, model.ExpenseCandidate{
			ID:          newID(),
			Amount:      rec.Amount.Abs(),
			Category:    table.Expense(rec.Description),
			Description: rec.Description,
			Date:        rec.Date,
			Currency:    rec.Currency,
			Selected:    true,
		})
	}

	log.Debug("parsed statement", "expenses", len(batch.Expenses), "income", len(batch.Income))
	return batch
}

type line struct {
	number int
	text   string
}

// splitLines splits on \r\n, \n, or \r and drops blank lines, keeping the
// 1-based line number of each survivor.
func splitLines(content string) []line {
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)
	var out []line
	for i, text := range strings.Split(content, "\n") {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, line{number: i + 1, text: text})
	}
	return out
}

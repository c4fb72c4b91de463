package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tally-home/tally/internal/model"
)

const (
	rbcMinFields    = 7
	rbcColAcctType  = 0
	rbcColAcctNum   = 1
	rbcColDate      = 2
	rbcColCheque    = 3
	rbcColDesc1     = 4
	rbcColDesc2     = 5
	rbcColPrimary   = 6
	rbcColSecondary = 7
)

const descSeparator = " - "

// Amounts are stored in cents.
const centPlaces = 2

const (
	primaryCurrency   = model.CurrencyCAD
	secondaryCurrency = model.CurrencyUSD
)

// Reasons a row produces no candidate.
const (
	skipTooFewFields = "fewer than 7 fields"
	skipNoDesc       = "empty description"
	skipNoDate       = "empty transaction date"
	skipBadDate      = "unrecognized transaction date"
	skipNoAmount     = "no amount in either currency column"
)

// RawRow is one tokenized RBC statement row with every column named.
type RawRow struct {
	AccountType     string
	AccountNumber   string
	TransactionDate string
	ChequeNumber    string
	Description1    string
	Description2    string
	PrimaryAmount   string // CAD$
	SecondaryAmount string // USD$, absent on 7-column rows
}

// NewRawRow maps tokenized fields onto a RawRow. It reports false when the
// row has fewer than 7 fields; fields past the eighth are ignored.
func NewRawRow(fields []string) (RawRow, bool) {
	if len(fields) < rbcMinFields {
		return RawRow{}, false
	}
	row := RawRow{
		AccountType:     fields[rbcColAcctType],
		AccountNumber:   fields[rbcColAcctNum],
		TransactionDate: fields[rbcColDate],
		ChequeNumber:    fields[rbcColCheque],
		Description1:    fields[rbcColDesc1],
		Description2:    fields[rbcColDesc2],
		PrimaryAmount:   fields[rbcColPrimary],
	}
	if len(fields) > rbcColSecondary {
		row.SecondaryAmount = fields[rbcColSecondary]
	}
	return row, true
}

// Record is a typed statement row before classification.
type Record struct {
	Date        time.Time
	Amount      decimal.Decimal // signed; never zero
	Currency    model.Currency
	Description string
}

// ParseRow converts a RawRow into a Record. A non-empty reason means the
// row is skipped; skipping is not an error.
func ParseRow(row RawRow) (Record, string) {
	var parts []string
	for _, p := range []string{row.Description1, row.Description2} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	rawDesc := strings.TrimSpace(strings.Join(parts, descSeparator))
	if rawDesc == "" {
		return Record{}, skipNoDesc
	}
	if strings.TrimSpace(row.TransactionDate) == "" {
		return Record{}, skipNoDate
	}

	amount, currency := parseAmount(row.PrimaryAmount), primaryCurrency
	if amount.IsZero() {
		amount, currency = parseAmount(row.SecondaryAmount), secondaryCurrency
	}
	if amount.IsZero() {
		return Record{}, skipNoAmount
	}

	date, ok := parseDate(row.TransactionDate)
	if !ok {
		return Record{}, skipBadDate
	}

	return Record{
		Date:        date,
		Amount:      amount,
		Currency:    currency,
		Description: CleanDescription(rawDesc),
	}, ""
}

var (
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// parseDate accepts MM/DD/YYYY or YYYY-MM-DD and rejects anything else,
// including impossible dates such as 02/30/2024. Dates are UTC midnight.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	var year, month, day int
	if g := slashDate.FindStringSubmatch(s); g != nil {
		month, day, year = atoi(g[1]), atoi(g[2]), atoi(g[3])
	} else if g := isoDate.FindStringSubmatch(s); g != nil {
		year, month, day = atoi(g[1]), atoi(g[2]), atoi(g[3])
	} else {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// parseAmount strips currency symbols, thousands separators, and whitespace,
// then parses a decimal rounded half away from zero to cents. Unparseable
// text is zero.
func parseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(centPlaces)
}

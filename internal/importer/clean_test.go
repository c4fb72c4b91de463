package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"CONTACTLESS INTERAC PURCHASE - 1234 - COSTCO WHOLESALE", "COSTCO WHOLESALE"},
		{"contactless interac purchase - 99 - Farm Boy", "Farm Boy"},
		{"INTERAC PURCHASE - 5678 - LOBLAWS", "LOBLAWS"},
		{"INTERAC E-TRANSFER - 42 - JANE", "JANE"},
		{"CONTACTLESS VISA DEBIT PUR - 1 - STARBUCKS", "STARBUCKS"},
		{"VISA DEBIT PURCHASE - 0001 - AMAZON", "AMAZON"},
		{"VISA DEBIT PURCHASE AMAZON", "AMAZON"},
		{"VISA DEBIT PUR - 77 - SHELL", "SHELL"},
		{"POS PURCHASE - 12 - IKEA", "IKEA"},
		{"PRE-AUTHORIZED DEBIT - MANULIFE", "MANULIFE"},
		{"PRE-AUTHORIZED PAYMENT - ROGERS", "ROGERS"},
		{"ELECTRONIC FUNDS TRANSFER - EMPLOYER", "EMPLOYER"},
		{"EFT - GOV CANADA", "GOV CANADA"},
		{"WWW TRANSFER - SAVINGS", "SAVINGS"},
		{"ONLINE BANKING PAYMENT - HYDRO ONE", "HYDRO ONE"},
		{"MISC PAYMENT - ROGERS, WIRELESS", "ROGERS, WIRELESS"},
		{"PAYROLL DEPOSIT - ACME CORP", "PAYROLL DEPOSIT - ACME CORP"},
		{"  - TRAILING -  ", "TRAILING"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanDescription(tt.input), "CleanDescription(%q)", tt.input)
	}
}

func TestCleanDescription_OnlyFirstPatternRemoved(t *testing.T) {
	// After INTERAC PURCHASE is removed, the remainder starts with another
	// known prefix; it must stay.
	got := CleanDescription("INTERAC PURCHASE - 1 - MISC PAYMENT - ACME")
	assert.Equal(t, "MISC PAYMENT - ACME", got)
}

func TestCleanDescription_EmptyResultKeepsOriginal(t *testing.T) {
	assert.Equal(t, "WWW TRANSFER", CleanDescription("WWW TRANSFER"))
	assert.Equal(t, "INTERAC PURCHASE - 1234", CleanDescription("INTERAC PURCHASE - 1234"))
	assert.Equal(t, "", CleanDescription(""))
}

package importer

import (
	"regexp"
	"strings"
	"unicode"
)

// Boilerplate that RBC prepends to descriptions, most specific first.
var prefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^CONTACTLESS INTERAC PURCHASE\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^INTERAC PURCHASE\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^INTERAC E-TRANSFER\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^CONTACTLESS VISA DEBIT PUR\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^VISA DEBIT PURCHASE\s*-?\s*\d*\s*`),
	regexp.MustCompile(`(?i)^VISA DEBIT PUR\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^POS PURCHASE\s*-\s*\d+\s*`),
	regexp.MustCompile(`(?i)^PRE-AUTHORIZED DEBIT\s*-?\s*`),
	regexp.MustCompile(`(?i)^PRE-AUTHORIZED PAYMENT\s*-?\s*`),
	regexp.MustCompile(`(?i)^ELECTRONIC FUNDS TRANSFER\s*-?\s*`),
	regexp.MustCompile(`(?i)^EFT\s*-?\s*`),
	regexp.MustCompile(`(?i)^WWW TRANSFER\s*-?\s*`),
	regexp.MustCompile(`(?i)^ONLINE BANKING PAYMENT\s*-?\s*`),
	regexp.MustCompile(`(?i)^MISC PAYMENT\s*-?\s*`),
}

// CleanDescription removes the first matching boilerplate prefix, then trims
// whitespace and dashes from both ends. If nothing is left, the original
// description is returned unchanged.
func CleanDescription(desc string) string {
	cleaned := desc
	for _, p := range prefixPatterns {
		if loc := p.FindStringIndex(cleaned); loc != nil {
			cleaned = cleaned[loc[1]:]
			break
		}
	}

	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	if cleaned == "" {
		return desc
	}
	return cleaned
}

package validate

import (
	"strconv"
	"strings"
)

// ParseAmount extracts a numeric value from a free-text amount string,
// disambiguating separator conventions by usage, not locale:
//
//	"1 500 000 руб."    → 1500000     (spaces group thousands)
//	"1.500.000 EUR"     → 1500000     (multiple periods ⇒ all grouping)
//	"1,500,000.00 USD"  → 1500000.00  (later separator is the decimal point)
//	"1.500.000,50 EUR"  → 1500000.50
//	"1500,50"           → 1500.50     (single comma, not 3 trailing digits)
//	"1,500"             → 1500        (single comma + exactly 3 trailing
//	                                   digits reads as grouping; "12,500"
//	                                   is ambiguous and resolves the same
//	                                   way, an accepted tie-break)
//
// Returns ok=false when the string contains no digits at all.
func ParseAmount(amount string) (float64, bool) {
	var cleaned strings.Builder
	for _, r := range amount {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			cleaned.WriteRune(r)
		}
	}
	s := cleaned.String()
	if !strings.ContainsAny(s, "0123456789") {
		return 0, false
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot < 0 && lastComma < 0:
		return parseFloat(s)

	case lastComma < 0:
		// Only periods: multiple ⇒ thousands grouping, one ⇒ decimal point.
		if strings.Count(s, ".") > 1 {
			return parseFloat(strings.ReplaceAll(s, ".", ""))
		}
		return parseFloat(s)

	case lastDot < 0:
		// Only commas.
		if strings.Count(s, ",") > 1 {
			return parseFloat(strings.ReplaceAll(s, ",", ""))
		}
		if len(s)-lastComma-1 == 3 && lastComma > 0 {
			return parseFloat(strings.ReplaceAll(s, ",", ""))
		}
		return parseFloat(strings.Replace(s, ",", ".", 1))

	case lastDot > lastComma:
		// Both present, period later: commas group, period is decimal.
		return parseFloat(strings.ReplaceAll(s, ",", ""))

	default:
		// Both present, comma later: periods group, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		return parseFloat(strings.Replace(s, ",", ".", 1))
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

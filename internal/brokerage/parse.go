package brokerage

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NumericResult is the outcome of parsing a numeric cell. A cell that cannot
// be parsed yields Value 0 with Defaulted set and a reason, so callers can
// choose between the lenient bulk-import behavior and a strict mode that
// rejects defaulted rows.
type NumericResult struct {
	Value     float64
	Defaulted bool
	Reason    string
}

// ParseNumeric parses a brokerage numeric cell. Dollar signs, commas, and
// whitespace are stripped, and a parenthesized value is negative. Empty cells
// are zero without being flagged; unparsable cells default to zero with a
// reason.
func ParseNumeric(value string) NumericResult {
	if value == "" {
		return NumericResult{}
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\t", "").Replace(value)
	if cleaned == "" {
		return NumericResult{}
	}

	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return NumericResult{Defaulted: true, Reason: "unparsable number " + strings.TrimSpace(value)}
	}
	v, _ := d.Float64()
	return NumericResult{Value: v}
}

// NormalizeDate converts a brokerage date cell to YYYY-MM-DD. ISO dates pass
// through. A slash- or dash-delimited 3-part date is YYYY-MM-DD when the
// first part has four digits, otherwise MM-DD-YY(YY) with two-digit years
// promoted to 20YY. Anything else is returned trimmed but unchanged.
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isoDatePattern.MatchString(trimmed) {
		return trimmed
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) == 3 {
		if len(parts[0]) == 4 {
			return parts[0] + "-" + pad2(parts[1]) + "-" + pad2(parts[2])
		}
		year := parts[2]
		if len(year) == 2 {
			year = "20" + year
		}
		return year + "-" + pad2(parts[0]) + "-" + pad2(parts[1])
	}

	return trimmed
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

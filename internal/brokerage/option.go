package brokerage

import (
	"regexp"
	"strconv"
	"strings"
)

// OptionMeta is the option contract metadata extracted from a symbol or
// description. All fields are zero when no option pattern matches.
type OptionMeta struct {
	Underlying string
	OptionType string
	Strike     float64
	Expiry     string
}

var (
	// Descriptive form, e.g. "CALL AAPL 06/21/26 190" or "AAPL 6/21/2026 190 C".
	descriptiveOption = regexp.MustCompile(`([A-Z]{1,6})\s*(\d{2})[/\-](\d{2})[/\-](\d{2,4})\s*(\d+(?:\.\d+)?)\s*([CP]|CALL|PUT)`)
	// OCC fixed-width form, e.g. "AAPL240621C00190000" (strike in thousandths).
	occOption = regexp.MustCompile(`([A-Z]{1,6})(\d{6})([CP])(\d{8})`)
	// OCC-ish fragment used when deciding whether a row is an option at all.
	occFragment = regexp.MustCompile(`\d{6}[CP]\d{8}`)

	tickerPattern = regexp.MustCompile(`^[A-Z.]{1,8}$`)
)

// ExtractOptionMeta parses option metadata from the combined symbol and
// description text. The descriptive pattern is tried first, then the OCC
// symbol pattern; two-digit years are promoted to 20YY.
func ExtractOptionMeta(symbol, description string) OptionMeta {
	source := strings.ToUpper(symbol + " " + description)

	if m := descriptiveOption.FindStringSubmatch(source); m != nil {
		year := m[4]
		if len(year) == 2 {
			year = "20" + year
		}
		strike, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			strike = 0
		}
		optionType := "PUT"
		if strings.HasPrefix(m[6], "C") {
			optionType = "CALL"
		}
		return OptionMeta{
			Underlying: m[1],
			OptionType: optionType,
			Strike:     strike,
			Expiry:     year + "-" + pad2(m[2]) + "-" + pad2(m[3]),
		}
	}

	if m := occOption.FindStringSubmatch(source); m != nil {
		yymmdd := m[2]
		thousandths, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			thousandths = 0
		}
		optionType := "PUT"
		if m[3] == "C" {
			optionType = "CALL"
		}
		return OptionMeta{
			Underlying: m[1],
			OptionType: optionType,
			Strike:     thousandths / 1000,
			Expiry:     "20" + yymmdd[0:2] + "-" + yymmdd[2:4] + "-" + yymmdd[4:6],
		}
	}

	return OptionMeta{}
}

// DetectAssetType classifies a row as OPTION, CASH, or STOCK from its symbol
// and description text.
func DetectAssetType(symbol, description string) string {
	s := strings.ToUpper(symbol + " " + description)
	if strings.Contains(s, "CALL") || strings.Contains(s, "PUT") || occFragment.MatchString(s) {
		return "OPTION"
	}
	if symbol == "-" || symbol == "" {
		return "CASH"
	}
	return "STOCK"
}

// deriveSymbol extracts a ticker-looking first token from a description,
// allowing periods (e.g. BRK.B). Returns "" when the first token does not
// look like a ticker.
func deriveSymbol(description string) string {
	if description == "" {
		return ""
	}
	fields := strings.Fields(strings.ToUpper(description))
	if len(fields) == 0 {
		return ""
	}
	if tickerPattern.MatchString(fields[0]) {
		return fields[0]
	}
	return ""
}

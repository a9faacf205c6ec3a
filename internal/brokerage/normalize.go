// Package brokerage converts raw brokerage CSV exports into canonical
// activity records. Parsing is deliberately lenient: unparsable numbers
// default to zero, unrecognized actions classify as FEE, and unmatched option
// patterns yield empty metadata. Every applied default is reported as a row
// note so callers can run strict if they want.
package brokerage

import (
	"fmt"
	"strings"
)

// Activity is a canonical, account-agnostic transaction record produced from
// one CSV data row.
type Activity struct {
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	AssetType  string  `json:"asset_type"`
	Symbol     string  `json:"symbol"`
	Qty        float64 `json:"qty"`
	Price      float64 `json:"price"`
	Fees       float64 `json:"fees"`
	Multiplier float64 `json:"multiplier"`
	Amount     float64 `json:"amount"`
	Underlying string  `json:"underlying,omitempty"`
	OptionType string  `json:"option_type,omitempty"`
	Strike     float64 `json:"strike,omitempty"`
	Expiry     string  `json:"expiry,omitempty"`
}

// RowNote records a lenient default applied while normalizing one data row.
// Row is the 1-based index within the CSV file (the header is row 1).
type RowNote struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// headerAliases maps each logical column to the normalized header spellings
// brokerages use for it.
var headerAliases = map[string][]string{
	"date":        {"date", "transactiondate", "tradedate"},
	"action":      {"action", "transactiontype", "type"},
	"symbol":      {"symbol", "securitysymbol"},
	"description": {"description", "securitydescription"},
	"quantity":    {"quantity", "qty"},
	"price":       {"price"},
	"fees":        {"fees&comm", "feesandcomm", "fees", "commission"},
	"amount":      {"amount", "netamount", "value"},
}

// normalizeHeader lowercases a header cell and strips everything outside
// [a-z&] so spellings like "Fees & Comm" and "fees&comm" collide.
func normalizeHeader(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || r == '&' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnIndex resolves each logical column to its index in the header row,
// or -1 when no alias matches.
func columnIndex(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = normalizeHeader(cell)
	}

	index := make(map[string]int, len(headerAliases))
	for column, aliases := range headerAliases {
		index[column] = -1
		for i, cell := range normalized {
			for _, alias := range aliases {
				if cell == alias {
					index[column] = i
					break
				}
			}
			if index[column] >= 0 {
				break
			}
		}
	}
	return index
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Normalize converts tokenized CSV rows (header first) into canonical
// activities. Rows with an empty action or date are skipped. The returned
// notes record every lenient default that was applied.
func Normalize(rows [][]string) ([]Activity, []RowNote) {
	if len(rows) == 0 {
		return nil, nil
	}

	index := columnIndex(rows[0])
	var activities []Activity
	var notes []RowNote

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if len(row) == 0 {
			continue
		}

		rawAction := strings.TrimSpace(cellAt(row, index["action"]))
		rawDate := strings.TrimSpace(cellAt(row, index["date"]))
		if rawAction == "" || rawDate == "" {
			continue
		}

		description := strings.TrimSpace(cellAt(row, index["description"]))
		rawSymbol := strings.TrimSpace(cellAt(row, index["symbol"]))
		symbol := strings.ToUpper(rawSymbol)
		if symbol == "" {
			symbol = deriveSymbol(description)
		}
		if symbol == "" {
			symbol = "-"
		}

		action, matched := ClassifyAction(rawAction, description)
		if !matched {
			notes = append(notes, RowNote{Row: rowIdx + 1, Reason: fmt.Sprintf("unrecognized action %q classified as FEE", rawAction)})
		}
		assetType := DetectAssetType(symbol, description)

		qty := numericCell(row, index["quantity"], "quantity", rowIdx+1, &notes)
		price := numericCell(row, index["price"], "price", rowIdx+1, &notes)
		fees := numericCell(row, index["fees"], "fees", rowIdx+1, &notes)
		if fees < 0 {
			fees = -fees
		}
		amount := numericCell(row, index["amount"], "amount", rowIdx+1, &notes)

		multiplier := 1.0
		if assetType == "OPTION" {
			multiplier = 100
		}

		if amount == 0 {
			gross := qty * price * multiplier
			switch action {
			case ActionBuy:
				amount = -(gross + fees)
			case ActionSell:
				amount = gross - fees
			case ActionFee:
				amount = -abs(fees, gross)
			}
		}

		activity := Activity{
			Date:       NormalizeDate(rawDate),
			Type:       action,
			AssetType:  assetType,
			Symbol:     symbol,
			Qty:        qty,
			Price:      price,
			Fees:       fees,
			Multiplier: multiplier,
			Amount:     amount,
		}

		if assetType == "OPTION" {
			meta := ExtractOptionMeta(symbol, description)
			if meta.Underlying == "" {
				notes = append(notes, RowNote{Row: rowIdx + 1, Reason: "option row without parseable option metadata"})
			}
			activity.Underlying = meta.Underlying
			activity.OptionType = meta.OptionType
			activity.Strike = meta.Strike
			activity.Expiry = meta.Expiry
		}

		activities = append(activities, activity)
	}

	return activities, notes
}

func numericCell(row []string, idx int, column string, rowNum int, notes *[]RowNote) float64 {
	res := ParseNumeric(cellAt(row, idx))
	if res.Defaulted {
		*notes = append(*notes, RowNote{Row: rowNum, Reason: column + ": " + res.Reason})
	}
	return res.Value
}

// abs returns |primary|, falling back to |fallback| when primary is zero.
func abs(primary, fallback float64) float64 {
	v := primary
	if v == 0 {
		v = fallback
	}
	if v < 0 {
		return -v
	}
	return v
}

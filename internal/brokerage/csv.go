package brokerage

import "strings"

// ParseCSV tokenizes raw CSV text into rows of cells. Quoted fields may
// contain commas and newlines, a doubled quote inside a quoted field is a
// literal quote, and CR, LF, and CRLF line endings are all accepted. Rows
// whose cells are all blank are dropped.
func ParseCSV(input string) [][]string {
	var rows [][]string
	var row []string
	current := ""
	inQuotes := false

	flushRow := func() {
		row = append(row, current)
		current = ""
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if ch == '"' {
			if inQuotes && i+1 < len(input) && input[i+1] == '"' {
				current += `"`
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if ch == ',' && !inQuotes {
			row = append(row, current)
			current = ""
			continue
		}

		if (ch == '\n' || ch == '\r') && !inQuotes {
			if ch == '\r' && i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			flushRow()
			continue
		}

		current += string(ch)
	}

	if current != "" || len(row) > 0 {
		flushRow()
	}

	return rows
}

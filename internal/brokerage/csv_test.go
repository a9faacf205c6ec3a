package brokerage

import (
	"reflect"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Run("simple_rows", func(t *testing.T) {
		rows := ParseCSV("a,b,c\n1,2,3\n")
		want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("expected %v, got %v", want, rows)
		}
	})

	t.Run("quoted_fields_with_commas", func(t *testing.T) {
		rows := ParseCSV(`"Buy to Open","CALL AAPL 06/21/26 190","1,234.50"`)
		if len(rows) != 1 || len(rows[0]) != 3 {
			t.Fatalf("unexpected shape: %v", rows)
		}
		if rows[0][2] != "1,234.50" {
			t.Errorf("expected quoted comma preserved, got %q", rows[0][2])
		}
	})

	t.Run("doubled_quote_is_literal", func(t *testing.T) {
		rows := ParseCSV(`"he said ""hi""",x`)
		if rows[0][0] != `he said "hi"` {
			t.Errorf("got %q", rows[0][0])
		}
	})

	t.Run("line_ending_variants", func(t *testing.T) {
		for _, input := range []string{"a,b\r\nc,d", "a,b\nc,d", "a,b\rc,d"} {
			rows := ParseCSV(input)
			if len(rows) != 2 {
				t.Errorf("input %q: expected 2 rows, got %d", input, len(rows))
			}
		}
	})

	t.Run("blank_rows_dropped", func(t *testing.T) {
		rows := ParseCSV("a,b\n,,\n\n ,\nc,d")
		if len(rows) != 2 {
			t.Errorf("expected blank rows dropped, got %v", rows)
		}
	})

	t.Run("no_trailing_newline", func(t *testing.T) {
		rows := ParseCSV("a,b")
		if len(rows) != 1 || rows[0][1] != "b" {
			t.Errorf("got %v", rows)
		}
	})
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in        string
		want      float64
		defaulted bool
	}{
		{"", 0, false},
		{"7.60", 7.6, false},
		{"$1,521.25", 1521.25, false},
		{"(1,234.50)", -1234.5, false},
		{" $18 ", 18, false},
		{"-42", -42, false},
		{"N/A", 0, true},
		{"$", 0, false},
	}
	for _, tc := range cases {
		got := ParseNumeric(tc.in)
		if got.Value != tc.want {
			t.Errorf("ParseNumeric(%q) = %v, want %v", tc.in, got.Value, tc.want)
		}
		if got.Defaulted != tc.defaulted {
			t.Errorf("ParseNumeric(%q) defaulted = %v, want %v", tc.in, got.Defaulted, tc.defaulted)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-02-02", "2026-02-02"},
		{"02/02/2026", "2026-02-02"},
		{"2/2/2026", "2026-02-02"},
		{"06/21/26", "2026-06-21"},
		{"2026/02/02", "2026-02-02"},
		{"12-31-24", "2024-12-31"},
		{"  2026-02-02  ", "2026-02-02"},
		{"February 2", "February 2"},
	}
	for _, tc := range cases {
		if got := NormalizeDate(tc.in); got != tc.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

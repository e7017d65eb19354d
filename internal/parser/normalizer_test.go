package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount_VietnameseFormats(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1.234.567":     "1234567",
		"1.500":         "1500",
		"1.234,5":       "1234.5",
		"1,234,567.25":  "1234567.25",
		"150000 ₫":      "150000",
		"-12.5":         "-12.5",
		"(1.000)":       "-1000",
		"0.125":         "0.125",
		"abc":           "0",
		"":              "0",
		"  -  ":         "0",
		"45.000đ":       "45000",
	}
	for in, want := range cases {
		got := ParseAmount(in)
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("ParseAmount(%q) want=%s got=%s", in, want, got)
		}
	}
}

func TestParseOrderDate_TimePrefix(t *testing.T) {
	t.Parallel()

	d := ParseOrderDate("14:35 05/03/2025")
	if d == nil {
		t.Fatalf("expected date")
	}
	if d.Year() != 2025 || d.Month() != 3 || d.Day() != 5 {
		t.Fatalf("unexpected date: %v", d)
	}
	if ParseOrderDate("05/03/2025") == nil {
		t.Fatalf("plain date should parse")
	}
	if ParseOrderDate("31/02/2025") != nil {
		t.Fatalf("invalid calendar date should be absent")
	}
	if ParseOrderDate("không rõ") != nil {
		t.Fatalf("garbage should be absent")
	}
}

func TestParseAffiliateDate_TimeSuffix(t *testing.T) {
	t.Parallel()

	d := ParseAffiliateDate("07/11/2024 09:15:00")
	if d == nil || d.Day() != 7 || d.Month() != 11 || d.Year() != 2024 {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestParseLedgerDate_BothFormats(t *testing.T) {
	t.Parallel()

	iso := ParseLedgerDate("2025-01-09")
	dmy := ParseLedgerDate("09/01/2025")
	if iso == nil || dmy == nil {
		t.Fatalf("expected both dates to parse: iso=%v dmy=%v", iso, dmy)
	}
	if !iso.Equal(*dmy) {
		t.Fatalf("ledger dates differ: %v vs %v", iso, dmy)
	}
	if ParseLedgerDate("2025-13-01") != nil {
		t.Fatalf("invalid month should be absent")
	}
}

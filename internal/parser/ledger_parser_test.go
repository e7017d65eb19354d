package parser

import (
	"testing"

	"github.com/kidlost1412/shopchinh/internal/model"
)

func TestParseLedgers_ThreeSideBySideLedgers(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Ngày rút tiền", "Số tiền rút", "ngày nộp tiền", "số tiền nộp", "Tổng số tiền thuế", "Tổng phụ", "ngày rút tiền gvm", "số tiền gvm"},
		{"05/01/2025", "1.000.000", "2025-01-06", "500.000", "50.000", "450.000", "07/01/2025", "20.000"},
		{"", "", "2025-02-01", "300.000"},
		{"x", "y"},
		{"10/02/2025", "2.000.000", "", "", "", "", "", ""},
	}

	batch := ParseLedgers(rows, nil)
	var regular, gvm int
	for _, w := range batch.Ledgers.Withdrawals {
		switch w.Kind {
		case model.WithdrawalRegular:
			regular++
		case model.WithdrawalGVM:
			gvm++
		}
	}
	if regular != 2 || gvm != 1 {
		t.Fatalf("withdrawals mismatch: regular=%d gvm=%d", regular, gvm)
	}
	if len(batch.Ledgers.Advertising) != 2 {
		t.Fatalf("want 2 advertising entries, got %d", len(batch.Ledgers.Advertising))
	}
	ad := batch.Ledgers.Advertising[0]
	if !ad.Deposit.Equal(dec("500000")) || !ad.Tax.Equal(dec("50000")) || !ad.ActualReceived.Equal(dec("450000")) {
		t.Fatalf("advertising amounts mismatch: %+v", ad)
	}
	if ad.Date == nil || ad.Date.Day() != 6 {
		t.Fatalf("advertising date not parsed: %v", ad.Date)
	}
	if w := batch.Ledgers.Withdrawals[0]; !w.Amount.Equal(dec("1000000")) || w.Date == nil || w.Date.Day() != 5 {
		t.Fatalf("withdrawal mismatch: %+v", w)
	}
}

func TestParseLedgers_FallsBackToFixedColumns(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"a", "b", "c", "d", "e", "f", "g", "h"},
		{"05/01/2025", "1.000.000", "2025-01-06", "500.000", "0", "500.000", "", ""},
	}

	batch := ParseLedgers(rows, nil)
	if len(batch.Ledgers.Withdrawals) != 1 || len(batch.Ledgers.Advertising) != 1 {
		t.Fatalf("fixed column fallback failed: %+v", batch.Ledgers)
	}
	for _, w := range batch.Warnings {
		if w.Severity == SeverityCritical {
			t.Fatalf("fallback fields should not be critical: %+v", w)
		}
	}
}

func TestParseLedgers_InvalidDatesWarnForEveryLedger(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Ngày rút tiền", "Số tiền rút", "ngày nộp tiền", "số tiền nộp", "Tổng số tiền thuế", "Tổng phụ", "ngày rút tiền gvm", "số tiền gvm"},
		{"", "", "06-01-2025", "500.000", "50.000", "450.000", "", ""},
		{"32/01/2025", "1.000", "", "", "", "", "abc", "2.000"},
	}

	batch := ParseLedgers(rows, nil)
	if len(batch.Ledgers.Advertising) != 1 || batch.Ledgers.Advertising[0].Date != nil {
		t.Fatalf("advertising entry should be kept without a date: %+v", batch.Ledgers.Advertising)
	}
	if len(batch.Ledgers.Withdrawals) != 2 {
		t.Fatalf("withdrawals want=2 got=%d", len(batch.Ledgers.Withdrawals))
	}

	rowsWarned := map[int]int{}
	for _, w := range batch.Warnings {
		if w.Kind == KindMalformedRow && w.Severity == SeverityInfo {
			rowsWarned[w.Row]++
		}
	}
	if rowsWarned[2] != 1 {
		t.Fatalf("advertising date warning want=1 got=%d (%+v)", rowsWarned[2], batch.Warnings)
	}
	if rowsWarned[3] != 2 {
		t.Fatalf("withdrawal and gvm date warnings want=2 got=%d (%+v)", rowsWarned[3], batch.Warnings)
	}
}

func TestMapLedgerSchema_FixedPositionsForUnknownHeaders(t *testing.T) {
	t.Parallel()

	schema, warnings := MapLedgerSchema([]string{"a", "b", "c", "d", "e", "f", "g", "h"}, nil)
	if schema.Len() != len(LedgerFields) {
		t.Fatalf("mapped fields want=%d got=%d", len(LedgerFields), schema.Len())
	}
	if idx, ok := schema.Index(FieldAdDeposit); !ok || idx != 3 {
		t.Fatalf("ad deposit column want=3 got=%d", idx)
	}
	for _, w := range warnings {
		if w.Severity == SeverityCritical {
			t.Fatalf("fallback fields should not be critical: %+v", w)
		}
	}
}

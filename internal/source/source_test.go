package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

type countingSource struct {
	calls int
	rows  [][]string
	err   error
}

func (s *countingSource) FetchRows(_ context.Context, _, _ string) ([][]string, error) {
	s.calls++
	return s.rows, s.err
}

func TestCached_HitsAndInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingSource{rows: [][]string{{"Mã đơn hàng"}, {"A1"}}}
	cached := NewCached(next, NewMemoryCache(time.Minute), nil)

	for i := 0; i < 3; i++ {
		rows, err := cached.FetchRows(ctx, "sheet-id", "Orders")
		if err != nil {
			t.Fatalf("FetchRows: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows want=2 got=%d", len(rows))
		}
	}
	if next.calls != 1 {
		t.Fatalf("upstream calls want=1 got=%d", next.calls)
	}

	if err := cached.Invalidate(ctx, "sheet-id", "Orders"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := cached.FetchRows(ctx, "sheet-id", "Orders"); err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("upstream calls after invalidate want=2 got=%d", next.calls)
	}
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingSource{err: Unavailable("sheet-id", "Orders", errors.New("403 forbidden"))}
	cached := NewCached(next, NewMemoryCache(time.Minute), nil)

	_, err := cached.FetchRows(ctx, "sheet-id", "Orders")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
	var unavailable *SourceUnavailableError
	if !errors.As(err, &unavailable) || unavailable.Range != "Orders" {
		t.Fatalf("want SourceUnavailableError with range, got %#v", err)
	}

	next.err = nil
	next.rows = [][]string{{"h"}}
	if _, err := cached.FetchRows(ctx, "sheet-id", "Orders"); err != nil {
		t.Fatalf("retry should reach upstream: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("upstream calls want=2 got=%d", next.calls)
	}
}

func TestMemoryCache_Expires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", [][]string{{"a"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	now = now.Add(4 * time.Minute)
	if _, ok, _ := cache.Get(ctx, "k"); !ok {
		t.Fatalf("entry should still be fresh")
	}
	now = now.Add(time.Minute)
	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestFileSource_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "Mã đơn hàng;Trạng thái\nA1;Đã nhận\nA2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := NewFileSource().FetchRows(context.Background(), path, "ignored")
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(rows) != 3 || rows[1][1] != "Đã nhận" || len(rows[2]) != 1 {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestFileSource_Workbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.xlsx")
	wb := excelize.NewFile()
	if _, err := wb.NewSheet("Orders"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	_ = wb.SetSheetRow("Orders", "A1", &[]any{"Mã đơn hàng", "Trạng thái"})
	_ = wb.SetSheetRow("Orders", "A2", &[]any{"A1", "Đã gửi hàng"})
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	_ = wb.Close()

	src := NewFileSource()
	rows, err := src.FetchRows(context.Background(), path, "Orders")
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "A1" {
		t.Fatalf("unexpected rows: %q", rows)
	}

	_, err = src.FetchRows(context.Background(), path, "Missing")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("missing sheet should be unavailable, got %v", err)
	}
	_, err = src.FetchRows(context.Background(), filepath.Join(t.TempDir(), "none.xlsx"), "Orders")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("missing file should be unavailable, got %v", err)
	}
}

func TestSheetRange(t *testing.T) {
	t.Parallel()

	if got := SheetRange("Orders"); got != "Orders!A:AZ" {
		t.Fatalf("want=Orders!A:AZ got=%s", got)
	}
	if got := SheetRange("Orders!A1:C9"); got != "Orders!A1:C9" {
		t.Fatalf("explicit range should be kept, got=%s", got)
	}
}

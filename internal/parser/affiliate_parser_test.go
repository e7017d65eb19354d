package parser

import (
	"testing"

	"github.com/kidlost1412/shopchinh/internal/model"
)

func affiliateHeader() []string {
	header := make([]string, len(AffiliateFields))
	for i, f := range AffiliateFields {
		header[i] = f.Label
	}
	return header
}

func affiliateRow(values map[string]string) []string {
	row := make([]string, len(AffiliateFields))
	for i, f := range AffiliateFields {
		row[i] = values[f.Key]
	}
	return row
}

// TestBuildAffiliateOrders_PicksPrimaryRow 同一订单号 3 行，仅第 2 行有佣金基数
func TestBuildAffiliateOrders_PicksPrimaryRow(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		affiliateHeader(),
		affiliateRow(map[string]string{FieldAffOrderID: "AFF1", FieldAffProductName: "A", FieldAffCreatorName: "an", FieldAffCommissionBaseEstimated: "0"}),
		affiliateRow(map[string]string{
			FieldAffOrderID:                 "AFF1",
			FieldAffProductName:             "B",
			FieldAffCreatorName:             "bình",
			FieldAffOrderStatus:             "Đang xử lý",
			FieldAffContentType:             "Video",
			FieldAffCommissionBaseEstimated: "50.000",
			FieldAffStandardEstimated:       "5.000",
			FieldAffStandardActual:          "4.000",
			FieldAffAdEstimated:             "1.000",
			FieldAffCreateTime:              "01/12/2024 10:00:00",
		}),
		affiliateRow(map[string]string{FieldAffOrderID: "AFF1", FieldAffProductName: "C", FieldAffCreatorName: "chi"}),
	}

	batch := BuildAffiliateOrders(rows, nil)
	if len(batch.Orders) != 1 {
		t.Fatalf("want 1 affiliate order, got %d", len(batch.Orders))
	}
	o := batch.Orders[0]
	if !o.Revenue.Equal(dec("50000")) {
		t.Fatalf("revenue want=50000 got=%s", o.Revenue)
	}
	if o.ProductName != "B" || o.AffiliateName != "bình" {
		t.Fatalf("fields not taken from primary row: %+v", o)
	}
	if o.PrimaryRowIndex != 3 || o.DuplicateRowsCount != 3 {
		t.Fatalf("row bookkeeping mismatch: primary=%d dup=%d", o.PrimaryRowIndex, o.DuplicateRowsCount)
	}
	if o.StatusCode != model.AffiliateStatusProcessing || o.ContentTypeCode != model.ContentTypeVideo {
		t.Fatalf("enum mapping mismatch: %s %s", o.StatusCode, o.ContentTypeCode)
	}
	if !o.StandardCommissionActual.IsZero() {
		t.Fatalf("actual commission must be zero unless completed, got %s", o.StandardCommissionActual)
	}
	if !o.TotalCommissionEstimated.Equal(dec("6000")) {
		t.Fatalf("total estimated want=6000 got=%s", o.TotalCommissionEstimated)
	}
	if o.CreatedAt() == nil || o.CreatedAt().Month() != 12 {
		t.Fatalf("create time not parsed: %+v", o.CreateTime)
	}
	for _, w := range batch.Warnings {
		if w.Kind == KindAmbiguousPrimaryRow {
			t.Fatalf("unexpected ambiguity warning: %+v", w)
		}
	}
}

func TestBuildAffiliateOrders_CompletedReadsActualCommission(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		affiliateHeader(),
		affiliateRow(map[string]string{
			FieldAffOrderID:                 "AFF2",
			FieldAffOrderStatus:             "Đã hoàn thành",
			FieldAffCommissionBaseEstimated: "100000",
			FieldAffStandardActual:          "7000",
			FieldAffAdActual:                "3000",
		}),
	}

	batch := BuildAffiliateOrders(rows, nil)
	if len(batch.Orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(batch.Orders))
	}
	o := batch.Orders[0]
	if !o.TotalCommissionActual.Equal(dec("10000")) || o.StatusCode != model.AffiliateStatusCompleted {
		t.Fatalf("completed order actual commission mismatch: %+v", o)
	}
}

func TestBuildAffiliateOrders_AmbiguousAndMissingPrimary(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		affiliateHeader(),
		affiliateRow(map[string]string{FieldAffOrderID: "X1", FieldAffProductName: "first", FieldAffCommissionBaseEstimated: "10"}),
		affiliateRow(map[string]string{FieldAffOrderID: "X2", FieldAffCommissionBaseEstimated: "0"}),
		affiliateRow(map[string]string{FieldAffOrderID: "X1", FieldAffProductName: "second", FieldAffCommissionBaseEstimated: "20"}),
		affiliateRow(map[string]string{FieldAffOrderID: "", FieldAffProductName: "không mã"}),
	}

	batch := BuildAffiliateOrders(rows, nil)
	if batch.Groups != 2 {
		t.Fatalf("want 2 groups, got %d", batch.Groups)
	}
	if len(batch.Orders) != 1 || batch.Orders[0].ID != "X1" || batch.Orders[0].ProductName != "first" {
		t.Fatalf("first qualifying row should win: %+v", batch.Orders)
	}

	var ambiguous, malformed int
	for _, w := range batch.Warnings {
		switch w.Kind {
		case KindAmbiguousPrimaryRow:
			ambiguous++
		case KindMalformedRow:
			malformed++
		}
	}
	if ambiguous != 2 || malformed != 1 {
		t.Fatalf("want 2 ambiguity + 1 malformed warnings, got %+v", batch.Warnings)
	}
}

package parser

import (
	"reflect"
	"testing"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// orderRow 按 OrderFields 顺序生成一行，未给出的字段为空
func orderRow(values map[string]string) []string {
	row := make([]string, len(OrderFields))
	for i, f := range OrderFields {
		row[i] = values[f.Key]
	}
	return row
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildOrders_ContinuationRowAppendsProduct(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		orderHeader(),
		orderRow(map[string]string{FieldOrderID: "A1", FieldStatus: "Đã nhận", FieldProductName: "X", FieldQuantity: "1", FieldActualReceived: "300"}),
		orderRow(map[string]string{FieldOrderID: "", FieldProductName: "Y", FieldQuantity: "2"}),
	}

	batch := BuildOrders(rows, nil)
	if len(batch.Orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(batch.Orders))
	}
	o := batch.Orders[0]
	if len(o.Products) != 2 {
		t.Fatalf("want 2 products, got %d", len(o.Products))
	}
	if o.Products[1].Name != "Y" || !o.Products[1].Quantity.Equal(dec("2")) {
		t.Fatalf("unexpected continuation product: %+v", o.Products[1])
	}
	if o.StatusCode != model.OrderStatusReceived {
		t.Fatalf("status changed by continuation row: %s", o.StatusCode)
	}
}

func TestBuildOrders_ContinuationRevenueIsAdditive(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		orderHeader(),
		orderRow(map[string]string{FieldOrderID: "B1", FieldStatus: "Đã gửi hàng", FieldProductName: "X", FieldRevenue: "100.000"}),
		orderRow(map[string]string{FieldProductName: "Y", FieldRevenue: "50.000"}),
		orderRow(map[string]string{FieldProductName: "Z", FieldRevenue: "0"}),
		orderRow(map[string]string{FieldProductName: "W", FieldRevenue: "-10.000"}),
	}

	batch := BuildOrders(rows, nil)
	if len(batch.Orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(batch.Orders))
	}
	o := batch.Orders[0]
	if !o.Revenue.Equal(dec("150000")) {
		t.Fatalf("revenue want=150000 got=%s", o.Revenue)
	}
	if o.RevenueSource != model.RevenueFromPreFee {
		t.Fatalf("source want=%s got=%s", model.RevenueFromPreFee, o.RevenueSource)
	}
	if !o.RevenueBeforeFees.Equal(dec("150000")) {
		t.Fatalf("revenueBeforeFees want=150000 got=%s", o.RevenueBeforeFees)
	}
	if len(o.Products) != 4 {
		t.Fatalf("want 4 products, got %d", len(o.Products))
	}
}

func TestBuildOrders_OrphanAndPlaceholderRows(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		orderHeader(),
		orderRow(map[string]string{FieldProductName: "mồ côi"}),
		orderRow(map[string]string{FieldOrderID: "C1", FieldStatus: "Đã huỷ", FieldProductName: "X", FieldActualPayment: "100"}),
		orderRow(map[string]string{FieldOrderID: "_", FieldProductName: "Y", FieldActualPayment: "20"}),
		{},
		orderRow(map[string]string{FieldOrderID: "C2", FieldStatus: "Đang đóng hàng"}),
	}

	batch := BuildOrders(rows, nil)
	if len(batch.Orders) != 2 {
		t.Fatalf("want 2 orders, got %d", len(batch.Orders))
	}
	if got := len(batch.Orders[0].Products); got != 2 {
		t.Fatalf("placeholder row should continue C1, products=%d", got)
	}
	if !batch.Orders[0].Revenue.Equal(dec("120")) {
		t.Fatalf("C1 revenue want=120 got=%s", batch.Orders[0].Revenue)
	}
	if len(batch.Orders[1].Products) != 0 {
		t.Fatalf("C2 has no product name, products=%d", len(batch.Orders[1].Products))
	}

	orphans := 0
	for _, w := range batch.Warnings {
		if w.Kind == KindMalformedRow && w.Row == 2 {
			orphans++
		}
	}
	if orphans != 1 {
		t.Fatalf("want orphan warning for row 2, got %+v", batch.Warnings)
	}
}

func TestBuildOrders_ShortRowsAndNotesFallback(t *testing.T) {
	t.Parallel()

	header := orderHeader()
	rows := [][]string{
		header,
		{"D1", "WB001", "Đã nhận"},
		orderRow(map[string]string{FieldOrderID: "D2", FieldTags: "khách quen", FieldCreateDate: "10:00 02/01/2025"}),
	}

	batch := BuildOrders(rows, nil)
	if len(batch.Orders) != 2 {
		t.Fatalf("want 2 orders, got %d", len(batch.Orders))
	}
	d1 := batch.Orders[0]
	if d1.WaybillCode != "WB001" || !d1.Revenue.IsZero() || d1.CreateDate.Valid() {
		t.Fatalf("short row not padded: %+v", d1)
	}
	d2 := batch.Orders[1]
	if d2.Notes != "khách quen" {
		t.Fatalf("notes should fall back to tags, got %q", d2.Notes)
	}
	if !d2.CreateDate.Valid() || d2.CreateDate.Parsed.Day() != 2 {
		t.Fatalf("create date not parsed: %+v", d2.CreateDate)
	}
	if d2.PeriodDate() != d2.CreateDate.Parsed {
		t.Fatalf("period date should fall back to create date")
	}
}

func TestBuildOrders_Idempotent(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		append(orderHeader(), "Cột thừa"),
		orderRow(map[string]string{FieldOrderID: "E1", FieldStatus: "Đã nhận", FieldProductName: "X", FieldActualReceived: "1.000", FieldDeliveryDate: "08:00 03/02/2025"}),
		orderRow(map[string]string{FieldProductName: "Y"}),
		orderRow(map[string]string{FieldProductName: "Z"}),
	}

	first := BuildOrders(rows, nil)
	second := BuildOrders(rows, nil)
	if !reflect.DeepEqual(first.Orders, second.Orders) {
		t.Fatalf("orders differ between runs")
	}
	if !reflect.DeepEqual(first.Warnings, second.Warnings) {
		t.Fatalf("warnings differ between runs:\n%+v\n%+v", first.Warnings, second.Warnings)
	}
}

func TestBuildOrders_EmptyInput(t *testing.T) {
	t.Parallel()

	batch := BuildOrders(nil, nil)
	if len(batch.Orders) != 0 || len(batch.Warnings) != 1 || batch.Warnings[0].Severity != SeverityCritical {
		t.Fatalf("unexpected batch for empty input: %+v", batch)
	}
}

package calculator

import (
	"testing"
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(id, status string, revenue, preFee, payment string) *model.Order {
	return &model.Order{
		ID:                id,
		Status:            status,
		StatusCode:        model.ParseOrderStatus(status),
		Revenue:           dec(revenue),
		RevenueBeforeFees: dec(preFee),
		ActualPayment:     dec(payment),
	}
}

func TestAggregateOrders_Buckets(t *testing.T) {
	t.Parallel()

	orders := []*model.Order{
		order("1", "Đã nhận", "90", "100", "0"),
		order("2", "Đã gửi hàng", "200", "200", "0"),
		order("3", "Đã hoàn", "-50", "150", "-50"),
		order("4", "Đã huỷ", "30", "300", "30"),
		order("5", "Đã xác nhận", "400", "400", "0"),
		order("6", "Không rõ", "999", "999", "999"),
	}

	m := AggregateOrders(orders)
	if m.TotalOrders != 6 {
		t.Fatalf("total input want=6 got=%d", m.TotalOrders)
	}

	all := m.Bucket(model.LabelAllOrders)
	if all.Count != 3 {
		t.Fatalf("all-orders count want=3 got=%d", all.Count)
	}
	// 100 + 200 + (150 - 50)
	if !all.Revenue.Equal(dec("400")) {
		t.Fatalf("all-orders revenue want=400 got=%s", all.Revenue)
	}
	if b := m.Bucket(model.LabelReceivedGoods); b.Count != 1 || !b.Revenue.Equal(dec("100")) {
		t.Fatalf("received bucket uses pre-fee revenue: %+v", b)
	}
	if b := m.Bucket(model.LabelCancelled); b.Count != 1 || !b.Revenue.Equal(dec("30")) {
		t.Fatalf("cancelled bucket mismatch: %+v", b)
	}
	if b := m.Bucket(model.LabelReturned); !b.Revenue.Equal(dec("-50")) {
		t.Fatalf("returned bucket mismatch: %+v", b)
	}
	if len(m.Buckets) != 8 {
		t.Fatalf("want 8 buckets, got %d", len(m.Buckets))
	}
}

func TestRevenueTrend_DeliveryDateFirst(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("ICT", 7*60*60)
	d1 := time.Date(2025, 1, 2, 0, 0, 0, 0, loc)
	d2 := time.Date(2025, 1, 1, 0, 0, 0, 0, loc)

	a := order("a", "Đã nhận", "10", "0", "0")
	a.CreateDate.Parsed = &d2
	a.DeliveryDate.Parsed = &d1
	b := order("b", "Đã nhận", "5", "0", "0")
	b.CreateDate.Parsed = &d2
	c := order("c", "Đã nhận", "7", "0", "0")

	trend := RevenueTrend([]*model.Order{a, b, c})
	if len(trend) != 2 {
		t.Fatalf("want 2 points, got %+v", trend)
	}
	if trend[0].Date != "2025-01-01" || !trend[0].Revenue.Equal(dec("5")) {
		t.Fatalf("first point mismatch: %+v", trend[0])
	}
	if trend[1].Date != "2025-01-02" || trend[1].Orders != 1 {
		t.Fatalf("second point mismatch: %+v", trend[1])
	}
}

func TestStatusDistribution_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	dist := StatusDistribution([]*model.Order{
		order("1", "Đã gửi hàng", "1", "0", "0"),
		order("2", " Đã nhận ", "2", "0", "0"),
		order("3", "Đã gửi hàng", "3", "0", "0"),
	})
	if len(dist) != 2 || dist[0].Name != "Đã gửi hàng" || dist[0].Count != 2 || !dist[0].Revenue.Equal(dec("4")) {
		t.Fatalf("unexpected distribution: %+v", dist)
	}
	if dist[1].Name != "Đã nhận" {
		t.Fatalf("status should be trimmed: %q", dist[1].Name)
	}
}

func TestProductAnalysis_ShippedOnly(t *testing.T) {
	t.Parallel()

	shipped := order("1", "Đã gửi hàng", "0", "0", "0")
	shipped.Products = []model.Product{{Name: "Son", Quantity: dec("2"), Revenue: dec("20")}}
	cancelled := order("2", "Đã huỷ", "0", "0", "0")
	cancelled.Products = []model.Product{{Name: "Son", Quantity: dec("5"), Revenue: dec("50")}, {Name: "Kem", Quantity: dec("1")}}

	all := ProductAnalysis([]*model.Order{shipped, cancelled}, false)
	if len(all) != 2 || all[0].Name != "Son" || !all[0].Quantity.Equal(dec("7")) || all[0].Orders != 2 {
		t.Fatalf("unexpected product analysis: %+v", all)
	}
	onlyShipped := ProductAnalysis([]*model.Order{shipped, cancelled}, true)
	if len(onlyShipped) != 1 || !onlyShipped[0].Quantity.Equal(dec("2")) {
		t.Fatalf("shipped filter mismatch: %+v", onlyShipped)
	}
	if got := ProductOrders([]*model.Order{shipped, cancelled}, "Kem", false); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("product orders mismatch: %+v", got)
	}
}

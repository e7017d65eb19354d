package finance

import (
	"testing"
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

var ict = time.FixedZone("ICT", 7*60*60)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, ict)
	return &t
}

func receivedOrder(id string, delivered *time.Time, preFee, actual string) *model.Order {
	o := &model.Order{
		ID:                id,
		Status:            model.LabelReceived,
		StatusCode:        model.OrderStatusReceived,
		RevenueBeforeFees: dec(preFee),
		ActualReceived:    dec(actual),
	}
	o.DeliveryDate.Parsed = delivered
	return o
}

func TestReconcile_PartitionLaw(t *testing.T) {
	t.Parallel()

	orders := []*model.Order{
		receivedOrder("1", day(2025, 3, 1), "100", "90"),
		receivedOrder("2", day(2025, 3, 2), "200", "0"),
		receivedOrder("3", day(2025, 3, 3), "300", "-20"),
		receivedOrder("4", day(2025, 3, 4), "50", "0"),
		{ID: "5", Status: "Đã gửi hàng", StatusCode: model.OrderStatusShipped, RevenueBeforeFees: dec("999"), ActualReceived: dec("0")},
	}

	snap := Reconcile(orders, model.Ledgers{}, model.Period{})
	if snap.TotalReceivedOrders != 4 {
		t.Fatalf("received orders want=4 got=%d", snap.TotalReceivedOrders)
	}
	if snap.ReconciledCount+snap.UnreconciledCount != snap.TotalReceivedOrders {
		t.Fatalf("partition broken: %d + %d != %d", snap.ReconciledCount, snap.UnreconciledCount, snap.TotalReceivedOrders)
	}
	if !snap.ReconciledRevenue.Equal(dec("70")) {
		t.Fatalf("reconciled revenue keeps sign: want=70 got=%s", snap.ReconciledRevenue)
	}
	if !snap.UnreconciledRevenue.Equal(dec("250")) {
		t.Fatalf("unreconciled revenue want=250 got=%s", snap.UnreconciledRevenue)
	}
	if !snap.TotalReceivedRevenue.Equal(dec("650")) {
		t.Fatalf("received revenue want=650 got=%s", snap.TotalReceivedRevenue)
	}
	if snap.TotalOrdersProcessed != 5 || snap.OrdersInPeriod != 5 {
		t.Fatalf("order counts mismatch: %d/%d", snap.TotalOrdersProcessed, snap.OrdersInPeriod)
	}
}

func TestReconcile_PlatformCosts(t *testing.T) {
	t.Parallel()

	a := receivedOrder("1", day(2025, 3, 1), "100", "0")
	a.AffiliateFee = dec("-10")
	a.PlatformFee = dec("-9")
	a.Tax = dec("-1.5")
	a.PlatformSubsidy = dec("4")
	b := receivedOrder("2", day(2025, 3, 1), "100", "0")
	b.AffiliateFee = dec("-5")
	b.ShippingFee = dec("-20")
	b.PlatformSubsidy = dec("1")
	shipped := &model.Order{ID: "3", StatusCode: model.OrderStatusShipped, AffiliateFee: dec("-1000")}

	snap := Reconcile([]*model.Order{a, b, shipped}, model.Ledgers{}, model.Period{})
	if !snap.CostBreakdown.AffiliateFee.Equal(dec("15")) {
		t.Fatalf("affiliate fee want=15 got=%s", snap.CostBreakdown.AffiliateFee)
	}
	// 15 + 20 + 9 + 1.5 - 5
	if !snap.TotalPlatformCosts.Equal(dec("40.5")) {
		t.Fatalf("total costs want=40.5 got=%s", snap.TotalPlatformCosts)
	}
}

func TestReconcile_PeriodAsymmetry(t *testing.T) {
	t.Parallel()

	orders := []*model.Order{
		receivedOrder("old", day(2025, 1, 15), "100", "80"),
		receivedOrder("new", day(2025, 3, 10), "200", "190"),
		receivedOrder("nodate", nil, "300", "10"),
	}
	ledgers := model.Ledgers{
		Withdrawals: []model.WithdrawalEntry{
			{Date: day(2025, 1, 20), Amount: dec("50"), Kind: model.WithdrawalRegular},
			{Date: day(2025, 3, 12), Amount: dec("40"), Kind: model.WithdrawalRegular},
			{Date: day(2025, 1, 1), Amount: dec("5"), Kind: model.WithdrawalGVM},
			{Date: nil, Amount: dec("3"), Kind: model.WithdrawalGVM},
		},
		Advertising: []model.AdvertisingEntry{
			{Date: day(2025, 2, 28), Deposit: dec("1000"), Tax: dec("100"), ActualReceived: dec("900")},
			{Date: day(2025, 3, 1), Deposit: dec("500"), Tax: dec("50"), ActualReceived: dec("450")},
		},
	}
	period := model.Period{Start: *day(2025, 3, 1), End: *day(2025, 3, 31)}

	snap := Reconcile(orders, ledgers, period)
	if snap.OrdersInPeriod != 1 || snap.TotalReceivedOrders != 1 {
		t.Fatalf("period orders mismatch: in=%d received=%d", snap.OrdersInPeriod, snap.TotalReceivedOrders)
	}
	if !snap.TotalActualReceivedAllTime.Equal(dec("280")) {
		t.Fatalf("lifetime actual received want=280 got=%s", snap.TotalActualReceivedAllTime)
	}
	if !snap.TotalWithdrawnAllTime.Equal(dec("90")) {
		t.Fatalf("lifetime withdrawals want=90 got=%s", snap.TotalWithdrawnAllTime)
	}
	if !snap.WithdrawnInPeriod.Equal(dec("40")) {
		t.Fatalf("withdrawn in period want=40 got=%s", snap.WithdrawnInPeriod)
	}
	// 280 - 90 - 8
	if !snap.CurrentBalance.Equal(dec("182")) {
		t.Fatalf("balance want=182 got=%s", snap.CurrentBalance)
	}
	if snap.Advertising.RecordCount != 1 || !snap.Advertising.TotalDeposit.Equal(dec("500")) {
		t.Fatalf("advertising should be period-scoped: %+v", snap.Advertising)
	}
	if snap.Advertising.GVMRecordCount != 2 || !snap.Advertising.TotalGVMFee.Equal(dec("8")) {
		t.Fatalf("gvm should be lifetime: %+v", snap.Advertising)
	}
}

func TestOrdersWithFee(t *testing.T) {
	t.Parallel()

	a := &model.Order{ID: "a", ExtraFee: dec("-3")}
	b := &model.Order{ID: "b"}
	c := &model.Order{ID: "c", ExtraFee: dec("1")}

	got := OrdersWithFee([]*model.Order{a, b, c}, model.FeeExtra)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected orders: %+v", got)
	}
	if total := TotalFee(got, model.FeeExtra); !total.Equal(dec("-2")) {
		t.Fatalf("signed total want=-2 got=%s", total)
	}
}

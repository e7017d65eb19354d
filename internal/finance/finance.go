package finance

import (
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// FilterOrders 财务独立的日期过滤：推单日期优先，其次下单日期；无日期的订单不计入有界区间
func FilterOrders(orders []*model.Order, period model.Period) []*model.Order {
	if period.Unbounded() {
		return orders
	}
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		if period.ContainsDate(o.PeriodDate()) {
			out = append(out, o)
		}
	}
	return out
}

// ReceivedOrders 区间内状态为"已签收"的订单
func ReceivedOrders(orders []*model.Order) []*model.Order {
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		if o.StatusCode == model.OrderStatusReceived {
			out = append(out, o)
		}
	}
	return out
}

// Reconcile 生成区间财务快照
//
// 钱包余额按全部订单、全部提现和全部 GVM 费用计算，不受区间影响；
// 广告账和区间内提现只统计区间内记录。
func Reconcile(orders []*model.Order, ledgers model.Ledgers, period model.Period) model.FinanceSnapshot {
	inPeriod := FilterOrders(orders, period)
	received := ReceivedOrders(inPeriod)

	snap := model.FinanceSnapshot{
		TotalReceivedRevenue: decimal.Zero,
		TotalReceivedOrders:  len(received),
		Period:               period,
		TotalOrdersProcessed: len(orders),
		OrdersInPeriod:       len(inPeriod),
	}

	for _, o := range received {
		snap.TotalReceivedRevenue = snap.TotalReceivedRevenue.Add(o.RevenueBeforeFees)
	}

	snap.CostBreakdown, snap.TotalPlatformCosts = platformCosts(received)
	reconcile(&snap, received)
	settleWallet(&snap, orders, ledgers, period)
	snap.Advertising = summarizeAdvertising(ledgers, period)
	return snap
}

// platformCosts 每类费用先求和再取绝对值，总成本 = 七类费用 - 平台补贴
func platformCosts(received []*model.Order) (model.CostBreakdown, decimal.Decimal) {
	b := model.CostBreakdown{
		AffiliateFee:    TotalFee(received, model.FeeAffiliate).Abs(),
		ShippingFee:     TotalFee(received, model.FeeShipping).Abs(),
		ShopShippingFee: TotalFee(received, model.FeeShopShipping).Abs(),
		PlatformFee:     TotalFee(received, model.FeePlatform).Abs(),
		ExtraFee:        TotalFee(received, model.FeeExtra).Abs(),
		FlashSaleFee:    TotalFee(received, model.FeeFlashSale).Abs(),
		Tax:             TotalFee(received, model.FeeTax).Abs(),
		PlatformSubsidy: TotalFee(received, model.FeePlatformSubsidy).Abs(),
	}
	total := b.AffiliateFee.
		Add(b.ShippingFee).
		Add(b.ShopShippingFee).
		Add(b.PlatformFee).
		Add(b.ExtraFee).
		Add(b.FlashSaleFee).
		Add(b.Tax).
		Sub(b.PlatformSubsidy)
	return b, total
}

// reconcile 已对账 = 实际到账非零（保留符号），其余为未对账并回退到未扣费收入
func reconcile(snap *model.FinanceSnapshot, received []*model.Order) {
	snap.ReconciledRevenue = decimal.Zero
	snap.UnreconciledRevenue = decimal.Zero
	for _, o := range received {
		if !o.ActualReceived.IsZero() {
			snap.ReconciledCount++
			snap.ReconciledRevenue = snap.ReconciledRevenue.Add(o.ActualReceived)
			continue
		}
		snap.UnreconciledCount++
		snap.UnreconciledRevenue = snap.UnreconciledRevenue.Add(o.RevenueBeforeFees)
	}
}

func settleWallet(snap *model.FinanceSnapshot, orders []*model.Order, ledgers model.Ledgers, period model.Period) {
	snap.TotalActualReceivedAllTime = decimal.Zero
	for _, o := range orders {
		snap.TotalActualReceivedAllTime = snap.TotalActualReceivedAllTime.Add(o.ActualReceived)
	}

	snap.TotalWithdrawnAllTime = decimal.Zero
	snap.WithdrawnInPeriod = decimal.Zero
	gvm := decimal.Zero
	for _, w := range ledgers.Withdrawals {
		if w.Kind == model.WithdrawalGVM {
			gvm = gvm.Add(w.Amount)
			continue
		}
		snap.TotalWithdrawnAllTime = snap.TotalWithdrawnAllTime.Add(w.Amount)
		if inLedgerPeriod(period, w.Date) {
			snap.WithdrawnInPeriod = snap.WithdrawnInPeriod.Add(w.Amount)
		}
	}

	snap.CurrentBalance = snap.TotalActualReceivedAllTime.
		Sub(snap.TotalWithdrawnAllTime).
		Sub(gvm)
}

func summarizeAdvertising(ledgers model.Ledgers, period model.Period) model.AdvertisingSummary {
	s := model.AdvertisingSummary{
		TotalDeposit:        decimal.Zero,
		TotalTax:            decimal.Zero,
		TotalActualReceived: decimal.Zero,
		TotalGVMFee:         decimal.Zero,
	}
	for _, a := range ledgers.Advertising {
		if !inLedgerPeriod(period, a.Date) {
			continue
		}
		s.RecordCount++
		s.TotalDeposit = s.TotalDeposit.Add(a.Deposit)
		s.TotalTax = s.TotalTax.Add(a.Tax)
		s.TotalActualReceived = s.TotalActualReceived.Add(a.ActualReceived)
	}
	for _, w := range ledgers.Withdrawals {
		if w.Kind != model.WithdrawalGVM {
			continue
		}
		s.GVMRecordCount++
		s.TotalGVMFee = s.TotalGVMFee.Add(w.Amount)
	}
	return s
}

// inLedgerPeriod 不限区间时包含全部流水（含日期缺失的），否则日期缺失的流水不计入
func inLedgerPeriod(period model.Period, date *time.Time) bool {
	if period.Unbounded() {
		return true
	}
	return period.ContainsDate(date)
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalKind 提现流水类型
type WithdrawalKind string

const (
	WithdrawalRegular WithdrawalKind = "regular"
	WithdrawalGVM     WithdrawalKind = "gvm" // 平台 GVM 费用，按全周期统计
)

// WithdrawalEntry 提现流水
type WithdrawalEntry struct {
	Date   *time.Time      `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Kind   WithdrawalKind  `json:"kind"`
	Row    int             `json:"row"`
}

// AdvertisingEntry 广告充值流水
type AdvertisingEntry struct {
	Date           *time.Time      `json:"date"`
	Deposit        decimal.Decimal `json:"deposit"`
	Tax            decimal.Decimal `json:"tax"`
	ActualReceived decimal.Decimal `json:"actualReceived"`
	Row            int             `json:"row"`
}

// Ledgers 提现/广告两本外部账
type Ledgers struct {
	Withdrawals []WithdrawalEntry  `json:"withdrawals"`
	Advertising []AdvertisingEntry `json:"advertising"`
}

// Period 统计区间，零值表示不限
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 按自然日比较，两端闭区间
func (p Period) Contains(t time.Time) bool {
	day := DayOf(t)
	if !p.Start.IsZero() && day.Before(DayOf(p.Start)) {
		return false
	}
	if !p.End.IsZero() && day.After(DayOf(p.End)) {
		return false
	}
	return true
}

// ContainsDate 日期缺失时不计入区间
func (p Period) ContainsDate(t *time.Time) bool {
	return t != nil && p.Contains(*t)
}

// Unbounded 是否未限定区间
func (p Period) Unbounded() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// DayOf 截断到当天零点（保留时区）
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CostBreakdown 成本明细（均为绝对值）
type CostBreakdown struct {
	AffiliateFee    decimal.Decimal `json:"affFee"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	ShopShippingFee decimal.Decimal `json:"shopShippingFee"`
	PlatformFee     decimal.Decimal `json:"platformFee"`
	ExtraFee        decimal.Decimal `json:"xtraFee"`
	FlashSaleFee    decimal.Decimal `json:"flashSaleFee"`
	Tax             decimal.Decimal `json:"tax"`
	PlatformSubsidy decimal.Decimal `json:"tiktokSubsidy"`
}

// AdvertisingSummary 区间内广告账汇总
type AdvertisingSummary struct {
	TotalDeposit        decimal.Decimal `json:"totalDeposit"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	TotalActualReceived decimal.Decimal `json:"totalActualReceived"`
	RecordCount         int             `json:"recordCount"`
	TotalGVMFee         decimal.Decimal `json:"totalGvmFee"` // 全周期
	GVMRecordCount      int             `json:"gvmRecordCount"`
}

// FinanceSnapshot 某一区间的财务对账快照，每次请求重新计算
type FinanceSnapshot struct {
	TotalReceivedRevenue decimal.Decimal `json:"totalReceivedRevenue"`
	TotalReceivedOrders  int             `json:"totalReceivedOrders"`
	TotalPlatformCosts   decimal.Decimal `json:"totalPlatformCosts"`
	CostBreakdown        CostBreakdown   `json:"costBreakdown"`

	ReconciledCount     int             `json:"reconciledCount"`
	ReconciledRevenue   decimal.Decimal `json:"reconciledRevenue"`
	UnreconciledCount   int             `json:"unreconciledCount"`
	UnreconciledRevenue decimal.Decimal `json:"unreconciledRevenue"`

	CurrentBalance             decimal.Decimal `json:"currentBalance"`
	TotalWithdrawnAllTime      decimal.Decimal `json:"totalWithdrawnAllTime"`
	TotalActualReceivedAllTime decimal.Decimal `json:"totalActualReceivedAllTime"`
	WithdrawnInPeriod          decimal.Decimal `json:"withdrawnInPeriod"`

	Advertising AdvertisingSummary `json:"advertisingData"`

	Period               Period `json:"dateRange"`
	TotalOrdersProcessed int    `json:"totalOrdersProcessed"`
	OrdersInPeriod       int    `json:"ordersInPeriod"`
}

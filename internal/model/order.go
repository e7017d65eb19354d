package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateField 原始日期文本 + 解析结果（无法解析时 Parsed 为 nil）
type DateField struct {
	Raw    string     `json:"raw"`
	Parsed *time.Time `json:"parsed,omitempty"`
}

// Valid 日期是否解析成功
func (d DateField) Valid() bool {
	return d.Parsed != nil
}

// Product 订单中的商品行
type Product struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Image     string          `json:"image"`
	Revenue   decimal.Decimal `json:"revenue"` // 按订单状态归因的本行收入
}

// Order POS 订单（一行主行 + 若干续行）
type Order struct {
	ID          string      `json:"id"`
	WaybillCode string      `json:"waybillCode"`
	Status      string      `json:"status"` // 原始状态文本
	StatusCode  OrderStatus `json:"statusCode"`
	Province    string      `json:"province"`

	CreateDate   DateField `json:"createDate"`
	UpdateDate   DateField `json:"updateDate"`
	DeliveryDate DateField `json:"deliveryDate"` // 推单至物流时间

	// 收入相关
	Revenue           decimal.Decimal `json:"revenue"` // 归因收入
	RevenueSource     RevenueSource   `json:"revenueSource"`
	RevenueBeforeFees decimal.Decimal `json:"revenueBeforeFees"` // 未扣平台费收入
	ActualPayment     decimal.Decimal `json:"actualPayment"`     // 实际付款
	ActualReceived    decimal.Decimal `json:"actualReceived"`    // 实际到账

	// 费用
	AffiliateFee       decimal.Decimal `json:"affFee"`
	ShippingFee        decimal.Decimal `json:"shippingFee"`
	ShopShippingFee    decimal.Decimal `json:"shopShippingFee"`
	PlatformFee        decimal.Decimal `json:"platformFee"` // 9% 平台费（实际）
	ExtraFee           decimal.Decimal `json:"xtraFee"`
	FlashSaleFee       decimal.Decimal `json:"flashSaleFee"`
	Tax                decimal.Decimal `json:"tax"`
	PlatformSubsidy    decimal.Decimal `json:"tiktokSubsidy"` // 平台补贴，成本中扣减
	ReconciliationFee  decimal.Decimal `json:"reconciliationFee"`
	MarketplaceSubsidy decimal.Decimal `json:"marketplaceSubsidy"` // Sàn trợ giá
	OtherFee           decimal.Decimal `json:"otherFee"`
	TransactionFee     decimal.Decimal `json:"transactionFee"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`

	AffiliateName string    `json:"affName"`
	Tags          string    `json:"tags"`
	Notes         string    `json:"notes"`
	Products      []Product `json:"products"`
}

// PeriodDate 统计周期使用的日期：优先推单时间，其次下单时间
func (o *Order) PeriodDate() *time.Time {
	if o.DeliveryDate.Parsed != nil {
		return o.DeliveryDate.Parsed
	}
	return o.CreateDate.Parsed
}

// Fee 按费用类型取值
func (o *Order) Fee(t FeeType) decimal.Decimal {
	switch t {
	case FeeAffiliate:
		return o.AffiliateFee
	case FeeShipping:
		return o.ShippingFee
	case FeeShopShipping:
		return o.ShopShippingFee
	case FeePlatform:
		return o.PlatformFee
	case FeeExtra:
		return o.ExtraFee
	case FeeFlashSale:
		return o.FlashSaleFee
	case FeeTax:
		return o.Tax
	case FeePlatformSubsidy:
		return o.PlatformSubsidy
	default:
		return decimal.Zero
	}
}

// FeeType 对账成本的 8 个费用类别
type FeeType string

const (
	FeeAffiliate       FeeType = "affFee"
	FeeShipping        FeeType = "shippingFee"
	FeeShopShipping    FeeType = "shopShippingFee"
	FeePlatform        FeeType = "platformFee"
	FeeExtra           FeeType = "xtraFee"
	FeeFlashSale       FeeType = "flashSaleFee"
	FeeTax             FeeType = "tax"
	FeePlatformSubsidy FeeType = "tiktokSubsidy"
)

// FeeTypes 全部费用类别，补贴放在最后
var FeeTypes = []FeeType{
	FeeAffiliate,
	FeeShipping,
	FeeShopShipping,
	FeePlatform,
	FeeExtra,
	FeeFlashSale,
	FeeTax,
	FeePlatformSubsidy,
}

// ParseFeeType 校验费用类型
func ParseFeeType(s string) (FeeType, bool) {
	for _, t := range FeeTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

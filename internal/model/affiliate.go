package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AffiliateOrder 联盟（达人）订单，每个订单号只保留一条主行
type AffiliateOrder struct {
	ID            string `json:"id"`
	AffiliateName string `json:"affName"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	SKU           string `json:"sku"`

	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`

	Status          string          `json:"status"`
	StatusCode      AffiliateStatus `json:"statusMapped"`
	ContentType     string          `json:"contentType"`
	ContentTypeCode ContentType     `json:"contentTypeMapped"`
	Revenue         decimal.Decimal `json:"revenue"` // 预估佣金基数

	StandardCommissionRate      decimal.Decimal `json:"standardCommissionRate"`
	StandardCommissionEstimated decimal.Decimal `json:"standardCommissionEstimated"`
	StandardCommissionActual    decimal.Decimal `json:"standardCommissionActual"`
	AdCommissionRate            decimal.Decimal `json:"adCommissionRate"`
	AdCommissionEstimated       decimal.Decimal `json:"adCommissionEstimated"`
	AdCommissionActual          decimal.Decimal `json:"adCommissionActual"`
	TotalCommissionEstimated    decimal.Decimal `json:"totalCommissionEstimated"`
	TotalCommissionActual       decimal.Decimal `json:"totalCommissionActual"`

	CreateTime  DateField `json:"createTime"`
	PaymentTime string    `json:"paymentTime"`
	Platform    string    `json:"platform"`

	PrimaryRowIndex    int `json:"primaryRowIndex"`
	DuplicateRowsCount int `json:"duplicateRowsCount"`
}

// StandardCommission 实际佣金为 0 时回退到预估佣金
func (a *AffiliateOrder) StandardCommission() decimal.Decimal {
	if !a.StandardCommissionActual.IsZero() {
		return a.StandardCommissionActual
	}
	return a.StandardCommissionEstimated
}

// AdCommission 同上，广告佣金
func (a *AffiliateOrder) AdCommission() decimal.Decimal {
	if !a.AdCommissionActual.IsZero() {
		return a.AdCommissionActual
	}
	return a.AdCommissionEstimated
}

// CreatedAt 下单时间（可能为空）
func (a *AffiliateOrder) CreatedAt() *time.Time {
	return a.CreateTime.Parsed
}

package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OrderStatus 订单状态（来自 POS 表的固定词表）
type OrderStatus string

const (
	OrderStatusUnknown   OrderStatus = "unknown"
	OrderStatusReceived  OrderStatus = "received"  // Đã nhận / Đã nhận hàng
	OrderStatusShipped   OrderStatus = "shipped"   // Đã gửi hàng
	OrderStatusReturned  OrderStatus = "returned"  // Đã hoàn
	OrderStatusReturning OrderStatus = "returning" // Đang hoàn
	OrderStatusCancelled OrderStatus = "cancelled" // Đã huỷ
	OrderStatusConfirmed OrderStatus = "confirmed" // Đã xác nhận
	OrderStatusPacking   OrderStatus = "packing"   // Đang đóng hàng
)

// 订单状态的规范标签
const (
	LabelReceived      = "Đã nhận"
	LabelReceivedGoods = "Đã nhận hàng"
	LabelShipped       = "Đã gửi hàng"
	LabelReturned      = "Đã hoàn"
	LabelReturning     = "Đang hoàn"
	LabelCancelled     = "Đã huỷ"
	LabelConfirmed     = "Đã xác nhận"
	LabelPacking       = "Đang đóng hàng"

	// LabelAllOrders 看板上的"全部订单"卡片
	LabelAllOrders = "Tổng số đơn"
)

var orderStatusLabels = map[string]OrderStatus{
	LabelReceived:      OrderStatusReceived,
	LabelReceivedGoods: OrderStatusReceived,
	LabelShipped:       OrderStatusShipped,
	LabelReturned:      OrderStatusReturned,
	LabelReturning:     OrderStatusReturning,
	LabelCancelled:     OrderStatusCancelled,
	"Đã hủy":           OrderStatusCancelled,
	LabelConfirmed:     OrderStatusConfirmed,
	LabelPacking:       OrderStatusPacking,
}

// ParseOrderStatus 将原始状态文本映射为枚举，未知文本返回 OrderStatusUnknown
func ParseOrderStatus(raw string) OrderStatus {
	if s, ok := orderStatusLabels[CanonicalText(raw)]; ok {
		return s
	}
	return OrderStatusUnknown
}

// Label 返回状态的规范标签
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusReceived:
		return LabelReceived
	case OrderStatusShipped:
		return LabelShipped
	case OrderStatusReturned:
		return LabelReturned
	case OrderStatusReturning:
		return LabelReturning
	case OrderStatusCancelled:
		return LabelCancelled
	case OrderStatusConfirmed:
		return LabelConfirmed
	case OrderStatusPacking:
		return LabelPacking
	default:
		return ""
	}
}

// Known 是否属于固定词表
func (s OrderStatus) Known() bool {
	return s != OrderStatusUnknown && s != ""
}

// AffiliateStatus 联盟订单状态
type AffiliateStatus string

const (
	AffiliateStatusUnknown    AffiliateStatus = "unknown"
	AffiliateStatusCompleted  AffiliateStatus = "completed"
	AffiliateStatusCancelled  AffiliateStatus = "cancelled"
	AffiliateStatusProcessing AffiliateStatus = "processing"
)

// LabelAffiliateCompleted 联盟订单"已完成"标签，只有该状态才读取实际佣金
const LabelAffiliateCompleted = "Đã hoàn thành"

var affiliateStatusLabels = map[string]AffiliateStatus{
	LabelAffiliateCompleted: AffiliateStatusCompleted,
	"Đã hủy":                AffiliateStatusCancelled,
	"Đã huỷ":                AffiliateStatusCancelled,
	"Đang xử lý":            AffiliateStatusProcessing,
}

// ParseAffiliateStatus 映射联盟订单状态
func ParseAffiliateStatus(raw string) AffiliateStatus {
	if s, ok := affiliateStatusLabels[CanonicalText(raw)]; ok {
		return s
	}
	return AffiliateStatusUnknown
}

// ContentType 联盟内容类型
type ContentType string

const (
	ContentTypeUnknown         ContentType = "unknown"
	ContentTypeLivestream      ContentType = "livestream"
	ContentTypeVideo           ContentType = "video"
	ContentTypeDisplay         ContentType = "display"
	ContentTypeExternalTraffic ContentType = "external_traffic"
)

// ContentTypes 四种规范内容类型，顺序即报表顺序
var ContentTypes = []ContentType{
	ContentTypeLivestream,
	ContentTypeVideo,
	ContentTypeDisplay,
	ContentTypeExternalTraffic,
}

var contentTypeLabels = map[string]ContentType{
	"Phát trực tiếp": ContentTypeLivestream,
	"Video":          ContentTypeVideo,
	"Trưng bày":      ContentTypeDisplay,
	"Chương trình Lưu lượng truy cập bên ngoài": ContentTypeExternalTraffic,
}

// ParseContentType 映射内容类型
func ParseContentType(raw string) ContentType {
	if c, ok := contentTypeLabels[CanonicalText(raw)]; ok {
		return c
	}
	return ContentTypeUnknown
}

// RevenueSource 归因收入取自哪一列
type RevenueSource string

const (
	RevenueFromActualPayment  RevenueSource = "ACTUAL_PAYMENT"
	RevenueFromPreFee         RevenueSource = "REVENUE"
	RevenueFromActualReceived RevenueSource = "ACTUAL_RECEIVED"
)

// CanonicalText 去除首尾空白并做 NFC 规范化，保证带声调的越南语文本可直接比较
func CanonicalText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

package parser

import (
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// ResolveRevenue 按订单状态决定收入取哪一列
//
//	已退/退货中/已取消      -> 实际付款 ACTUAL_PAYMENT
//	已发货/已确认/打包中    -> 未扣平台费收入 REVENUE
//	已签收及其他状态        -> 实际到账 ACTUAL_RECEIVED
func ResolveRevenue(status model.OrderStatus, actualPayment, preFeeRevenue, actualReceived decimal.Decimal) (decimal.Decimal, model.RevenueSource) {
	switch status {
	case model.OrderStatusReturned, model.OrderStatusReturning, model.OrderStatusCancelled:
		return actualPayment, model.RevenueFromActualPayment
	case model.OrderStatusShipped, model.OrderStatusConfirmed, model.OrderStatusPacking:
		return preFeeRevenue, model.RevenueFromPreFee
	default:
		return actualReceived, model.RevenueFromActualReceived
	}
}

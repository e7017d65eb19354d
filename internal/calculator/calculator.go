package calculator

import (
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// Bucket 看板卡片：订单数 + 收入
type Bucket struct {
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderMetrics 订单看板指标
type OrderMetrics struct {
	Buckets     []Bucket `json:"buckets"`     // 顺序固定，第一张为"全部订单"
	TotalOrders int      `json:"totalOrders"` // 输入订单数（含词表外状态）
}

// Bucket 按标签取卡片
func (m *OrderMetrics) Bucket(label string) Bucket {
	for _, b := range m.Buckets {
		if b.Label == label {
			return b
		}
	}
	return Bucket{Label: label, Revenue: decimal.Zero}
}

// bucketLabels 卡片顺序
var bucketLabels = []string{
	model.LabelAllOrders,
	model.LabelReceivedGoods,
	model.LabelShipped,
	model.LabelReturned,
	model.LabelReturning,
	model.LabelCancelled,
	model.LabelConfirmed,
	model.LabelPacking,
}

func bucketIndex(status model.OrderStatus) int {
	switch status {
	case model.OrderStatusReceived:
		return 1
	case model.OrderStatusShipped:
		return 2
	case model.OrderStatusReturned:
		return 3
	case model.OrderStatusReturning:
		return 4
	case model.OrderStatusCancelled:
		return 5
	case model.OrderStatusConfirmed:
		return 6
	case model.OrderStatusPacking:
		return 7
	default:
		return -1
	}
}

// AggregateOrders 单次遍历计算各状态卡片
//
// "全部订单"不含已取消和已确认，收入取未扣费收入，退货类再加实际付款；
// "已签收"卡片取未扣费收入，其余卡片取归因收入。词表外状态不计入任何卡片。
func AggregateOrders(orders []*model.Order) *OrderMetrics {
	buckets := make([]Bucket, len(bucketLabels))
	for i, label := range bucketLabels {
		buckets[i] = Bucket{Label: label, Revenue: decimal.Zero}
	}

	for _, o := range orders {
		idx := bucketIndex(o.StatusCode)
		if idx < 0 {
			continue
		}

		switch o.StatusCode {
		case model.OrderStatusCancelled, model.OrderStatusConfirmed:
		default:
			revenue := o.RevenueBeforeFees
			if o.StatusCode == model.OrderStatusReturned || o.StatusCode == model.OrderStatusReturning {
				revenue = revenue.Add(o.ActualPayment)
			}
			buckets[0].Count++
			buckets[0].Revenue = buckets[0].Revenue.Add(revenue)
		}

		revenue := o.Revenue
		if o.StatusCode == model.OrderStatusReceived {
			revenue = o.RevenueBeforeFees
		}
		buckets[idx].Count++
		buckets[idx].Revenue = buckets[idx].Revenue.Add(revenue)
	}

	return &OrderMetrics{Buckets: buckets, TotalOrders: len(orders)}
}

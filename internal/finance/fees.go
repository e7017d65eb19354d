package finance

import (
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// OrdersWithFee 某费用类别非零的订单，用于成本明细下钻
func OrdersWithFee(orders []*model.Order, fee model.FeeType) []*model.Order {
	out := []*model.Order{}
	for _, o := range orders {
		if !o.Fee(fee).IsZero() {
			out = append(out, o)
		}
	}
	return out
}

// TotalFee 带符号求和
func TotalFee(orders []*model.Order, fee model.FeeType) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Fee(fee))
	}
	return total
}

package calculator

import (
	"sort"
	"strings"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// ProductSummary 商品维度汇总
type ProductSummary struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Orders   int             `json:"orders"`
}

// shippedOrReceived 仅统计已发货/已签收订单时使用
func shippedOrReceived(o *model.Order) bool {
	return o.StatusCode == model.OrderStatusShipped || o.StatusCode == model.OrderStatusReceived
}

// ProductAnalysis 按商品名汇总销量与收入，销量降序
func ProductAnalysis(orders []*model.Order, shippedOnly bool) []ProductSummary {
	index := make(map[string]int)
	out := []ProductSummary{}
	for _, o := range orders {
		if shippedOnly && !shippedOrReceived(o) {
			continue
		}
		seen := make(map[string]bool)
		for _, p := range o.Products {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, ProductSummary{Name: name, Quantity: decimal.Zero, Revenue: decimal.Zero})
			}
			out[i].Quantity = out[i].Quantity.Add(p.Quantity)
			out[i].Revenue = out[i].Revenue.Add(p.Revenue)
			if !seen[name] {
				out[i].Orders++
				seen[name] = true
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity.GreaterThan(out[j].Quantity) })
	return out
}

// ProductOrders 包含指定商品的订单
func ProductOrders(orders []*model.Order, productName string, shippedOnly bool) []*model.Order {
	name := strings.TrimSpace(productName)
	out := []*model.Order{}
	for _, o := range orders {
		if shippedOnly && !shippedOrReceived(o) {
			continue
		}
		for _, p := range o.Products {
			if strings.TrimSpace(p.Name) == name {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Package query 订单列表的过滤、搜索与分页
package query

import (
	"regexp"
	"strings"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
)

// StatusAll 不过滤状态
const StatusAll = "all"

// partialIDTerm 4-5 位数字的搜索词启用订单号尾号匹配
var partialIDTerm = regexp.MustCompile(`^\d{4,5}$`)

// FilterByDateRange 按推单日期（缺失时用下单日期）过滤，日期缺失的订单不计入
func FilterByDateRange(orders []*model.Order, period model.Period) []*model.Order {
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

// FilterByStatus 按状态标签过滤；空、"all" 或"全部订单"返回全部，未知标签返回空
func FilterByStatus(orders []*model.Order, label string) []*model.Order {
	label = model.CanonicalText(label)
	if label == "" || label == StatusAll || label == model.LabelAllOrders {
		return orders
	}
	status := model.ParseOrderStatus(label)
	out := []*model.Order{}
	if !status.Known() {
		return out
	}
	for _, o := range orders {
		if o.StatusCode == status {
			out = append(out, o)
		}
	}
	return out
}

// Search 订单搜索
//
// 按不区分大小写、忽略声调的包含匹配，范围为订单号、运单号、商品名和省份；
// 4-5 位数字另外按订单号/运单号尾号匹配，两种结果合并并保持原顺序。
func Search(orders []*model.Order, term string) []*model.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}

	partialID := partialIDTerm.MatchString(term)
	folded := parser.FoldDiacritics(term)
	out := []*model.Order{}
	for _, o := range orders {
		if partialID && (matchesIDSuffix(strings.ToLower(o.ID), term) || matchesIDSuffix(strings.ToLower(o.WaybillCode), term)) {
			out = append(out, o)
			continue
		}
		if orderText(o, folded) {
			out = append(out, o)
		}
	}
	return out
}

func matchesIDSuffix(id, term string) bool {
	return strings.HasSuffix(id, term) || strings.Contains(id, term)
}

func orderText(o *model.Order, folded string) bool {
	if containsFolded(o.ID, folded) || containsFolded(o.WaybillCode, folded) || containsFolded(o.Province, folded) {
		return true
	}
	for _, p := range o.Products {
		if containsFolded(p.Name, folded) {
			return true
		}
	}
	return false
}

func containsFolded(s, folded string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(parser.FoldDiacritics(strings.ToLower(s)), folded)
}

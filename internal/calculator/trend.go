package calculator

import (
	"sort"
	"strings"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// TrendPoint 每日收入
type TrendPoint struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// RevenueTrend 按推单日期（缺失时用下单日期）汇总归因收入，无日期的订单跳过
func RevenueTrend(orders []*model.Order) []TrendPoint {
	byDate := make(map[string]*TrendPoint)
	for _, o := range orders {
		d := o.PeriodDate()
		if d == nil {
			continue
		}
		key := d.Format("2006-01-02")
		p, ok := byDate[key]
		if !ok {
			p = &TrendPoint{Date: key, Revenue: decimal.Zero}
			byDate[key] = p
		}
		p.Revenue = p.Revenue.Add(o.Revenue)
		p.Orders++
	}

	out := make([]TrendPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// StatusSlice 状态分布
type StatusSlice struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatusDistribution 按原始状态文本分组，保持首次出现顺序
func StatusDistribution(orders []*model.Order) []StatusSlice {
	index := make(map[string]int)
	out := []StatusSlice{}
	for _, o := range orders {
		name := strings.TrimSpace(o.Status)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, StatusSlice{Name: name, Revenue: decimal.Zero})
		}
		out[i].Count++
		out[i].Revenue = out[i].Revenue.Add(o.Revenue)
	}
	return out
}

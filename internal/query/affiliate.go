package query

import (
	"strings"

	"github.com/kidlost1412/shopchinh/internal/model"
)

// FilterAffiliateByDateRange 联盟订单只按创建时间过滤
func FilterAffiliateByDateRange(orders []*model.AffiliateOrder, period model.Period) []*model.AffiliateOrder {
	if period.Unbounded() {
		return orders
	}
	out := make([]*model.AffiliateOrder, 0, len(orders))
	for _, o := range orders {
		if period.ContainsDate(o.CreatedAt()) {
			out = append(out, o)
		}
	}
	return out
}

// FilterAffiliate 按达人名和状态过滤；status 不是 completed/processing/cancelled 时不过滤状态
func FilterAffiliate(orders []*model.AffiliateOrder, creator, status string) []*model.AffiliateOrder {
	want := model.AffiliateStatus(status)
	switch want {
	case model.AffiliateStatusCompleted, model.AffiliateStatusProcessing, model.AffiliateStatusCancelled:
	default:
		want = ""
	}

	out := []*model.AffiliateOrder{}
	for _, o := range orders {
		if o.AffiliateName != creator {
			continue
		}
		if want != "" && o.StatusCode != want {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SearchAffiliate 订单号或商品名包含匹配
func SearchAffiliate(orders []*model.AffiliateOrder, term string) []*model.AffiliateOrder {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}
	out := []*model.AffiliateOrder{}
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), term) || strings.Contains(strings.ToLower(o.ProductName), term) {
			out = append(out, o)
		}
	}
	return out
}

package calculator

import (
	"sort"
	"strings"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// topN 排行榜长度
const topN = 3

// shortNameLen 商品短名长度
const shortNameLen = 18

// unknownCreator 无达人名时的归组名
const unknownCreator = "Unknown"

// ContentCount 某内容类型的订单数与收入
type ContentCount struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// AffiliateBucket 联盟卡片，按四种内容类型细分
type AffiliateBucket struct {
	Count     int                                `json:"count"`
	Revenue   decimal.Decimal                    `json:"revenue"`
	Breakdown map[model.ContentType]ContentCount `json:"breakdown"`
}

func newAffiliateBucket() AffiliateBucket {
	b := AffiliateBucket{Revenue: decimal.Zero, Breakdown: make(map[model.ContentType]ContentCount, len(model.ContentTypes))}
	for _, ct := range model.ContentTypes {
		b.Breakdown[ct] = ContentCount{Revenue: decimal.Zero}
	}
	return b
}

func (b *AffiliateBucket) add(o *model.AffiliateOrder) {
	b.Count++
	b.Revenue = b.Revenue.Add(o.Revenue)
	if c, ok := b.Breakdown[o.ContentTypeCode]; ok {
		c.Count++
		c.Revenue = c.Revenue.Add(o.Revenue)
		b.Breakdown[o.ContentTypeCode] = c
	}
}

// AffiliateMetrics 联盟看板
type AffiliateMetrics struct {
	Total      AffiliateBucket  `json:"totalOrders"`
	Completed  AffiliateBucket  `json:"completedOrders"`
	Processing AffiliateBucket  `json:"processingOrders"`
	Cancelled  AffiliateBucket  `json:"cancelledOrders"`
	Top        []CreatorSummary `json:"top3"`
}

// CreatorSummary 达人排行
type CreatorSummary struct {
	Name               string          `json:"name"`
	Revenue            decimal.Decimal `json:"revenue"`
	StandardCommission decimal.Decimal `json:"standardCommission"`
	AdCommission       decimal.Decimal `json:"adCommission"`
	TotalCommission    decimal.Decimal `json:"totalCommission"`
	OrderCount         int             `json:"orderCount"`
}

// CreatorDetail 达人明细表的一行
type CreatorDetail struct {
	CreatorSummary
	CompletedOrders   int             `json:"completedOrders"`
	ProcessingOrders  int             `json:"processingOrders"`
	CancelledOrders   int             `json:"cancelledOrders"`
	CompletedRevenue  decimal.Decimal `json:"completedRevenue"`
	ProcessingRevenue decimal.Decimal `json:"processingRevenue"`
	CancelledRevenue  decimal.Decimal `json:"cancelledRevenue"`
}

func creatorName(o *model.AffiliateOrder) string {
	if name := strings.TrimSpace(o.AffiliateName); name != "" {
		return name
	}
	return unknownCreator
}

// AggregateAffiliate 卡片 + 收入前三的达人
//
// "全部"卡片包含所有订单，各状态卡片只统计三种规范状态；内容类型细分只统计四种规范类型。
func AggregateAffiliate(orders []*model.AffiliateOrder) *AffiliateMetrics {
	m := &AffiliateMetrics{
		Total:      newAffiliateBucket(),
		Completed:  newAffiliateBucket(),
		Processing: newAffiliateBucket(),
		Cancelled:  newAffiliateBucket(),
	}
	for _, o := range orders {
		m.Total.add(o)
		switch o.StatusCode {
		case model.AffiliateStatusCompleted:
			m.Completed.add(o)
		case model.AffiliateStatusProcessing:
			m.Processing.add(o)
		case model.AffiliateStatusCancelled:
			m.Cancelled.add(o)
		}
	}
	m.Top = TopCreators(orders, topN)
	return m
}

// TopCreators 按收入降序取前 n 名，收入相同按首次出现顺序
func TopCreators(orders []*model.AffiliateOrder, n int) []CreatorSummary {
	details := summarizeCreators(orders)
	out := make([]CreatorSummary, len(details))
	for i, d := range details {
		out[i] = d.CreatorSummary
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CreatorDetails 达人明细，按总佣金降序
func CreatorDetails(orders []*model.AffiliateOrder) []CreatorDetail {
	details := summarizeCreators(orders)
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].TotalCommission.GreaterThan(details[j].TotalCommission)
	})
	return details
}

// summarizeCreators 按达人分组，保持首次出现顺序；佣金优先取实际值
func summarizeCreators(orders []*model.AffiliateOrder) []CreatorDetail {
	index := make(map[string]int)
	var out []CreatorDetail
	for _, o := range orders {
		name := creatorName(o)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CreatorDetail{
				CreatorSummary: CreatorSummary{
					Name:               name,
					Revenue:            decimal.Zero,
					StandardCommission: decimal.Zero,
					AdCommission:       decimal.Zero,
					TotalCommission:    decimal.Zero,
				},
				CompletedRevenue:  decimal.Zero,
				ProcessingRevenue: decimal.Zero,
				CancelledRevenue:  decimal.Zero,
			})
		}
		d := &out[i]
		standard := o.StandardCommission()
		ad := o.AdCommission()

		d.OrderCount++
		d.Revenue = d.Revenue.Add(o.Revenue)
		d.StandardCommission = d.StandardCommission.Add(standard)
		d.AdCommission = d.AdCommission.Add(ad)
		d.TotalCommission = d.TotalCommission.Add(standard).Add(ad)

		switch o.StatusCode {
		case model.AffiliateStatusCompleted:
			d.CompletedOrders++
			d.CompletedRevenue = d.CompletedRevenue.Add(o.Revenue)
		case model.AffiliateStatusProcessing:
			d.ProcessingOrders++
			d.ProcessingRevenue = d.ProcessingRevenue.Add(o.Revenue)
		case model.AffiliateStatusCancelled:
			d.CancelledOrders++
			d.CancelledRevenue = d.CancelledRevenue.Add(o.Revenue)
		}
	}
	return out
}

// ContentAnalysis 某达人按内容类型的订单/收入/佣金
type ContentAnalysis struct {
	Type       string            `json:"type"`
	TypeMapped model.ContentType `json:"typeMapped"`
	OrderCount int               `json:"orderCount"`
	Revenue    decimal.Decimal   `json:"revenue"`
	Commission decimal.Decimal   `json:"commission"`
}

// AnalyzeCreatorContent 按原始内容类型分组，保持首次出现顺序
func AnalyzeCreatorContent(orders []*model.AffiliateOrder, creator string) []ContentAnalysis {
	index := make(map[string]int)
	out := []ContentAnalysis{}
	for _, o := range orders {
		if o.AffiliateName != creator {
			continue
		}
		typ := strings.TrimSpace(o.ContentType)
		if typ == "" {
			typ = unknownCreator
		}
		i, ok := index[typ]
		if !ok {
			i = len(out)
			index[typ] = i
			out = append(out, ContentAnalysis{Type: typ, TypeMapped: o.ContentTypeCode, Revenue: decimal.Zero, Commission: decimal.Zero})
		}
		out[i].OrderCount++
		out[i].Revenue = out[i].Revenue.Add(o.Revenue)
		out[i].Commission = out[i].Commission.Add(o.StandardCommission()).Add(o.AdCommission())
	}
	return out
}

// CreatorProduct 达人带货商品
type CreatorProduct struct {
	Name          string          `json:"name"`
	ShortName     string          `json:"shortName"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	OrderCount    int             `json:"orderCount"`
}

// TopCreatorProducts 某达人销量前三的商品，数量缺失按 1 计
func TopCreatorProducts(orders []*model.AffiliateOrder, creator string) []CreatorProduct {
	index := make(map[string]int)
	var out []CreatorProduct
	for _, o := range orders {
		if o.AffiliateName != creator {
			continue
		}
		name := strings.TrimSpace(o.ProductName)
		if name == "" {
			name = "Unknown Product"
		}
		qty := o.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CreatorProduct{Name: name, ShortName: truncateWords(name, shortNameLen), TotalQuantity: decimal.Zero, TotalRevenue: decimal.Zero})
		}
		out[i].TotalQuantity = out[i].TotalQuantity.Add(qty)
		out[i].TotalRevenue = out[i].TotalRevenue.Add(o.Revenue)
		out[i].OrderCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalQuantity.GreaterThan(out[j].TotalQuantity) })
	if len(out) > topN {
		out = out[:topN]
	}
	if out == nil {
		out = []CreatorProduct{}
	}
	return out
}

// truncateWords 按词截断到 maxLen 个字符，被截断时追加 "..."；首个词已超长时按字符截断
func truncateWords(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	result := ""
	for _, word := range strings.Split(name, " ") {
		candidate := word
		if result != "" {
			candidate = result + " " + word
		}
		if len([]rune(candidate)) > maxLen {
			break
		}
		result = candidate
	}
	if result == "" {
		result = string(runes[:maxLen])
	}
	return result + "..."
}

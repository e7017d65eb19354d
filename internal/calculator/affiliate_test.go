package calculator

import (
	"testing"

	"github.com/kidlost1412/shopchinh/internal/model"
)

func affOrder(name, status, content, revenue, stdEst, stdAct string) *model.AffiliateOrder {
	return &model.AffiliateOrder{
		AffiliateName:               name,
		Status:                      status,
		StatusCode:                  model.ParseAffiliateStatus(status),
		ContentType:                 content,
		ContentTypeCode:             model.ParseContentType(content),
		Revenue:                     dec(revenue),
		StandardCommissionEstimated: dec(stdEst),
		StandardCommissionActual:    dec(stdAct),
		AdCommissionEstimated:       dec("0"),
		AdCommissionActual:          dec("0"),
		Quantity:                    dec("1"),
	}
}

func TestAggregateAffiliate_BucketsAndBreakdown(t *testing.T) {
	t.Parallel()

	orders := []*model.AffiliateOrder{
		affOrder("an", "Đã hoàn thành", "Video", "100", "10", "8"),
		affOrder("an", "Đang xử lý", "Phát trực tiếp", "50", "5", "0"),
		affOrder("bình", "Đã hủy", "Trưng bày", "30", "3", "0"),
		affOrder("chi", "Lạ", "Khác", "20", "2", "0"),
	}

	m := AggregateAffiliate(orders)
	if m.Total.Count != 4 || !m.Total.Revenue.Equal(dec("200")) {
		t.Fatalf("total bucket mismatch: %+v", m.Total)
	}
	if m.Completed.Count != 1 || m.Processing.Count != 1 || m.Cancelled.Count != 1 {
		t.Fatalf("status buckets mismatch: %d/%d/%d", m.Completed.Count, m.Processing.Count, m.Cancelled.Count)
	}
	if c := m.Total.Breakdown[model.ContentTypeVideo]; c.Count != 1 || !c.Revenue.Equal(dec("100")) {
		t.Fatalf("video breakdown mismatch: %+v", c)
	}
	if _, ok := m.Total.Breakdown[model.ContentTypeUnknown]; ok {
		t.Fatalf("unknown content type must not appear in breakdown")
	}
}

func TestTopCreators_TiesKeepFirstSeen(t *testing.T) {
	t.Parallel()

	orders := []*model.AffiliateOrder{
		affOrder("b", "Đang xử lý", "Video", "100", "0", "0"),
		affOrder("a", "Đang xử lý", "Video", "100", "0", "0"),
		affOrder("c", "Đang xử lý", "Video", "300", "0", "0"),
		affOrder("d", "Đang xử lý", "Video", "10", "0", "0"),
	}

	top := TopCreators(orders, 3)
	if len(top) != 3 {
		t.Fatalf("want 3 creators, got %d", len(top))
	}
	if top[0].Name != "c" || top[1].Name != "b" || top[2].Name != "a" {
		t.Fatalf("unexpected order: %s %s %s", top[0].Name, top[1].Name, top[2].Name)
	}
}

func TestCreatorDetails_SortedByCommission(t *testing.T) {
	t.Parallel()

	orders := []*model.AffiliateOrder{
		affOrder("an", "Đã hoàn thành", "Video", "100", "10", "8"),
		affOrder("bình", "Đang xử lý", "Video", "10", "20", "0"),
		affOrder("", "Đang xử lý", "Video", "10", "1", "0"),
	}

	details := CreatorDetails(orders)
	if len(details) != 3 || details[0].Name != "bình" || details[1].Name != "an" {
		t.Fatalf("unexpected detail order: %+v", details)
	}
	if !details[1].TotalCommission.Equal(dec("8")) {
		t.Fatalf("actual commission should win over estimate: %s", details[1].TotalCommission)
	}
	if details[2].Name != "Unknown" {
		t.Fatalf("empty creator should group as Unknown, got %q", details[2].Name)
	}
}

func TestTopCreatorProducts_TruncatesNames(t *testing.T) {
	t.Parallel()

	long := affOrder("an", "Đang xử lý", "Video", "10", "0", "0")
	long.ProductName = "Kem chống nắng dưỡng da toàn thân"
	long.Quantity = dec("3")
	short := affOrder("an", "Đang xử lý", "Video", "10", "0", "0")
	short.ProductName = "Son môi"
	short.Quantity = dec("0")

	products := TopCreatorProducts([]*model.AffiliateOrder{short, long}, "an")
	if len(products) != 2 || products[0].ShortName != "Kem chống nắng..." {
		t.Fatalf("unexpected products: %+v", products)
	}
	if !products[1].TotalQuantity.Equal(dec("1")) {
		t.Fatalf("missing quantity should count as 1: %s", products[1].TotalQuantity)
	}

	analysis := AnalyzeCreatorContent([]*model.AffiliateOrder{short, long}, "an")
	if len(analysis) != 1 || analysis[0].OrderCount != 2 {
		t.Fatalf("unexpected content analysis: %+v", analysis)
	}
}

func TestTruncateWords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"short name kept", "Son môi", "Son môi"},
		{"cut at word boundary", "Kem chống nắng dưỡng trắng da", "Kem chống nắng..."},
		{"first word too long", "Siêuuuuuuuuuuuuuuuuuuuu dưỡng", "Siêuuuuuuuuuuuuuuu..."},
	}
	for _, tc := range cases {
		if got := truncateWords(tc.in, shortNameLen); got != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got)
		}
	}
}

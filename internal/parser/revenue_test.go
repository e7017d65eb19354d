package parser

import (
	"testing"

	"github.com/kidlost1412/shopchinh/internal/model"
)

func TestResolveRevenue_StatusTable(t *testing.T) {
	t.Parallel()

	payment, preFee, received := dec("100"), dec("200"), dec("300")
	cases := []struct {
		status     string
		wantAmount string
		wantSource model.RevenueSource
	}{
		{"Đã huỷ", "100", model.RevenueFromActualPayment},
		{"Đã hoàn", "100", model.RevenueFromActualPayment},
		{"Đang hoàn", "100", model.RevenueFromActualPayment},
		{"Đã gửi hàng", "200", model.RevenueFromPreFee},
		{"Đã xác nhận", "200", model.RevenueFromPreFee},
		{"Đang đóng hàng", "200", model.RevenueFromPreFee},
		{"Đã nhận", "300", model.RevenueFromActualReceived},
		{"Đã nhận hàng", "300", model.RevenueFromActualReceived},
		{"Trạng thái lạ", "300", model.RevenueFromActualReceived},
	}
	for _, c := range cases {
		amount, source := ResolveRevenue(model.ParseOrderStatus(c.status), payment, preFee, received)
		if !amount.Equal(dec(c.wantAmount)) || source != c.wantSource {
			t.Fatalf("%s want=%s/%s got=%s/%s", c.status, c.wantAmount, c.wantSource, amount, source)
		}
	}
}

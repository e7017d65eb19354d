package parser

import "testing"

func TestSheetRecognizer_KnownDatasets(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	expect := map[string]struct {
		header []string
		want   Dataset
	}{
		"PosSheets(mẫu mới nhất)": {orderHeader(), DatasetOrders},
		"donaff":                  {affiliateHeader(), DatasetAffiliate},
		"rutve":                   {[]string{"Ngày rút tiền", "Số tiền rút", "ngày nộp tiền", "số tiền nộp", "Tổng số tiền thuế", "Tổng phụ", "ngày rút tiền gvm", "số tiền gvm"}, DatasetLedger},
		"Trang tính 1":            {[]string{"Ghi chú", "Cột A"}, DatasetUnknown},
	}

	for sheet, c := range expect {
		res := r.Recognize(sheet, c.header)
		if res.Dataset != c.want {
			t.Fatalf("sheet %s type mismatch: got=%s conf=%.2f want=%s", sheet, res.Dataset, res.Confidence, c.want)
		}
	}
}

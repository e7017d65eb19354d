package parser

import (
	"regexp"
	"strings"
)

// SheetRecognizer Sheet 类型识别器（用于上传预览）
type SheetRecognizer struct {
	rules []recognitionRule
}

type recognitionRule struct {
	dataset   Dataset
	keyFields []*regexp.Regexp
	nameHints []string
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{
		rules: []recognitionRule{
			{
				dataset: DatasetOrders,
				keyFields: compilePatterns(
					`^id$`,
					`mã vận đơn`,
					`trạng thái$`,
					`sản phẩm`,
					`doanh thu`,
					`thực nhận`,
					`phí 9%`,
				),
				nameHints: []string{"pos", "đơn hàng", "order"},
			},
			{
				dataset: DatasetAffiliate,
				keyFields: compilePatterns(
					`id đơn hàng`,
					`nhà sáng tạo`,
					`loại nội dung`,
					`cơ sở hoa hồng`,
					`hoa hồng.*ước tính`,
					`trạng thái đơn hàng`,
				),
				nameHints: []string{"aff", "donaff", "affiliate"},
			},
			{
				dataset: DatasetLedger,
				keyFields: compilePatterns(
					`ngày rút tiền`,
					`số tiền rút`,
					`ngày nộp tiền`,
					`số tiền nộp`,
					`gvm`,
				),
				nameHints: []string{"rutve", "rút", "ledger"},
			},
		},
	}
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Recognize 识别 Sheet 类型，置信度不足 0.5 时返回 DatasetUnknown
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	normalized := make([]string, len(columnNames))
	for i, col := range columnNames {
		normalized[i] = NormalizeColumnName(col)
	}
	name := NormalizeColumnName(sheetName)

	best := SheetRecognitionResult{SheetName: sheetName, Dataset: DatasetUnknown}
	for _, rule := range r.rules {
		matchCount := 0
		for _, field := range rule.keyFields {
			for _, col := range normalized {
				if field.MatchString(col) {
					matchCount++
					break
				}
			}
		}
		confidence := float64(matchCount) / float64(len(rule.keyFields))

		// Sheet 名称辅助判定
		if ContainsAny(name, rule.nameHints) {
			confidence += 0.2
		}
		if confidence > 1 {
			confidence = 1
		}
		if confidence > best.Confidence {
			best.Dataset = rule.dataset
			best.Confidence = confidence
		}
	}

	if best.Confidence < 0.5 {
		best.Dataset = DatasetUnknown
	}
	return best
}

// FieldsFor 数据集对应的期望字段与关键词
func FieldsFor(dataset Dataset) ([]FieldSpec, []KeyTerm) {
	switch dataset {
	case DatasetOrders:
		return OrderFields, OrderKeyTerms
	case DatasetAffiliate:
		return AffiliateFields, AffiliateKeyTerms
	case DatasetLedger:
		return LedgerFields, LedgerKeyTerms
	default:
		return nil, nil
	}
}

// ParseDataset 校验数据集名称
func ParseDataset(s string) Dataset {
	switch Dataset(strings.ToLower(strings.TrimSpace(s))) {
	case DatasetOrders:
		return DatasetOrders
	case DatasetAffiliate:
		return DatasetAffiliate
	case DatasetLedger:
		return DatasetLedger
	default:
		return DatasetUnknown
	}
}

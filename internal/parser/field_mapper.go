package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MatchThreshold 低于该置信度的字段视为未映射
const MatchThreshold = 0.6

// 置信度各项权重
const (
	weightLevenshtein = 0.4
	weightContains    = 0.3
	weightTokens      = 0.2
	weightKeyTerms    = 0.1

	containsScore = 0.8
)

var levenshteinOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// SchemaMapper 表头模糊映射器：容忍列改名、换序、新增
type SchemaMapper struct {
	keyTerms []KeyTerm
}

// NewSchemaMapper 创建映射器
func NewSchemaMapper(keyTerms []KeyTerm) *SchemaMapper {
	return &SchemaMapper{keyTerms: keyTerms}
}

// Map 为每个期望字段挑选置信度最高且未被占用的列
//
// previous 为上一次的映射（可为 nil），用于检测列位置漂移。该方法不会失败，
// 未映射字段在读取时按空值处理。
func (m *SchemaMapper) Map(dataset Dataset, header []string, fields []FieldSpec, previous *ColumnSchema) (*ColumnSchema, []Warning) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeColumnName(h)
	}

	claimed := make(map[int]bool, len(header))
	matches := make([]FieldMatch, 0, len(fields))
	var warnings []Warning

	for _, f := range fields {
		expected := NormalizeColumnName(f.Label)
		best, bestScore := -1, 0.0
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if score := m.confidence(h, expected); score > bestScore {
				best, bestScore = i, score
			}
		}

		if best < 0 || bestScore < MatchThreshold {
			warnings = append(warnings, Warning{
				Kind:     KindSchemaDrift,
				Severity: SeverityCritical,
				Field:    f.Key,
				Message:  fmt.Sprintf("Không tìm thấy cột \"%s\"", f.Label),
			})
			continue
		}

		claimed[best] = true
		match := FieldMatch{
			Field:      f.Key,
			Column:     best,
			Header:     header[best],
			Confidence: bestScore,
		}
		matches = append(matches, match)

		if bestScore < 1 {
			warnings = append(warnings, Warning{
				Kind:     KindSchemaDrift,
				Severity: SeverityInfo,
				Field:    f.Key,
				Message:  fmt.Sprintf("Cột \"%s\" khớp gần đúng với \"%s\" (%.0f%%)", header[best], f.Label, bestScore*100),
			})
		}
		if prev, ok := previous.Match(f.Key); ok && prev.Column != best {
			warnings = append(warnings, Warning{
				Kind:     KindSchemaDrift,
				Severity: SeverityWarning,
				Field:    f.Key,
				Message:  fmt.Sprintf("Cột \"%s\" đã di chuyển từ vị trí %d sang %d", f.Label, prev.Column+1, best+1),
			})
		}
	}

	for i, h := range header {
		if claimed[i] || normalized[i] == "" {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:     KindSchemaDrift,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Cột \"%s\" (vị trí %d) không được sử dụng", strings.TrimSpace(h), i+1),
		})
	}

	return NewColumnSchema(dataset, len(header), matches), warnings
}

// Confidence 计算表头与期望字段的匹配置信度 [0,1]
func (m *SchemaMapper) Confidence(header, expected string) float64 {
	return m.confidence(NormalizeColumnName(header), NormalizeColumnName(expected))
}

func (m *SchemaMapper) confidence(actual, expected string) float64 {
	if actual == "" || expected == "" {
		return 0
	}
	if actual == expected {
		return 1
	}

	score := weightLevenshtein * levenshteinSimilarity(actual, expected)
	if strings.Contains(actual, expected) || strings.Contains(expected, actual) {
		score += weightContains * containsScore
	}
	score += weightTokens * tokenOverlap(actual, expected)
	score += weightKeyTerms * m.keyTermBonus(actual, expected)

	if score > 1 {
		return 1
	}
	return score
}

func levenshteinSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshteinOptions)
	return 1 - float64(dist)/float64(maxLen)
}

// tokenOverlap 共同词数 / 较多一方的词数
func tokenOverlap(actual, expected string) float64 {
	actualTokens := strings.Fields(actual)
	expectedTokens := strings.Fields(expected)
	if len(actualTokens) == 0 || len(expectedTokens) == 0 {
		return 0
	}
	expectedSet := make(map[string]bool, len(expectedTokens))
	for _, t := range expectedTokens {
		expectedSet[t] = true
	}
	common := 0
	for _, t := range actualTokens {
		if expectedSet[t] {
			common++
		}
	}
	denom := len(actualTokens)
	if len(expectedTokens) > denom {
		denom = len(expectedTokens)
	}
	return float64(common) / float64(denom)
}

// keyTermBonus 期望名包含某个领域概念时，看实际表头命中了多少该概念的关键词
func (m *SchemaMapper) keyTermBonus(actual, expected string) float64 {
	best := 0.0
	for _, kt := range m.keyTerms {
		if !strings.Contains(expected, kt.Concept) || len(kt.Terms) == 0 {
			continue
		}
		hit := 0
		for _, term := range kt.Terms {
			if strings.Contains(actual, term) {
				hit++
			}
		}
		if ratio := float64(hit) / float64(len(kt.Terms)); ratio > best {
			best = ratio
		}
	}
	return best
}

package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeColumnName 规范化表头：NFC、小写、压缩空白
func NormalizeColumnName(name string) string {
	name = norm.NFC.String(name)
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), " ")
}

// FoldDiacritics 去除越南语声调，用于不区分声调的搜索
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	// đ 不是组合字符，需要单独处理
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

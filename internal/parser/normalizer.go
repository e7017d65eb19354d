package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location 表格中的日期均为越南本地时间
var Location = time.FixedZone("ICT", 7*60*60)

// ParseAmount 解析金额文本，无法解析时返回 0
//
// 支持 "1.234.567"、"1.234,5"、"1,234,567.5"、"150000 ₫"、"-12.5"、"(1.000)" 等写法。
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
	}

	var b strings.Builder
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteRune(r)
		case r == '-':
			if !seenDigit {
				negative = true
			}
		}
	}
	clean := resolveSeparators(b.String())
	if clean == "" || clean == "." {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// resolveSeparators 判断 . 与 , 哪个是千分位，输出只含小数点的数字串
func resolveSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return strings.ReplaceAll(s, ",", "")
		}
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0:
		return resolveSingleSeparator(s, ".")
	case lastComma >= 0:
		return resolveSingleSeparator(s, ",")
	default:
		return s
	}
}

func resolveSingleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}
	idx := strings.Index(s, sep)
	intPart := s[:idx]
	fracLen := len(s) - idx - 1
	if fracLen == 3 && intPart != "" && intPart != "0" {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}

// ParseOrderDate 解析订单表日期："DD/MM/YYYY" 或 "HH:mm DD/MM/YYYY"（取最后一段）
func ParseOrderDate(raw string) *time.Time {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}
	return parseDayMonthYear(parts[len(parts)-1])
}

// ParseAffiliateDate 解析达人表日期："DD/MM/YYYY HH:mm:ss"（取第一段）
func ParseAffiliateDate(raw string) *time.Time {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}
	return parseDayMonthYear(parts[0])
}

// ParseISODate 解析 "YYYY-MM-DD"
func ParseISODate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", s, Location)
	if err != nil {
		return nil
	}
	return &t
}

// ParseLedgerDate 提现账为 DD/MM/YYYY，广告账为 YYYY-MM-DD
func ParseLedgerDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "-") {
		return ParseISODate(s)
	}
	return parseDayMonthYear(s)
}

func parseDayMonthYear(s string) *time.Time {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return nil
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if month < 1 || month > 12 || day < 1 || year < 1900 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, Location)
	// 31/02 之类会被 time.Date 进位，视为非法
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	return &t
}

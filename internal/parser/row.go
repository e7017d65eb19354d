package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row 一行原始数据，超出实际长度的单元格按空处理
type Row struct {
	Number int // 表格行号（表头为第 1 行）
	cells  []string
}

// NewRow 创建行
func NewRow(number int, cells []string) Row {
	return Row{Number: number, cells: cells}
}

// Cell 按列索引取值，越界返回空串
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Len 实际单元格数
func (r Row) Len() int {
	return len(r.cells)
}

// Empty 整行为空
func (r Row) Empty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Text 按语义字段取值，字段未映射时返回空串
func (r Row) Text(s *ColumnSchema, field string) string {
	idx, ok := s.Index(field)
	if !ok {
		return ""
	}
	return r.Cell(idx)
}

// Amount 按语义字段取金额
func (r Row) Amount(s *ColumnSchema, field string) decimal.Decimal {
	return ParseAmount(r.Text(s, field))
}

// OrderDate 按语义字段取订单日期
func (r Row) OrderDate(s *ColumnSchema, field string) (string, *time.Time) {
	raw := r.Text(s, field)
	return raw, ParseOrderDate(raw)
}

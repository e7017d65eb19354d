package parser

import (
	"encoding/json"
	"sort"
)

// Dataset 数据集类型
type Dataset string

const (
	DatasetOrders    Dataset = "orders"    // POS 订单表
	DatasetAffiliate Dataset = "affiliate" // 达人佣金表
	DatasetLedger    Dataset = "ledger"    // 提现/广告账
	DatasetUnknown   Dataset = "unknown"
)

// Severity 警告级别
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// WarningKind 警告分类
type WarningKind string

const (
	KindSchemaDrift         WarningKind = "schema_drift"
	KindMalformedRow        WarningKind = "malformed_row"
	KindAmbiguousPrimaryRow WarningKind = "ambiguous_primary_row"
)

// Warning 非致命问题，随结果一起返回
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Field    string      `json:"field,omitempty"`
	Row      int         `json:"row,omitempty"` // 表格中的行号（表头为第 1 行）
	Message  string      `json:"message"`
}

// FieldSpec 期望字段：语义键 + 标准表头
type FieldSpec struct {
	Key   string
	Label string
}

// FieldMatch 字段映射结果
type FieldMatch struct {
	Field      string  `json:"field"`
	Column     int     `json:"column"` // 表头列索引
	Header     string  `json:"header"` // 实际表头文本
	Confidence float64 `json:"confidence"`
}

// ColumnSchema 语义字段 -> 列索引，构建后只读
type ColumnSchema struct {
	dataset Dataset
	width   int
	fields  map[string]FieldMatch
}

// NewColumnSchema 由映射结果构建 schema
func NewColumnSchema(dataset Dataset, width int, matches []FieldMatch) *ColumnSchema {
	fields := make(map[string]FieldMatch, len(matches))
	for _, m := range matches {
		fields[m.Field] = m
	}
	return &ColumnSchema{dataset: dataset, width: width, fields: fields}
}

// Dataset 所属数据集
func (s *ColumnSchema) Dataset() Dataset {
	if s == nil {
		return DatasetUnknown
	}
	return s.dataset
}

// Width 表头列数
func (s *ColumnSchema) Width() int {
	if s == nil {
		return 0
	}
	return s.width
}

// Index 字段所在列
func (s *ColumnSchema) Index(field string) (int, bool) {
	if s == nil {
		return 0, false
	}
	m, ok := s.fields[field]
	return m.Column, ok
}

// Match 字段映射详情
func (s *ColumnSchema) Match(field string) (FieldMatch, bool) {
	if s == nil {
		return FieldMatch{}, false
	}
	m, ok := s.fields[field]
	return m, ok
}

// Len 已映射字段数
func (s *ColumnSchema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Matches 按列序返回全部映射
func (s *ColumnSchema) Matches() []FieldMatch {
	if s == nil {
		return nil
	}
	out := make([]FieldMatch, 0, len(s.fields))
	for _, m := range s.fields {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Column < out[j].Column })
	return out
}

type columnSchemaJSON struct {
	Dataset Dataset      `json:"dataset"`
	Width   int          `json:"width"`
	Fields  []FieldMatch `json:"fields"`
}

// MarshalJSON 持久化上一次映射
func (s *ColumnSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(columnSchemaJSON{
		Dataset: s.Dataset(),
		Width:   s.Width(),
		Fields:  s.Matches(),
	})
}

// UnmarshalJSON 恢复上一次映射
func (s *ColumnSchema) UnmarshalJSON(data []byte) error {
	var raw columnSchemaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *NewColumnSchema(raw.Dataset, raw.Width, raw.Fields)
	return nil
}

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string  `json:"sheetName"`
	Dataset    Dataset `json:"dataset"`
	Confidence float64 `json:"confidence"` // 置信度 0-1
}

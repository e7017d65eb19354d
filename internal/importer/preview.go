package importer

import (
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/source"
)

// SheetPreview 上传文件中一个工作表的识别与映射结果
type SheetPreview struct {
	SheetName  string              `json:"sheetName"`
	Dataset    parser.Dataset      `json:"dataset"`
	Confidence float64             `json:"confidence"`
	Rows       int                 `json:"rows"` // 数据行数（不含表头）
	Columns    []parser.FieldMatch `json:"columns"`
	Warnings   []parser.Warning    `json:"warnings"`
}

// PreviewResult 上传预览
type PreviewResult struct {
	Filename string         `json:"filename"`
	Sheets   []SheetPreview `json:"sheets"`
}

// Preview 识别上传文件每个工作表的数据集并给出列映射，不写入任何状态
//
// 列漂移以已保存的映射为基准。
func (c *Coordinator) Preview(data []byte, filename string) (*PreviewResult, error) {
	tables, err := source.ReadTables(data, filename)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{Filename: filename, Sheets: []SheetPreview{}}
	for _, t := range tables {
		name := t.Name
		if len(tables) == 1 && name == source.CSVTableName {
			name = filename
		}
		result.Sheets = append(result.Sheets, c.previewSheet(name, t.Rows))
	}
	return result, nil
}

func (c *Coordinator) previewSheet(name string, rows [][]string) SheetPreview {
	p := SheetPreview{
		SheetName: name,
		Dataset:   parser.DatasetUnknown,
		Columns:   []parser.FieldMatch{},
		Warnings:  []parser.Warning{},
	}
	if len(rows) == 0 {
		return p
	}
	p.Rows = len(rows) - 1

	rec := c.recognizer.Recognize(name, rows[0])
	p.Dataset = rec.Dataset
	p.Confidence = rec.Confidence

	fields, keyTerms := parser.FieldsFor(rec.Dataset)
	if fields == nil {
		return p
	}

	previous, _ := c.store.LoadSchema(rec.Dataset)
	var (
		schema   *parser.ColumnSchema
		warnings []parser.Warning
	)
	if rec.Dataset == parser.DatasetLedger {
		schema, warnings = parser.MapLedgerSchema(rows[0], previous)
	} else {
		schema, warnings = parser.NewSchemaMapper(keyTerms).Map(rec.Dataset, rows[0], fields, previous)
	}
	p.Columns = schema.Matches()
	p.Warnings = append(p.Warnings, warnings...)
	return p
}

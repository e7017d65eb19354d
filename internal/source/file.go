package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/jfyne/csvd"
	"github.com/xuri/excelize/v2"
)

// Table 一个工作表的全部行
type Table struct {
	Name string
	Rows [][]string
}

// FileSource 本地 xlsx/csv 数据源，sourceID 为文件路径，范围为工作表名
type FileSource struct{}

// NewFileSource 创建本地文件数据源
func NewFileSource() *FileSource {
	return &FileSource{}
}

// FetchRows 读取文件中的一个工作表；csv 文件只有一个表，忽略表名
func (s *FileSource) FetchRows(ctx context.Context, path, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, Unavailable(path, sheet, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Unavailable(path, sheet, err)
	}
	tables, err := ReadTables(data, filepath.Base(path))
	if err != nil {
		return nil, Unavailable(path, sheet, err)
	}
	if len(tables) == 1 && tables[0].Name == CSVTableName {
		return tables[0].Rows, nil
	}
	for _, t := range tables {
		if t.Name == sheet {
			return t.Rows, nil
		}
	}
	return nil, Unavailable(path, sheet, fmt.Errorf("sheet %q not found", sheet))
}

// CSVTableName csv 文件解析后的表名
const CSVTableName = "csv"

// ReadTables 识别上传内容的类型并读出所有工作表，xlsx 按工作簿顺序，其余按 csv 处理
func ReadTables(data []byte, name string) ([]Table, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s is empty", name)
	}

	kind, _ := filetype.Match(data)
	switch kind.Extension {
	case "xlsx", "zip":
		return readWorkbook(bytes.NewReader(data))
	case "xls", "pdf", "png", "jpg", "gif":
		return nil, fmt.Errorf("unsupported file type %s for %s", kind.Extension, name)
	}

	rows, err := readCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return []Table{{Name: CSVTableName, Rows: rows}}, nil
}

func readWorkbook(r io.Reader) ([]Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	var tables []Table
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		tables = append(tables, Table{Name: name, Rows: rows})
	}
	return tables, nil
}

// readCSV 分隔符由 csvd 自动嗅探，允许各行字段数不同
func readCSV(r io.Reader) ([][]string, error) {
	reader := csvd.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

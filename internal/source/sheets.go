package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// columnSpan 取数的列范围
const columnSpan = "A:AZ"

// Credentials 服务账号凭据；File 非空时优先使用凭据文件
type Credentials struct {
	ClientEmail string
	PrivateKey  string
	File        string
}

// SheetsSource Google Sheets 只读数据源
type SheetsSource struct {
	svc *sheets.Service
}

// NewSheetsSource 创建 Sheets 客户端
func NewSheetsSource(ctx context.Context, creds Credentials) (*SheetsSource, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	switch {
	case creds.File != "":
		opts = append(opts, option.WithCredentialsFile(creds.File))
	case creds.ClientEmail != "" && creds.PrivateKey != "":
		raw, err := serviceAccountJSON(creds)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	default:
		return nil, fmt.Errorf("google service account credentials not configured")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{svc: svc}, nil
}

func serviceAccountJSON(creds Credentials) ([]byte, error) {
	// 环境变量中的私钥常以字面 \n 存储
	key := strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": creds.ClientEmail,
		"private_key":  key,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}
	return raw, nil
}

// SheetRange 工作表名转换为 A1 范围；已带 "!" 的原样返回
func SheetRange(sheet string) string {
	if strings.Contains(sheet, "!") {
		return sheet
	}
	return sheet + "!" + columnSpan
}

// FetchRows 读取一个工作表范围，任何失败都包装为 SourceUnavailableError
func (s *SheetsSource) FetchRows(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, SheetRange(rng)).Context(ctx).Do()
	if err != nil {
		return nil, Unavailable(spreadsheetID, rng, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

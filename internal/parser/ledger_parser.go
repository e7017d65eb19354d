package parser

import (
	"fmt"

	"github.com/kidlost1412/shopchinh/internal/model"
)

// minLedgerCells 少于 4 列的行不含任何完整流水
const minLedgerCells = 4

// LedgerBatch 账本解析结果
type LedgerBatch struct {
	Ledgers  model.Ledgers `json:"ledgers"`
	Schema   *ColumnSchema `json:"schema"`
	Warnings []Warning     `json:"warnings"`
	Rows     int           `json:"rows"`
}

// ParseLedgers 解析提现/广告/GVM 三段并排的账本
//
// 表头无法识别的字段退回到固定列位置（与 LedgerFields 的声明顺序一致）。
func ParseLedgers(rows [][]string, previous *ColumnSchema) *LedgerBatch {
	batch := &LedgerBatch{
		Ledgers: model.Ledgers{
			Withdrawals: []model.WithdrawalEntry{},
			Advertising: []model.AdvertisingEntry{},
		},
	}
	if len(rows) == 0 {
		batch.Schema = NewColumnSchema(DatasetLedger, 0, nil)
		batch.Warnings = append(batch.Warnings, emptySheetWarning())
		return batch
	}

	schema, warnings := MapLedgerSchema(rows[0], previous)
	batch.Schema = schema
	batch.Warnings = warnings
	batch.Rows = len(rows) - 1

	for i, cells := range rows[1:] {
		row := NewRow(i+2, cells)
		if row.Len() < minLedgerCells || row.Empty() {
			continue
		}

		if date, amount := row.Text(schema, FieldWithdrawalDate), row.Text(schema, FieldWithdrawalAmount); date != "" && amount != "" {
			batch.Ledgers.Withdrawals = append(batch.Ledgers.Withdrawals, model.WithdrawalEntry{
				Date:   ParseLedgerDate(date),
				Amount: ParseAmount(amount),
				Kind:   model.WithdrawalRegular,
				Row:    row.Number,
			})
		}

		adDate := row.Text(schema, FieldAdDate)
		deposit := row.Text(schema, FieldAdDeposit)
		tax := row.Text(schema, FieldAdTax)
		received := row.Text(schema, FieldAdActualReceived)
		if adDate != "" && (deposit != "" || tax != "" || received != "") {
			batch.Ledgers.Advertising = append(batch.Ledgers.Advertising, model.AdvertisingEntry{
				Date:           ParseLedgerDate(adDate),
				Deposit:        ParseAmount(deposit),
				Tax:            ParseAmount(tax),
				ActualReceived: ParseAmount(received),
				Row:            row.Number,
			})
		}

		if date, amount := row.Text(schema, FieldGVMDate), row.Text(schema, FieldGVMAmount); date != "" && amount != "" {
			batch.Ledgers.Withdrawals = append(batch.Ledgers.Withdrawals, model.WithdrawalEntry{
				Date:   ParseLedgerDate(date),
				Amount: ParseAmount(amount),
				Kind:   model.WithdrawalGVM,
				Row:    row.Number,
			})
		}
	}

	for _, w := range batch.Ledgers.Withdrawals {
		if w.Date == nil {
			label := "ngày rút tiền"
			if w.Kind == model.WithdrawalGVM {
				label = "ngày rút tiền GVM"
			}
			batch.Warnings = append(batch.Warnings, invalidLedgerDate(w.Row, label))
		}
	}
	for _, a := range batch.Ledgers.Advertising {
		if a.Date == nil {
			batch.Warnings = append(batch.Warnings, invalidLedgerDate(a.Row, "ngày nộp tiền quảng cáo"))
		}
	}
	return batch
}

// MapLedgerSchema 映射账本表头，无法识别的字段退回固定列位置并把对应的 CRITICAL 告警降为 WARNING
func MapLedgerSchema(header []string, previous *ColumnSchema) (*ColumnSchema, []Warning) {
	mapped, warnings := NewSchemaMapper(LedgerKeyTerms).Map(DatasetLedger, header, LedgerFields, previous)
	schema := withFixedPositions(mapped, LedgerFields)
	for i := range warnings {
		if _, ok := schema.Index(warnings[i].Field); ok && warnings[i].Severity == SeverityCritical {
			warnings[i].Severity = SeverityWarning
			warnings[i].Message += "; dùng vị trí cột mặc định"
		}
	}
	return schema, warnings
}

// invalidLedgerDate 日期无法解析的流水只计入全周期汇总
func invalidLedgerDate(row int, label string) Warning {
	return Warning{
		Kind:     KindMalformedRow,
		Severity: SeverityInfo,
		Row:      row,
		Message:  fmt.Sprintf("Dòng %d: %s không hợp lệ, chỉ tính vào tổng toàn thời gian", row, label),
	}
}

// withFixedPositions 未映射且固定列未被占用的字段使用声明顺序作为列位置
func withFixedPositions(s *ColumnSchema, fields []FieldSpec) *ColumnSchema {
	matches := s.Matches()
	used := make(map[int]bool, len(matches))
	for _, m := range matches {
		used[m.Column] = true
	}
	for pos, f := range fields {
		if _, ok := s.Index(f.Key); ok || used[pos] {
			continue
		}
		matches = append(matches, FieldMatch{Field: f.Key, Column: pos})
		used[pos] = true
	}
	return NewColumnSchema(s.Dataset(), s.Width(), matches)
}

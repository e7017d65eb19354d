package parser

import (
	"fmt"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// AffiliateBatch 达人订单去重结果
type AffiliateBatch struct {
	Orders   []*model.AffiliateOrder `json:"orders"`
	Schema   *ColumnSchema           `json:"schema"`
	Warnings []Warning               `json:"warnings"`
	Rows     int                     `json:"rows"`
	Groups   int                     `json:"groups"` // 不同订单号个数
}

// AffiliateResolver 按订单号分组，每组只保留佣金基数 > 0 的主行
type AffiliateResolver struct {
	mapper *SchemaMapper
}

// NewAffiliateResolver 创建去重器
func NewAffiliateResolver() *AffiliateResolver {
	return &AffiliateResolver{mapper: NewSchemaMapper(AffiliateKeyTerms)}
}

// BuildAffiliateOrders 使用默认去重器构建达人订单
func BuildAffiliateOrders(rows [][]string, previous *ColumnSchema) *AffiliateBatch {
	return NewAffiliateResolver().Build(rows, previous)
}

// Build 第一行为表头，分组保持订单号首次出现的顺序
func (r *AffiliateResolver) Build(rows [][]string, previous *ColumnSchema) *AffiliateBatch {
	batch := &AffiliateBatch{Orders: []*model.AffiliateOrder{}}
	if len(rows) == 0 {
		batch.Schema = NewColumnSchema(DatasetAffiliate, 0, nil)
		batch.Warnings = append(batch.Warnings, emptySheetWarning())
		return batch
	}

	schema, warnings := r.mapper.Map(DatasetAffiliate, rows[0], AffiliateFields, previous)
	batch.Schema = schema
	batch.Warnings = warnings
	batch.Rows = len(rows) - 1

	var ids []string
	groups := make(map[string][]Row)
	for i, cells := range rows[1:] {
		row := NewRow(i+2, cells)
		if row.Empty() {
			continue
		}
		id := row.Text(schema, FieldAffOrderID)
		if id == "" {
			batch.Warnings = append(batch.Warnings, Warning{
				Kind:     KindMalformedRow,
				Severity: SeverityWarning,
				Row:      row.Number,
				Message:  fmt.Sprintf("Dòng %d không có ID đơn hàng; đã bỏ qua", row.Number),
			})
			continue
		}
		if _, ok := groups[id]; !ok {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], row)
	}
	batch.Groups = len(ids)

	for _, id := range ids {
		group := groups[id]
		primary, qualified := pickPrimaryRow(group, schema)
		switch {
		case qualified == 0:
			batch.Warnings = append(batch.Warnings, Warning{
				Kind:     KindAmbiguousPrimaryRow,
				Severity: SeverityWarning,
				Field:    FieldAffCommissionBaseEstimated,
				Row:      group[0].Number,
				Message:  fmt.Sprintf("Đơn %s (%d dòng) không có dòng nào có cơ sở hoa hồng ước tính > 0; đã loại", id, len(group)),
			})
			continue
		case qualified > 1:
			batch.Warnings = append(batch.Warnings, Warning{
				Kind:     KindAmbiguousPrimaryRow,
				Severity: SeverityWarning,
				Field:    FieldAffCommissionBaseEstimated,
				Row:      primary.Number,
				Message:  fmt.Sprintf("Đơn %s có %d dòng cơ sở hoa hồng > 0; dùng dòng %d", id, qualified, primary.Number),
			})
		}
		batch.Orders = append(batch.Orders, newAffiliateOrder(id, primary, schema, len(group)))
	}

	return batch
}

// pickPrimaryRow 返回第一条合格行以及合格行数量
func pickPrimaryRow(group []Row, s *ColumnSchema) (Row, int) {
	var primary Row
	qualified := 0
	for _, row := range group {
		if row.Amount(s, FieldAffCommissionBaseEstimated).GreaterThan(decimal.Zero) {
			if qualified == 0 {
				primary = row
			}
			qualified++
		}
	}
	return primary, qualified
}

func newAffiliateOrder(id string, row Row, s *ColumnSchema, groupSize int) *model.AffiliateOrder {
	status := row.Text(s, FieldAffOrderStatus)
	contentType := row.Text(s, FieldAffContentType)

	standardEstimated := row.Amount(s, FieldAffStandardEstimated)
	adEstimated := row.Amount(s, FieldAffAdEstimated)

	// 只有"已完成"的订单才读取实际佣金
	standardActual, adActual := decimal.Zero, decimal.Zero
	if model.CanonicalText(status) == model.LabelAffiliateCompleted {
		standardActual = row.Amount(s, FieldAffStandardActual)
		adActual = row.Amount(s, FieldAffAdActual)
	}

	createRaw := row.Text(s, FieldAffCreateTime)

	return &model.AffiliateOrder{
		ID:            id,
		AffiliateName: row.Text(s, FieldAffCreatorName),
		ProductID:     row.Text(s, FieldAffProductID),
		ProductName:   row.Text(s, FieldAffProductName),
		SKU:           row.Text(s, FieldAffSKU),

		Quantity:      row.Amount(s, FieldAffQuantity),
		Price:         row.Amount(s, FieldAffPrice),
		PaymentAmount: row.Amount(s, FieldAffPaymentAmount),

		Status:          status,
		StatusCode:      model.ParseAffiliateStatus(status),
		ContentType:     contentType,
		ContentTypeCode: model.ParseContentType(contentType),
		Revenue:         row.Amount(s, FieldAffCommissionBaseEstimated),

		StandardCommissionRate:      row.Amount(s, FieldAffStandardRate),
		StandardCommissionEstimated: standardEstimated,
		StandardCommissionActual:    standardActual,
		AdCommissionRate:            row.Amount(s, FieldAffAdRate),
		AdCommissionEstimated:       adEstimated,
		AdCommissionActual:          adActual,
		TotalCommissionEstimated:    standardEstimated.Add(adEstimated),
		TotalCommissionActual:       standardActual.Add(adActual),

		CreateTime:  model.DateField{Raw: createRaw, Parsed: ParseAffiliateDate(createRaw)},
		PaymentTime: row.Text(s, FieldAffPaymentTime),
		Platform:    row.Text(s, FieldAffPlatform),

		PrimaryRowIndex:    row.Number,
		DuplicateRowsCount: groupSize,
	}
}

package parser

import (
	"fmt"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// placeholderID POS 导出中表示"无订单号"的占位符
const placeholderID = "_"

// OrderBatch 订单组装结果
type OrderBatch struct {
	Orders   []*model.Order `json:"orders"`
	Schema   *ColumnSchema  `json:"schema"`
	Warnings []Warning      `json:"warnings"`
	Rows     int            `json:"rows"` // 数据行数（不含表头）
}

// OrderAssembler 将主行 + 续行组装成订单
type OrderAssembler struct {
	mapper *SchemaMapper
}

// NewOrderAssembler 创建订单组装器
func NewOrderAssembler() *OrderAssembler {
	return &OrderAssembler{mapper: NewSchemaMapper(OrderKeyTerms)}
}

// BuildOrders 使用默认组装器构建订单
func BuildOrders(rows [][]string, previous *ColumnSchema) *OrderBatch {
	return NewOrderAssembler().Build(rows, previous)
}

// Build 第一行为表头；有订单号的行开启新订单，无订单号但有商品名的行并入当前订单
func (a *OrderAssembler) Build(rows [][]string, previous *ColumnSchema) *OrderBatch {
	batch := &OrderBatch{Orders: []*model.Order{}}
	if len(rows) == 0 {
		batch.Schema = NewColumnSchema(DatasetOrders, 0, nil)
		batch.Warnings = append(batch.Warnings, emptySheetWarning())
		return batch
	}

	schema, warnings := a.mapper.Map(DatasetOrders, rows[0], OrderFields, previous)
	batch.Schema = schema
	batch.Warnings = warnings
	batch.Rows = len(rows) - 1

	var current *model.Order
	flush := func() {
		if current != nil {
			batch.Orders = append(batch.Orders, current)
			current = nil
		}
	}

	for i, cells := range rows[1:] {
		row := NewRow(i+2, cells)
		if row.Empty() {
			continue
		}
		if row.Len() > schema.Width() {
			batch.Warnings = append(batch.Warnings, Warning{
				Kind:     KindMalformedRow,
				Severity: SeverityInfo,
				Row:      row.Number,
				Message:  fmt.Sprintf("Dòng %d có %d ô, nhiều hơn tiêu đề (%d); bỏ qua các ô thừa", row.Number, row.Len(), schema.Width()),
			})
		}

		if id := row.Text(schema, FieldOrderID); id != "" && id != placeholderID {
			flush()
			current = newOrder(row, schema)
			continue
		}

		if row.Text(schema, FieldProductName) == "" {
			continue
		}
		if current == nil {
			batch.Warnings = append(batch.Warnings, Warning{
				Kind:     KindMalformedRow,
				Severity: SeverityWarning,
				Row:      row.Number,
				Message:  fmt.Sprintf("Dòng %d là dòng sản phẩm nhưng không thuộc đơn hàng nào; đã bỏ qua", row.Number),
			})
			continue
		}
		appendContinuation(current, row, schema)
	}
	flush()

	return batch
}

func newOrder(row Row, s *ColumnSchema) *model.Order {
	status := row.Text(s, FieldStatus)
	code := model.ParseOrderStatus(status)

	actualPayment := row.Amount(s, FieldActualPayment)
	preFee := row.Amount(s, FieldRevenue)
	actualReceived := row.Amount(s, FieldActualReceived)
	revenue, source := ResolveRevenue(code, actualPayment, preFee, actualReceived)

	createRaw, createAt := row.OrderDate(s, FieldCreateDate)
	updateRaw, updateAt := row.OrderDate(s, FieldUpdateDate)
	deliveryRaw, deliveryAt := row.OrderDate(s, FieldDeliveryDate)

	tags := row.Text(s, FieldTags)
	notes := row.Text(s, FieldNotes)
	if notes == "" {
		notes = tags
	}

	o := &model.Order{
		ID:          row.Text(s, FieldOrderID),
		WaybillCode: row.Text(s, FieldWaybillCode),
		Status:      status,
		StatusCode:  code,
		Province:    row.Text(s, FieldProvince),

		CreateDate:   model.DateField{Raw: createRaw, Parsed: createAt},
		UpdateDate:   model.DateField{Raw: updateRaw, Parsed: updateAt},
		DeliveryDate: model.DateField{Raw: deliveryRaw, Parsed: deliveryAt},

		Revenue:           revenue,
		RevenueSource:     source,
		RevenueBeforeFees: preFee,
		ActualPayment:     actualPayment,
		ActualReceived:    actualReceived,

		AffiliateFee:       row.Amount(s, FieldAffFee),
		ShippingFee:        row.Amount(s, FieldShippingFee),
		ShopShippingFee:    row.Amount(s, FieldShopShippingFee),
		PlatformFee:        row.Amount(s, FieldPlatformFee),
		ExtraFee:           row.Amount(s, FieldExtraFee),
		FlashSaleFee:       row.Amount(s, FieldFlashSaleFee),
		Tax:                row.Amount(s, FieldTax),
		PlatformSubsidy:    row.Amount(s, FieldPlatformSubsidy),
		ReconciliationFee:  row.Amount(s, FieldReconciliationFee),
		MarketplaceSubsidy: row.Amount(s, FieldMarketplaceSub),
		OtherFee:           row.Amount(s, FieldOtherFee),
		TransactionFee:     row.Amount(s, FieldTransactionFee),
		PlatformCommission: row.Amount(s, FieldPlatformComm),

		AffiliateName: row.Text(s, FieldAffName),
		Tags:          tags,
		Notes:         notes,
		Products:      []model.Product{},
	}

	if name := row.Text(s, FieldProductName); name != "" {
		o.Products = append(o.Products, newProduct(row, s, revenue))
	}
	return o
}

// appendContinuation 续行只追加商品；收入按父订单状态归因，仅在大于 0 时累加
func appendContinuation(o *model.Order, row Row, s *ColumnSchema) {
	preFee := row.Amount(s, FieldRevenue)
	revenue, _ := ResolveRevenue(o.StatusCode,
		row.Amount(s, FieldActualPayment),
		preFee,
		row.Amount(s, FieldActualReceived),
	)

	if revenue.GreaterThan(decimal.Zero) {
		o.Revenue = o.Revenue.Add(revenue)
	}
	if preFee.GreaterThan(decimal.Zero) {
		o.RevenueBeforeFees = o.RevenueBeforeFees.Add(preFee)
	}
	o.Products = append(o.Products, newProduct(row, s, revenue))
}

func newProduct(row Row, s *ColumnSchema, revenue decimal.Decimal) model.Product {
	return model.Product{
		Name:      row.Text(s, FieldProductName),
		Quantity:  row.Amount(s, FieldQuantity),
		UnitPrice: row.Amount(s, FieldUnitPrice),
		Discount:  row.Amount(s, FieldDiscount),
		Image:     row.Text(s, FieldProductImage),
		Revenue:   revenue,
	}
}

func emptySheetWarning() Warning {
	return Warning{
		Kind:     KindSchemaDrift,
		Severity: SeverityCritical,
		Message:  "Bảng dữ liệu trống, không có dòng tiêu đề",
	}
}

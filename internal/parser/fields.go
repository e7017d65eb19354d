package parser

// 订单表字段
const (
	FieldOrderID           = "ID"
	FieldWaybillCode       = "WAYBILL_CODE"
	FieldStatus            = "STATUS"
	FieldProductName       = "PRODUCT_NAME"
	FieldQuantity          = "QUANTITY"
	FieldUnitPrice         = "UNIT_PRICE"
	FieldDiscount          = "DISCOUNT"
	FieldCreateDate        = "CREATE_DATE"
	FieldUpdateDate        = "UPDATE_DATE"
	FieldProvince          = "PROVINCE"
	FieldDeliveryDate      = "DELIVERY_DATE"
	FieldTags              = "TAGS"
	FieldProductImage      = "PRODUCT_IMAGE"
	FieldRevenue           = "REVENUE"
	FieldActualPayment     = "ACTUAL_PAYMENT"
	FieldReconciliationFee = "RECONCILIATION_FEE"
	FieldMarketplaceSub    = "PLATFORM_SUBSIDY"
	FieldOtherFee          = "OTHER_FEE"
	FieldAffFee            = "AFF_FEE"
	FieldAffName           = "AFF_NAME"
	FieldShippingFee       = "SHIPPING_FEE"
	FieldActualReceived    = "ACTUAL_RECEIVED"
	FieldShopShippingFee   = "SHOP_SHIPPING_FEE"
	FieldTransactionFee    = "TRANSACTION_FEE"
	FieldPlatformComm      = "TIKTOK_COMMISSION"
	FieldPlatformFee       = "ACTUAL_FEE_9"
	FieldExtraFee          = "XTRA_FEE"
	FieldFlashSaleFee      = "FLASH_SALE_FEE"
	FieldNotes             = "NOTES"
	FieldTax               = "TAX"
	FieldPlatformSubsidy   = "TIKTOK_SUBSIDY"
)

// OrderFields 订单表期望表头，声明顺序即认领优先级
var OrderFields = []FieldSpec{
	{FieldOrderID, "ID"},
	{FieldWaybillCode, "Mã vận đơn"},
	{FieldStatus, "Trạng thái"},
	{FieldProductName, "Sản phẩm"},
	{FieldQuantity, "Số lượng"},
	{FieldUnitPrice, "Đơn giá"},
	{FieldDiscount, "Giảm giá"},
	{FieldCreateDate, "Ngày tạo đơn"},
	{FieldUpdateDate, "Ngày cập nhật"},
	{FieldProvince, "Tỉnh thành phố"},
	{FieldDeliveryDate, "Ngày giờ đẩy đơn sang đvvc"},
	{FieldTags, "Thẻ"},
	{FieldProductImage, "Ảnh SP"},
	{FieldRevenue, "Doanh thu chưa trừ phí sàn"},
	{FieldActualPayment, "Tiền thanh toán thực tế"},
	{FieldReconciliationFee, "Tổng phí đối soát"},
	{FieldMarketplaceSub, "Sàn trợ giá"},
	{FieldOtherFee, "khác"},
	{FieldAffFee, "phí aff"},
	{FieldAffName, "tên aff"},
	{FieldShippingFee, "tiền spf ship"},
	{FieldActualReceived, "tiền thực nhận"},
	{FieldShopShippingFee, "tiền ship shop chịu"},
	{FieldTransactionFee, "phí giao dịch"},
	{FieldPlatformComm, "phí hoa hồng tiktok shop"},
	{FieldPlatformFee, "Phí 9% thực tế"},
	{FieldExtraFee, "phí xtra"},
	{FieldFlashSaleFee, "phí flash sale"},
	{FieldNotes, "ghi chú"},
	{FieldTax, "thuế"},
	{FieldPlatformSubsidy, "phí tiktok bù"},
}

// 达人佣金表字段
const (
	FieldAffOrderID                 = "ORDER_ID"
	FieldAffProductID               = "PRODUCT_ID"
	FieldAffProductName             = "PRODUCT_NAME"
	FieldAffSKU                     = "SKU"
	FieldAffPrice                   = "PRICE"
	FieldAffPaymentAmount           = "PAYMENT_AMOUNT"
	FieldAffCurrency                = "CURRENCY"
	FieldAffQuantity                = "QUANTITY"
	FieldAffPaymentMethod           = "PAYMENT_METHOD"
	FieldAffOrderStatus             = "ORDER_STATUS"
	FieldAffCreatorName             = "AFF_NAME"
	FieldAffContentType             = "CONTENT_TYPE"
	FieldAffContentID               = "CONTENT_ID"
	FieldAffCommissionModel         = "COMMISSION_MODEL"
	FieldAffTaxRate                 = "TAX_RATE"
	FieldAffTaxEstimated            = "TAX_ESTIMATED"
	FieldAffTaxActual               = "TAX_ACTUAL"
	FieldAffStandardRate            = "STANDARD_COMMISSION_RATE"
	FieldAffCommissionBaseEstimated = "COMMISSION_BASE_ESTIMATED"
	FieldAffStandardEstimated       = "STANDARD_COMMISSION_ESTIMATED"
	FieldAffCommissionBaseActual    = "COMMISSION_BASE_ACTUAL"
	FieldAffStandardActual          = "STANDARD_COMMISSION_ACTUAL"
	FieldAffAdRate                  = "AD_COMMISSION_RATE"
	FieldAffAdEstimated             = "AD_COMMISSION_ESTIMATED"
	FieldAffAdActual                = "AD_COMMISSION_ACTUAL"
	FieldAffCreatorBonusEstimated   = "CREATOR_BONUS_ESTIMATED"
	FieldAffCreatorBonusActual      = "CREATOR_BONUS_ACTUAL"
	FieldAffReturnRefund            = "RETURN_REFUND"
	FieldAffRefund                  = "REFUND"
	FieldAffCreateTime              = "CREATE_TIME"
	FieldAffPaymentTime             = "PAYMENT_TIME"
	FieldAffReadyShipTime           = "READY_SHIP_TIME"
	FieldAffDeliveryTime            = "DELIVERY_TIME"
	FieldAffCompleteTime            = "COMPLETE_TIME"
	FieldAffCommissionPaidTime      = "COMMISSION_PAID_TIME"
	FieldAffPlatform                = "PLATFORM"
)

// AffiliateFields 达人佣金表期望表头
var AffiliateFields = []FieldSpec{
	{FieldAffOrderID, "ID đơn hàng"},
	{FieldAffProductID, "ID sản phẩm"},
	{FieldAffProductName, "Tên sản phẩm"},
	{FieldAffSKU, "Sku"},
	{FieldAffPrice, "Giá"},
	{FieldAffPaymentAmount, "Payment Amount"},
	{FieldAffCurrency, "Đơn vị tiền tệ"},
	{FieldAffQuantity, "Số lượng"},
	{FieldAffPaymentMethod, "Phương thức thanh toán"},
	{FieldAffOrderStatus, "Trạng thái đơn hàng"},
	{FieldAffCreatorName, "Tên người dùng nhà sáng tạo"},
	{FieldAffContentType, "Loại nội dung"},
	{FieldAffContentID, "Id nội dung"},
	{FieldAffCommissionModel, "commission model"},
	{FieldAffTaxRate, "Tỷ lệ khấu trừ Thuế TNCN"},
	{FieldAffTaxEstimated, "Thuế TNCN ước tính"},
	{FieldAffTaxActual, "Thuế TNCN thực tế"},
	{FieldAffStandardRate, "Tỷ lệ hoa hồng tiêu chuẩn"},
	{FieldAffCommissionBaseEstimated, "Cơ sở hoa hồng ước tính"},
	{FieldAffStandardEstimated, "Thanh toán hoa hồng tiêu chuẩn ước tính"},
	{FieldAffCommissionBaseActual, "Cơ sở hoa hồng thực tế"},
	{FieldAffStandardActual, "Thanh toán hoa hồng thực tế"},
	{FieldAffAdRate, "Tỷ lệ hoa hồng Quảng cáo cửa hàng"},
	{FieldAffAdEstimated, "Thanh toán hoa hồng Quảng cáo cửa hàng ước tính"},
	{FieldAffAdActual, "Thanh toán hoa hồng Quảng cáo cửa hàng thực tế"},
	{FieldAffCreatorBonusEstimated, "Thưởng đồng chi trả cho nhà sáng tạo ước tính"},
	{FieldAffCreatorBonusActual, "Thưởng đồng chi trả cho nhà sáng tạo thực tế"},
	{FieldAffReturnRefund, "Trả hàng & hoàn tiền"},
	{FieldAffRefund, "Hoàn tiền"},
	{FieldAffCreateTime, "Thời gian đã tạo"},
	{FieldAffPaymentTime, "Thời gian thanh toán"},
	{FieldAffReadyShipTime, "Thời gian sẵn sàng vận chuyển"},
	{FieldAffDeliveryTime, "Order Delivery Time"},
	{FieldAffCompleteTime, "Thời gian hoàn thành đơn hàng"},
	{FieldAffCommissionPaidTime, "Thời gian hoa hồng đã thanh toán"},
	{FieldAffPlatform, "Platform"},
}

// 提现/广告账字段（表头在第 1 行，列位置固定）
const (
	FieldWithdrawalDate   = "WITHDRAWAL_DATE"
	FieldWithdrawalAmount = "WITHDRAWAL_AMOUNT"
	FieldAdDate           = "AD_DATE"
	FieldAdDeposit        = "AD_DEPOSIT"
	FieldAdTax            = "AD_TAX"
	FieldAdActualReceived = "AD_ACTUAL_RECEIVED"
	FieldGVMDate          = "GVM_DATE"
	FieldGVMAmount        = "GVM_AMOUNT"
)

// LedgerFields 账本期望表头，声明顺序与固定列位置一致
var LedgerFields = []FieldSpec{
	{FieldWithdrawalDate, "Ngày rút tiền"},
	{FieldWithdrawalAmount, "Số tiền rút"},
	{FieldAdDate, "Ngày nộp tiền"},
	{FieldAdDeposit, "Số tiền nộp"},
	{FieldAdTax, "Tổng số tiền thuế"},
	{FieldAdActualReceived, "Tổng phụ"},
	{FieldGVMDate, "Ngày rút tiền gvm"},
	{FieldGVMAmount, "Số tiền gvm"},
}

// KeyTerm 领域概念及其关键词
type KeyTerm struct {
	Concept string
	Terms   []string
}

// OrderKeyTerms 订单表的领域关键词
var OrderKeyTerms = []KeyTerm{
	{"doanh thu", []string{"doanh", "thu", "revenue"}},
	{"tiền", []string{"tiền", "money", "payment"}},
	{"phí", []string{"phí", "fee", "charge"}},
	{"thực tế", []string{"thực", "tế", "actual"}},
	{"thực nhận", []string{"thực", "nhận", "received"}},
}

// AffiliateKeyTerms 达人表的领域关键词
var AffiliateKeyTerms = []KeyTerm{
	{"hoa hồng", []string{"hoa", "hồng", "commission"}},
	{"quảng cáo", []string{"quảng", "cáo", "ad", "advertising"}},
	{"doanh thu", []string{"doanh", "thu", "revenue"}},
	{"tỷ lệ", []string{"tỷ", "lệ", "rate", "percent"}},
	{"ước tính", []string{"ước", "tính", "estimated"}},
	{"thực tế", []string{"thực", "tế", "actual"}},
}

// LedgerKeyTerms 账本的领域关键词
var LedgerKeyTerms = []KeyTerm{
	{"ngày", []string{"ngày", "date"}},
	{"tiền", []string{"tiền", "money", "amount"}},
	{"thuế", []string{"thuế", "tax"}},
	{"gvm", []string{"gvm"}},
}

package exporter

import (
	"fmt"
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet   = "Đơn hàng"
	productsSheet = "Sản phẩm"
	dateLayout    = "02/01/2006"
)

var orderColumns = []column{
	{"Mã đơn hàng", 22},
	{"Mã vận đơn", 20},
	{"Trạng thái", 16},
	{"Tỉnh thành phố", 18},
	{"Ngày tạo đơn", 14},
	{"Ngày đẩy đơn", 14},
	{"Doanh thu", 16},
	{"Nguồn doanh thu", 18},
	{"Doanh thu chưa trừ phí sàn", 18},
	{"Tiền thực nhận", 16},
	{"Phí aff", 14},
	{"Phí ship", 14},
	{"Ship shop chịu", 14},
	{"Phí 9%", 14},
	{"Phí xtra", 14},
	{"Phí flash sale", 14},
	{"Thuế", 14},
	{"Phí tiktok bù", 14},
	{"Tên aff", 18},
	{"Số sản phẩm", 12},
	{"Ghi chú", 30},
}

var productColumns = []column{
	{"Mã đơn hàng", 22},
	{"Sản phẩm", 40},
	{"Số lượng", 10},
	{"Đơn giá", 14},
	{"Giảm giá", 14},
	{"Doanh thu", 16},
}

// amountColumns 金额列（从 1 开始的列号）
var amountColumns = map[int]bool{7: true, 9: true, 10: true, 11: true, 12: true, 13: true, 14: true, 15: true, 16: true, 17: true, 18: true}

type column struct {
	title string
	width float64
}

// Exporter 订单 Excel 导出器
type Exporter struct {
	now func() time.Time
}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Progress func(ProgressEvent)
}

// Export 导出订单列表：一个订单表、一个商品明细表
func (e *Exporter) Export(orders []*model.Order, opts ExportOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	progress := newOrderProgress(opts.Progress, len(orders))
	progress.prepare()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(productsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeHeader(f, ordersSheet, orderColumns, styles.header); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeHeader(f, productsSheet, productColumns, styles.header); err != nil {
		_ = f.Close()
		return nil, err
	}

	productRow := 2
	for i, o := range orders {
		row := i + 2
		if err := f.SetSheetRow(ordersSheet, cellName(1, row), &[]any{
			o.ID,
			o.WaybillCode,
			o.Status,
			o.Province,
			formatDate(o.CreateDate),
			formatDate(o.DeliveryDate),
			o.Revenue.InexactFloat64(),
			string(o.RevenueSource),
			o.RevenueBeforeFees.InexactFloat64(),
			o.ActualReceived.InexactFloat64(),
			o.AffiliateFee.InexactFloat64(),
			o.ShippingFee.InexactFloat64(),
			o.ShopShippingFee.InexactFloat64(),
			o.PlatformFee.InexactFloat64(),
			o.ExtraFee.InexactFloat64(),
			o.FlashSaleFee.InexactFloat64(),
			o.Tax.InexactFloat64(),
			o.PlatformSubsidy.InexactFloat64(),
			o.AffiliateName,
			len(o.Products),
			o.Notes,
		}); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write order %s: %w", o.ID, err)
		}

		for _, p := range o.Products {
			if err := f.SetSheetRow(productsSheet, cellName(1, productRow), &[]any{
				o.ID,
				p.Name,
				p.Quantity.InexactFloat64(),
				p.UnitPrice.InexactFloat64(),
				p.Discount.InexactFloat64(),
				p.Revenue.InexactFloat64(),
			}); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to write products of %s: %w", o.ID, err)
			}
			productRow++
		}

		progress.written(i + 1)
	}

	if err := applyAmountStyle(f, ordersSheet, len(orders)+1, styles.amount); err != nil {
		_ = f.Close()
		return nil, err
	}
	if productRow > 2 {
		if err := f.SetCellStyle(productsSheet, cellName(4, 2), cellName(6, productRow-1), styles.amount); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to style products: %w", err)
		}
	}

	f.SetActiveSheet(0)
	progress.done()
	return f, nil
}

// Filename 导出文件名
func (e *Exporter) Filename() string {
	return fmt.Sprintf("orders_%s.xlsx", e.now().In(parser.Location).Format("20060102_150405"))
}

type styles struct {
	header int
	amount int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	// #,##0
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create amount style: %w", err)
	}
	return styles{header: header, amount: amount}, nil
}

func writeHeader(f *excelize.File, sheet string, cols []column, style int) error {
	titles := make([]any, len(cols))
	for i, c := range cols {
		titles[i] = c.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("failed to set width of %s: %w", sheet, err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &titles); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(cols), 1), style); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func applyAmountStyle(f *excelize.File, sheet string, lastRow, style int) error {
	if lastRow < 2 {
		return nil
	}
	for col := range amountColumns {
		if err := f.SetCellStyle(sheet, cellName(col, 2), cellName(col, lastRow), style); err != nil {
			return fmt.Errorf("failed to style %s: %w", sheet, err)
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func formatDate(d model.DateField) string {
	if d.Parsed == nil {
		return d.Raw
	}
	return d.Parsed.Format(dateLayout)
}

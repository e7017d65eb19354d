package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/source"
	"github.com/kidlost1412/shopchinh/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sheets 数据源中各数据集所在的工作表
type Sheets struct {
	SourceID     string
	Orders       string
	Affiliate    string
	Ledger       string
	FetchTimeout time.Duration
}

// importLogRetention 每个数据集保留的导入日志条数
const importLogRetention = 200

// Invalidator 可清除缓存的数据源
type Invalidator interface {
	Invalidate(ctx context.Context, sourceID string, ranges ...string) error
}

// Coordinator 导入协调器：取数 → 映射 → 构建 → 保存映射与日志 → 记录告警
type Coordinator struct {
	src        source.Source
	store      *store.Store
	sheets     Sheets
	logger     *zap.Logger
	recognizer *parser.SheetRecognizer
	now        func() time.Time

	mu      sync.Mutex
	digests map[parser.Dataset]string // 最近一次记录的源数据摘要
}

// NewCoordinator 创建导入协调器
func NewCoordinator(src source.Source, st *store.Store, sheets Sheets, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		src:        src,
		store:      st,
		sheets:     sheets,
		logger:     logger.Named("importer"),
		recognizer: parser.NewSheetRecognizer(),
		now:        time.Now,
		digests:    make(map[parser.Dataset]string),
	}
}

// buildResult 一次构建的产出
type buildResult struct {
	schema   *parser.ColumnSchema
	warnings []parser.Warning
	rows     int
	entities int
}

// ImportContext 一次构建运行的上下文
type ImportContext struct {
	RunID     string
	Dataset   parser.Dataset
	Range     string
	StartTime time.Time
}

// LoadOrders 读取并组装订单
func (c *Coordinator) LoadOrders(ctx context.Context) (*parser.OrderBatch, error) {
	var batch *parser.OrderBatch
	err := c.run(ctx, parser.DatasetOrders, c.sheets.Orders, func(rows [][]string, previous *parser.ColumnSchema) buildResult {
		batch = parser.BuildOrders(rows, previous)
		return buildResult{schema: batch.Schema, warnings: batch.Warnings, rows: batch.Rows, entities: len(batch.Orders)}
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// LoadAffiliate 读取并去重联盟订单
func (c *Coordinator) LoadAffiliate(ctx context.Context) (*parser.AffiliateBatch, error) {
	var batch *parser.AffiliateBatch
	err := c.run(ctx, parser.DatasetAffiliate, c.sheets.Affiliate, func(rows [][]string, previous *parser.ColumnSchema) buildResult {
		batch = parser.BuildAffiliateOrders(rows, previous)
		return buildResult{schema: batch.Schema, warnings: batch.Warnings, rows: batch.Rows, entities: len(batch.Orders)}
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// LoadLedgers 读取提现/广告账
func (c *Coordinator) LoadLedgers(ctx context.Context) (*parser.LedgerBatch, error) {
	var batch *parser.LedgerBatch
	err := c.run(ctx, parser.DatasetLedger, c.sheets.Ledger, func(rows [][]string, previous *parser.ColumnSchema) buildResult {
		batch = parser.ParseLedgers(rows, previous)
		entities := len(batch.Ledgers.Withdrawals) + len(batch.Ledgers.Advertising)
		return buildResult{schema: batch.Schema, warnings: batch.Warnings, rows: batch.Rows, entities: entities}
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// FinanceInput 对账所需的订单与账本
type FinanceInput struct {
	Orders  *parser.OrderBatch
	Ledgers *parser.LedgerBatch
}

// Warnings 两个数据集的全部告警
func (f *FinanceInput) Warnings() []parser.Warning {
	out := make([]parser.Warning, 0, len(f.Orders.Warnings)+len(f.Ledgers.Warnings))
	out = append(out, f.Orders.Warnings...)
	return append(out, f.Ledgers.Warnings...)
}

// LoadFinance 并发读取订单与账本，任一失败即返回
func (c *Coordinator) LoadFinance(ctx context.Context) (*FinanceInput, error) {
	in := &FinanceInput{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		batch, err := c.LoadOrders(gctx)
		in.Orders = batch
		return err
	})
	g.Go(func() error {
		batch, err := c.LoadLedgers(gctx)
		in.Ledgers = batch
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// Refresh 清除指定数据集的缓存，未指定时清除全部
func (c *Coordinator) Refresh(ctx context.Context, datasets ...parser.Dataset) error {
	inv, ok := c.src.(Invalidator)
	if !ok {
		return nil
	}
	if len(datasets) == 0 {
		datasets = []parser.Dataset{parser.DatasetOrders, parser.DatasetAffiliate, parser.DatasetLedger}
	}
	ranges := make([]string, 0, len(datasets))
	for _, d := range datasets {
		if rng := c.sheetFor(d); rng != "" {
			ranges = append(ranges, rng)
		}
	}
	if err := inv.Invalidate(ctx, c.sheets.SourceID, ranges...); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	c.logger.Info("row cache invalidated", zap.Strings("ranges", ranges))
	return nil
}

func (c *Coordinator) sheetFor(d parser.Dataset) string {
	switch d {
	case parser.DatasetOrders:
		return c.sheets.Orders
	case parser.DatasetAffiliate:
		return c.sheets.Affiliate
	case parser.DatasetLedger:
		return c.sheets.Ledger
	default:
		return ""
	}
}

// run 取数失败原样返回（SourceUnavailableError），存储失败只记日志
//
// 源数据与上次成功记录的摘要相同时只重建结果，不再写导入日志和列映射。
func (c *Coordinator) run(ctx context.Context, dataset parser.Dataset, rng string, build func([][]string, *parser.ColumnSchema) buildResult) error {
	ic := &ImportContext{
		RunID:     uuid.NewString(),
		Dataset:   dataset,
		Range:     rng,
		StartTime: c.now(),
	}
	log := c.logger.With(
		zap.String("run_id", ic.RunID),
		zap.String("dataset", string(dataset)),
		zap.String("range", rng),
	)

	rows, err := c.fetch(ctx, rng)
	if err != nil {
		log.Error("fetch rows failed", zap.Error(err))
		c.forgetDigest(dataset)
		c.record(log, ic, buildResult{}, model.ImportFailed, err.Error())
		return err
	}

	previous, err := c.store.LoadSchema(dataset)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn("failed to load previous column schema", zap.Error(err))
	}

	res := build(rows, previous)
	if !c.swapDigest(dataset, rowsDigest(rows)) {
		log.Debug("source rows unchanged", zap.Int("rows", res.rows), zap.Int("warnings", len(res.warnings)))
		return nil
	}
	logWarnings(log, res.warnings)

	if res.schema != nil && res.schema.Len() > 0 {
		if err := c.store.SaveSchema(res.schema, ic.RunID); err != nil {
			log.Warn("failed to save column schema", zap.Error(err))
		}
	}

	c.record(log, ic, res, model.ImportSuccess, "")
	log.Info("dataset built",
		zap.Int("rows", res.rows),
		zap.Int("entities", res.entities),
		zap.Int("warnings", len(res.warnings)),
		zap.Duration("duration", c.now().Sub(ic.StartTime)),
	)
	return nil
}

// swapDigest 记录新摘要，返回是否与上次不同
func (c *Coordinator) swapDigest(dataset parser.Dataset, digest string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.digests[dataset] == digest {
		return false
	}
	c.digests[dataset] = digest
	return true
}

// forgetDigest 失败后下一次成功的构建总会被记录
func (c *Coordinator) forgetDigest(dataset parser.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.digests, dataset)
}

// rowsDigest 原始行的 sha256，单元格与行之间用不可见分隔符区分
func rowsDigest(rows [][]string) string {
	h := sha256.New()
	for _, row := range rows {
		for _, cell := range row {
			h.Write([]byte(cell))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Coordinator) fetch(ctx context.Context, rng string) ([][]string, error) {
	if c.sheets.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.sheets.FetchTimeout)
		defer cancel()
	}
	return c.src.FetchRows(ctx, c.sheets.SourceID, rng)
}

// record 写入一条完整的导入日志并裁剪该数据集的旧日志
func (c *Coordinator) record(log *zap.Logger, ic *ImportContext, res buildResult, status model.ImportStatus, msg string) {
	id, err := c.store.CreateImportLog(ic.RunID, string(ic.Dataset), c.sheets.SourceID, ic.Range, ic.StartTime)
	if err != nil {
		log.Warn("failed to create import log", zap.Error(err))
		return
	}
	if err := c.store.FinishImportLog(id, res.rows, res.entities, res.warnings, status, msg); err != nil {
		log.Warn("failed to finish import log", zap.Error(err))
	}
	if n, err := c.store.PruneImportLogs(string(ic.Dataset), importLogRetention); err != nil {
		log.Warn("failed to prune import logs", zap.Error(err))
	} else if n > 0 {
		log.Debug("old import logs pruned", zap.Int64("count", n))
	}
}

// logWarnings 日志级别与告警级别对应
func logWarnings(log *zap.Logger, warnings []parser.Warning) {
	for _, w := range warnings {
		fields := []zap.Field{
			zap.String("kind", string(w.Kind)),
			zap.String("field", w.Field),
			zap.Int("row", w.Row),
		}
		switch w.Severity {
		case parser.SeverityCritical:
			log.Error(w.Message, fields...)
		case parser.SeverityWarning:
			log.Warn(w.Message, fields...)
		default:
			log.Info(w.Message, fields...)
		}
	}
}

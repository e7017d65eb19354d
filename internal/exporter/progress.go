package exporter

// ExportStage 导出阶段
type ExportStage string

const (
	StagePrepare ExportStage = "prepare"
	StageOrders  ExportStage = "orders"
	StageDone    ExportStage = "done"
)

// progressStep 每写入多少个订单上报一次
const progressStep = 500

// ProgressEvent 导出进度，Written/Total 为已写入和待写入的订单数
type ProgressEvent struct {
	Stage   ExportStage
	Percent int
	Written int
	Total   int
}

// orderProgress 把订单写入进度换算为 0-90%，最后 10% 留给样式与收尾
type orderProgress struct {
	notify func(ProgressEvent)
	total  int
}

func newOrderProgress(notify func(ProgressEvent), total int) *orderProgress {
	return &orderProgress{notify: notify, total: total}
}

func (p *orderProgress) emit(stage ExportStage, percent, written int) {
	if p.notify == nil {
		return
	}
	p.notify(ProgressEvent{Stage: stage, Percent: percent, Written: written, Total: p.total})
}

func (p *orderProgress) prepare() {
	p.emit(StagePrepare, 0, 0)
}

// written 每 progressStep 个订单上报一次
func (p *orderProgress) written(n int) {
	if p.total == 0 || n%progressStep != 0 {
		return
	}
	p.emit(StageOrders, n*90/p.total, n)
}

func (p *orderProgress) done() {
	p.emit(StageDone, 100, p.total)
}

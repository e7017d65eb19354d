package model

import "time"

// ImportStatus 导入运行状态
type ImportStatus string

const (
	ImportRunning ImportStatus = "processing"
	ImportSuccess ImportStatus = "success"
	ImportFailed  ImportStatus = "failed"
)

// ImportLog 一次构建运行的记录
type ImportLog struct {
	ID           int64        `json:"id"`
	RunID        string       `json:"runId"`
	Dataset      string       `json:"dataset"`
	SourceID     string       `json:"sourceId"`
	Range        string       `json:"range"`
	RowCount     int          `json:"rowCount"`     // 不含表头
	EntityCount  int          `json:"entityCount"`  // 产出的订单/联盟订单/流水条数
	WarningCount int          `json:"warningCount"` // 各级别告警合计
	Status       ImportStatus `json:"status"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	StartedAt    time.Time    `json:"startedAt"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}

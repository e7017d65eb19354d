package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTarget 月度收入目标
type MonthlyTarget struct {
	MonthlyTarget decimal.Decimal `json:"monthlyTarget"`
	LastUpdated   *time.Time      `json:"lastUpdated"` // 从未设置时为空
	UpdatedBy     string          `json:"updatedBy"`
}

// Package source 表格数据源：Google Sheets、本地 xlsx/csv 以及行缓存
package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrSourceUnavailable 数据源不可用（网络、鉴权、表格不存在）
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceUnavailableError 携带数据源与范围的取数失败
type SourceUnavailableError struct {
	SourceID string
	Range    string
	Err      error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s range %q unavailable: %v", e.SourceID, e.Range, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrSourceUnavailable) 成立
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// Unavailable 包装底层错误
func Unavailable(sourceID, rng string, err error) error {
	return &SourceUnavailableError{SourceID: sourceID, Range: rng, Err: err}
}

// Source 表格数据源，返回的第一行为表头
type Source interface {
	FetchRows(ctx context.Context, sourceID, rng string) ([][]string, error)
}

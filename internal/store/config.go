package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/shopspring/decimal"
)

// monthlyTargetKey targets 表中月度目标的键
const monthlyTargetKey = "monthly"

// GetTarget 读取月度目标，未设置时返回零值目标
func (s *Store) GetTarget() (*model.MonthlyTarget, error) {
	var (
		amount    string
		updatedBy string
		updatedAt time.Time
	)
	err := s.db.QueryRow(
		"SELECT amount, updated_by, updated_at FROM targets WHERE key = ?", monthlyTargetKey,
	).Scan(&amount, &updatedBy, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.MonthlyTarget{MonthlyTarget: decimal.Zero}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored target %q: %w", amount, err)
	}
	return &model.MonthlyTarget{MonthlyTarget: value, LastUpdated: &updatedAt, UpdatedBy: updatedBy}, nil
}

// SetTarget 设置月度目标
func (s *Store) SetTarget(amount decimal.Decimal, updatedBy string) (*model.MonthlyTarget, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO targets (key, amount, updated_by, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET amount = ?, updated_by = ?, updated_at = ?
	`, monthlyTargetKey, amount.String(), updatedBy, now, amount.String(), updatedBy, now)
	if err != nil {
		return nil, fmt.Errorf("failed to set target: %w", err)
	}
	return &model.MonthlyTarget{MonthlyTarget: amount, LastUpdated: &now, UpdatedBy: updatedBy}, nil
}

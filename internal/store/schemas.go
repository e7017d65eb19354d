package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kidlost1412/shopchinh/internal/parser"
)

// SaveSchema 保存数据集最近一次的列映射
func (s *Store) SaveSchema(schema *parser.ColumnSchema, runID string) error {
	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode column schema: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO column_schemas (dataset, schema_json, run_id) VALUES (?, ?, ?)
		ON CONFLICT(dataset) DO UPDATE SET
			schema_json = excluded.schema_json,
			run_id = excluded.run_id,
			updated_at = CURRENT_TIMESTAMP
	`, string(schema.Dataset()), string(raw), runID)
	if err != nil {
		return fmt.Errorf("failed to save column schema: %w", err)
	}
	return nil
}

// LoadSchema 读取上一次的列映射，没有时返回 ErrNotFound
func (s *Store) LoadSchema(dataset parser.Dataset) (*parser.ColumnSchema, error) {
	var raw string
	err := s.db.QueryRow("SELECT schema_json FROM column_schemas WHERE dataset = ?", string(dataset)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load column schema: %w", err)
	}

	schema := &parser.ColumnSchema{}
	if err := json.Unmarshal([]byte(raw), schema); err != nil {
		return nil, fmt.Errorf("failed to decode column schema: %w", err)
	}
	return schema, nil
}

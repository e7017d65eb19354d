package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
)

// CreateImportLog 创建导入日志，返回 import_log_id
func (s *Store) CreateImportLog(runID, dataset, sourceID, rng string, startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (run_id, dataset, source_id, range_name, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, dataset, sourceID, rng, string(model.ImportRunning), startedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// FinishImportLog 完成导入日志并写入全部告警
func (s *Store) FinishImportLog(id int64, rowCount, entityCount int, warnings []parser.Warning, status model.ImportStatus, errorMessage string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE import_logs SET
			row_count = ?,
			entity_count = ?,
			warning_count = ?,
			status = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, rowCount, entityCount, len(warnings), string(status), errorMessage, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	stmt, err := tx.Prepare(`
		INSERT INTO import_warnings (import_log_id, kind, severity, field, row_number, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare warning insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range warnings {
		if _, err := stmt.Exec(id, string(w.Kind), string(w.Severity), w.Field, w.Row, w.Message); err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import log: %w", err)
	}
	return nil
}

// PruneImportLogs 只保留数据集最近 keep 条导入日志及其告警，返回删除的日志条数
func (s *Store) PruneImportLogs(dataset string, keep int) (int64, error) {
	if keep < 1 {
		return 0, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM import_logs
		WHERE dataset = ? AND id NOT IN (
			SELECT id FROM import_logs WHERE dataset = ? ORDER BY id DESC LIMIT ?
		)
	`, dataset, dataset, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune import logs: %w", err)
	}
	removed, _ := res.RowsAffected()

	if removed > 0 {
		if _, err := tx.Exec(`
			DELETE FROM import_warnings
			WHERE import_log_id NOT IN (SELECT id FROM import_logs)
		`); err != nil {
			return 0, fmt.Errorf("failed to prune import warnings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}
	return removed, nil
}

// ListImportLogs 最近的导入日志，dataset 为空时不过滤
func (s *Store) ListImportLogs(dataset string, limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, run_id, dataset, source_id, range_name, row_count, entity_count,
			warning_count, status, error_message, started_at, completed_at
		FROM import_logs`
	args := []interface{}{}
	if dataset != "" {
		query += " WHERE dataset = ?"
		args = append(args, dataset)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	logs := []model.ImportLog{}
	for rows.Next() {
		var (
			l         model.ImportLog
			status    string
			completed sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.RunID, &l.Dataset, &l.SourceID, &l.Range, &l.RowCount, &l.EntityCount,
			&l.WarningCount, &status, &l.ErrorMessage, &l.StartedAt, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		l.Status = model.ImportStatus(status)
		if completed.Valid {
			t := completed.Time
			l.CompletedAt = &t
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListImportWarnings 某次导入的告警，按写入顺序
func (s *Store) ListImportWarnings(importLogID int64) ([]parser.Warning, error) {
	rows, err := s.db.Query(`
		SELECT kind, severity, field, row_number, message
		FROM import_warnings WHERE import_log_id = ? ORDER BY id
	`, importLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query import warnings: %w", err)
	}
	defer rows.Close()

	warnings := []parser.Warning{}
	for rows.Next() {
		var w parser.Warning
		var kind, severity string
		if err := rows.Scan(&kind, &severity, &w.Field, &w.Row, &w.Message); err != nil {
			return nil, fmt.Errorf("failed to scan import warning: %w", err)
		}
		w.Kind = parser.WarningKind(kind)
		w.Severity = parser.Severity(severity)
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

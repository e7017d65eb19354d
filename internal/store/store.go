// Package store 本地 SQLite：各数据集的列映射、导入日志与告警、月度目标
//
// 订单、联盟订单和流水本身不落库，每次请求都从数据源重建。
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("not found")

// sqliteParams 外键级联删除告警；WAL 让健康检查与导入写入互不阻塞
const sqliteParams = "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// Store 列映射、导入日志与目标的持久化
type Store struct {
	db *sql.DB
}

// New 打开（必要时创建）数据库文件并执行建表
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+sqliteParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// 导入日志和告警在同一事务中写入，单连接避免 SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate 建表语句均为 IF NOT EXISTS，可重复执行
func (s *Store) migrate() error {
	ddl, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(ddl)); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close 关闭数据库
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping 供 /api/health 使用
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

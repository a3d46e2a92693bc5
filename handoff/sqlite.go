package handoff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite 将槽保存在本地 SQLite 文件中，跨进程交接时使用。
type SQLite struct {
	conn *sql.DB
}

var _ Slots = (*SQLite)(nil)

// OpenSQLite 打开（或创建）path 处的槽数据库。
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建槽数据库目录失败: %w", err)
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("打开槽数据库失败: %w", err)
	}
	// 单写者，避免 SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	s := &SQLite{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("初始化槽数据库失败: %w", err)
	}
	return s, nil
}

// Close 关闭数据库连接。
func (s *SQLite) Close() error { return s.conn.Close() }

func (s *SQLite) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		written_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Put 写入 key，覆盖尚未被读取的旧值。
func (s *SQLite) Put(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, written_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("写入槽 %s 失败: %w", key, err)
	}
	return nil
}

// Take 用 DELETE ... RETURNING 在一条语句内读取并删除 key。
func (s *SQLite) Take(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `DELETE FROM slots WHERE key = ? RETURNING value`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取槽 %s 失败: %w", key, err)
	}
	return value, true, nil
}

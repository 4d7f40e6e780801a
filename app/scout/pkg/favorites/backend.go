package favorites

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// MemoryBackend 进程内后端
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend 创建进程内后端
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (b *MemoryBackend) Read(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
	return nil
}

// FileBackend 每个键对应目录下的一个 <key>.json 文件
type FileBackend struct {
	dir string
}

// NewFileBackend 创建文件后端，目录不存在时自动创建
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating favorites directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write 先写临时文件再重命名，避免写一半的文件
func (b *FileBackend) Write(key string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), b.path(key))
}

// SQLiteBackend 基于 SQLite 的键值后端
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite 打开（或创建）SQLite 数据库。
// 传入 ":memory:" 使用内存数据库（用于测试）。
func OpenSQLite(path string) (*SQLiteBackend, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// 单连接，避免 "database is locked"，也保证内存库只有一份
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Read(key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *SQLiteBackend) Write(key string, data []byte) error {
	_, err := b.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, data)
	return err
}

// NewBackend 根据配置创建后端，返回释放函数
func NewBackend(kind, path string) (Backend, func(), error) {
	switch kind {
	case "", "file":
		if path == "" {
			path = "data"
		}
		b, err := NewFileBackend(path)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	case "sqlite":
		if path == "" {
			path = filepath.Join("data", "favorites.db")
		}
		b, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	case "memory":
		return NewMemoryBackend(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown favorites backend: %s", kind)
	}
}

package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
)

// Data 账户等服务自有数据。db 为 nil 表示数据库不可用，
// 此时账户功能关闭，看板照常工作。
type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Warn("database not configured, accounts disabled")
		return &Data{}, func() {}, nil
	}

	db, err := open(c.Database)
	if err != nil {
		helper.Warnf("database unavailable, accounts disabled: %v", err)
		return &Data{}, func() {}, nil
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

func open(c *conf.Database) (*sql.DB, error) {
	driver := c.Driver
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, c.Source)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// users 表
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init users table: %w", err)
	}
	return db, nil
}

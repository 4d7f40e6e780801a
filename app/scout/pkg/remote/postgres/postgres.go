package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
)

const providerName = "postgres"

// Storage 基于 Postgres 的痛点数据源
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements remote.Querier
var _ remote.Querier = (*Storage)(nil)

// DSN 根据配置拼接连接串
func DSN(cfg config.DBConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// NewStorage 打开数据库连接
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// 启动时连不上只告警，保留连接池，之后每次查询都会重试
	if err := db.Ping(); err != nil {
		logger.Log.Warnf("数据库暂不可用 (%s:%d): %v", cfg.Host, cfg.Port, err)
	}
	return &Storage{db: db}, nil
}

// NewStorageWithDB 复用已有连接
func NewStorageWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// escapeLike 转义 LIKE 通配符，使过滤词按字面匹配
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildQuery 生成查询语句与参数
func buildQuery(q remote.Query) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT id::text, industry, title, intensity, description, reasoning, statistic, solution_idea, swot, created_at FROM pain_points")

	var args []any
	if patterns := q.Patterns(); patterns != nil {
		sb.WriteString(" WHERE industry ILIKE $1 OR industry ILIKE $2")
		for _, p := range patterns {
			args = append(args, "%"+escapeLike(p)+"%")
		}
	}
	args = append(args, q.MaxRows())
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	return sb.String(), args
}

// Query 实现 remote.Querier
func (s *Storage) Query(ctx context.Context, q remote.Query) ([]model.PainPoint, error) {
	query, args := buildQuery(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: err}
	}
	defer rows.Close()

	var out []model.PainPoint
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, &remote.QueryError{Provider: providerName, Err: err}
		}
		out = append(out, remote.Normalize(p))
	}
	if err := rows.Err(); err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: err}
	}
	if len(out) == 0 {
		return nil, &remote.QueryError{Provider: providerName, Err: remote.ErrNoRows}
	}
	return out, nil
}

func scanRow(rows *sql.Rows) (model.PainPoint, error) {
	var (
		id, industry, title, intensity                  sql.NullString
		description, reasoning, statistic, solutionIdea sql.NullString
		swot                                            []byte
		createdAt                                       sql.NullTime
	)
	if err := rows.Scan(&id, &industry, &title, &intensity, &description,
		&reasoning, &statistic, &solutionIdea, &swot, &createdAt); err != nil {
		return model.PainPoint{}, err
	}

	p := model.PainPoint{
		ID:           id.String,
		Industry:     industry.String,
		Title:        title.String,
		Intensity:    model.Intensity(intensity.String),
		Description:  description.String,
		Reasoning:    reasoning.String,
		Statistic:    statistic.String,
		SolutionIdea: solutionIdea.String,
	}
	p.SWOT = remote.DecodeSWOT(swot, p.ID)
	if createdAt.Valid {
		t := createdAt.Time
		p.CreatedAt = &t
	}
	return p, nil
}

// InitSchema 创建 pain_points 表
func (s *Storage) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pain_points (
			id SERIAL PRIMARY KEY,
			industry TEXT NOT NULL,
			title TEXT NOT NULL,
			intensity TEXT,
			description TEXT,
			reasoning TEXT,
			statistic TEXT,
			solution_idea TEXT,
			swot JSONB,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to init pain_points table: %w", err)
	}
	return nil
}

// Insert 在一个事务中批量写入痛点记录，id 由数据库分配
func (s *Storage) Insert(ctx context.Context, points []model.PainPoint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pain_points (industry, title, intensity, description, reasoning, statistic, solution_idea, swot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: %v", err, rerr)
		}
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range points {
		// lib/pq 会把 []byte 编码为 bytea，jsonb 列需要传字符串
		var swot any
		if p.SWOT != nil {
			b, err := json.Marshal(p.SWOT)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("encode swot: %w", err)
			}
			swot = string(b)
		}
		createdAt := now
		if p.CreatedAt != nil {
			createdAt = *p.CreatedAt
		}
		if _, err := stmt.ExecContext(ctx, p.Industry, p.Title, string(p.Intensity), p.Description,
			p.Reasoning, p.Statistic, p.SolutionIdea, swot, createdAt); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}

	return tx.Commit()
}

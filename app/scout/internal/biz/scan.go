package biz

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/engine"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
)

// ScanFailedMessage 扫描故障时看板展示的提示
const ScanFailedMessage = "Intelligence scan failed. Re-connecting to servers..."

// Sectors 预置的行业筛选项，"All" 表示不过滤
var Sectors = []string{
	remote.SectorAll,
	"Legal",
	"Healthcare",
	"Logistics",
	"Real Estate",
	"E-commerce",
	"FinTech",
	"Sports",
	"EdTech",
	"Manufacturing",
	"AgriTech",
}

// Scanner 扫描引擎
type Scanner interface {
	Scan(ctx context.Context, opts engine.ScanOptions) (*engine.Outcome, error)
}

// Board 看板快照
type Board struct {
	Points    []model.PainPoint
	Sector    string
	Source    model.Source
	Scanning  bool
	Error     string
	ScanID    string
	UpdatedAt time.Time
}

// ScanUseCase 持有当前看板，串起扫描与展示
type ScanUseCase struct {
	scanner Scanner
	log     *log.Helper

	mu       sync.Mutex
	board    Board
	inflight int
}

func NewScanUseCase(scanner Scanner, logger log.Logger) *ScanUseCase {
	return &ScanUseCase{
		scanner: scanner,
		log:     log.NewHelper(logger),
	}
}

// Scan 触发一次扫描并等待其结束。扫描不随请求取消，
// 多个扫描重叠时以最后结束的为准。故障时保留上一次的记录。
func (uc *ScanUseCase) Scan(ctx context.Context, sector string) (*Board, error) {
	uc.mu.Lock()
	uc.inflight++
	uc.board.Scanning = true
	uc.board.Error = ""
	uc.board.Sector = remote.NormalizeSector(sector)
	uc.mu.Unlock()

	out, err := uc.scanner.Scan(context.WithoutCancel(ctx), engine.ScanOptions{Sector: sector})

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.inflight--
	uc.board.Scanning = uc.inflight > 0
	uc.board.UpdatedAt = time.Now()
	if err != nil {
		uc.log.Errorf("scan failed: %v", err)
		uc.board.Error = ScanFailedMessage
		return uc.snapshot(), err
	}
	uc.board.Points = model.ClonePoints(out.Points)
	uc.board.Sector = out.Sector
	uc.board.Source = out.Source
	uc.board.ScanID = out.ScanID
	return uc.snapshot(), nil
}

// Board 返回当前看板
func (uc *ScanUseCase) Board() *Board {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot()
}

func (uc *ScanUseCase) snapshot() *Board {
	b := uc.board
	b.Points = model.ClonePoints(uc.board.Points)
	return &b
}

package biz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/engine"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

// mockScanner 按顺序返回预设结果
type mockScanner struct {
	mu      sync.Mutex
	results []scanResult
	sectors []string
	ctxErrs []error
}

type scanResult struct {
	out *engine.Outcome
	err error
}

func (m *mockScanner) Scan(ctx context.Context, opts engine.ScanOptions) (*engine.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sectors = append(m.sectors, opts.Sector)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	r := m.results[0]
	m.results = m.results[1:]
	return r.out, r.err
}

func outcome(source model.Source, ids ...string) *engine.Outcome {
	points := make([]model.PainPoint, 0, len(ids))
	for _, id := range ids {
		points = append(points, model.PainPoint{ID: id, Title: "t" + id})
	}
	return &engine.Outcome{ScanID: "scan-" + ids[0], Source: source, Points: points}
}

func TestScanUseCase_ReplacesBoard(t *testing.T) {
	sc := &mockScanner{results: []scanResult{
		{out: outcome(model.SourceStaticSeed, "1", "2")},
		{out: outcome(model.SourceRemoteStore, "9")},
	}}
	uc := NewScanUseCase(sc, log.DefaultLogger)

	b, err := uc.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceStaticSeed, b.Source)
	assert.Len(t, b.Points, 2)
	assert.False(t, b.Scanning)

	b, err = uc.Scan(context.Background(), "Legal")
	require.NoError(t, err)
	assert.Equal(t, model.SourceRemoteStore, b.Source)
	require.Len(t, b.Points, 1)
	assert.Equal(t, "9", b.Points[0].ID)
	assert.Equal(t, []string{"", "Legal"}, sc.sectors)
}

func TestScanUseCase_FaultKeepsPoints(t *testing.T) {
	sc := &mockScanner{results: []scanResult{
		{out: outcome(model.SourceGenerativeAI, "1")},
		{err: &engine.Fault{ScanID: "x", Err: errors.New("boom")}},
		{out: outcome(model.SourceStaticSeed, "2")},
	}}
	uc := NewScanUseCase(sc, log.DefaultLogger)
	ctx := context.Background()

	_, err := uc.Scan(ctx, "")
	require.NoError(t, err)

	b, err := uc.Scan(ctx, " Legal ")
	var fault *engine.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, ScanFailedMessage, b.Error)
	// 选中的行业即使失败也会记录
	assert.Equal(t, "Legal", b.Sector)
	require.Len(t, b.Points, 1)
	assert.Equal(t, "1", b.Points[0].ID)
	assert.Equal(t, model.SourceGenerativeAI, b.Source)

	// 下一次成功扫描清除故障提示
	b, err = uc.Scan(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, b.Error)
	assert.Equal(t, "2", b.Points[0].ID)
}

func TestScanUseCase_IgnoresCallerCancellation(t *testing.T) {
	sc := &mockScanner{results: []scanResult{{out: outcome(model.SourceStaticSeed, "1")}}}
	uc := NewScanUseCase(sc, log.DefaultLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.Scan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []error{nil}, sc.ctxErrs)
}

func TestScanUseCase_BoardIsSnapshot(t *testing.T) {
	sc := &mockScanner{results: []scanResult{{out: outcome(model.SourceStaticSeed, "1")}}}
	uc := NewScanUseCase(sc, log.DefaultLogger)
	_, err := uc.Scan(context.Background(), "")
	require.NoError(t, err)

	b := uc.Board()
	b.Points[0].Title = "mutated"
	assert.Equal(t, "t1", uc.Board().Points[0].Title)
}

func TestScanUseCase_EmptyBoard(t *testing.T) {
	uc := NewScanUseCase(&mockScanner{}, log.DefaultLogger)
	b := uc.Board()
	assert.Empty(t, b.Points)
	assert.False(t, b.Scanning)
	assert.Empty(t, b.Error)
}

// blockingScanner 每个行业的扫描阻塞到对应 release 通道收到结果
type blockingScanner struct {
	started chan string
	release map[string]chan *engine.Outcome
}

func (b *blockingScanner) Scan(ctx context.Context, opts engine.ScanOptions) (*engine.Outcome, error) {
	b.started <- opts.Sector
	return <-b.release[opts.Sector], nil
}

func TestScanUseCase_OverlappingScansLastResolvedWins(t *testing.T) {
	sc := &blockingScanner{
		started: make(chan string, 2),
		release: map[string]chan *engine.Outcome{
			"Legal":  make(chan *engine.Outcome),
			"Sports": make(chan *engine.Outcome),
		},
	}
	uc := NewScanUseCase(sc, log.DefaultLogger)

	var wg sync.WaitGroup
	for _, sector := range []string{"Legal", "Sports"} {
		wg.Add(1)
		go func(sector string) {
			defer wg.Done()
			_, _ = uc.Scan(context.Background(), sector)
		}(sector)
		<-sc.started
	}
	assert.True(t, uc.Board().Scanning)

	// 后发起的先返回
	sports := outcome(model.SourceRemoteStore, "s1")
	sports.Sector = "Sports"
	sc.release["Sports"] <- sports
	require.Eventually(t, func() bool { return uc.Board().ScanID == "scan-s1" }, time.Second, 5*time.Millisecond)
	b := uc.Board()
	assert.True(t, b.Scanning, "the Legal scan is still running")
	assert.Equal(t, "s1", b.Points[0].ID)

	legal := outcome(model.SourceGenerativeAI, "l1")
	legal.Sector = "Legal"
	sc.release["Legal"] <- legal
	wg.Wait()

	b = uc.Board()
	assert.False(t, b.Scanning)
	assert.Equal(t, "scan-l1", b.ScanID)
	assert.Equal(t, "Legal", b.Sector)
	assert.Equal(t, model.SourceGenerativeAI, b.Source)
	require.Len(t, b.Points, 1)
	assert.Equal(t, "l1", b.Points[0].ID)
}

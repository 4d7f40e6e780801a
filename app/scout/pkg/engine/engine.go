package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative"
	genfactory "github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative/factory"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
	remotefactory "github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote/factory"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/seed"
)

// ResultSize 每次扫描最多展示的记录数
const ResultSize = 5

// State 扫描状态机的状态
type State int

const (
	StateIdle State = iota
	StateScanning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome 一次成功扫描的结果
type Outcome struct {
	ScanID string
	// Sector 本次生效的过滤词，空表示未过滤
	Sector string
	Source model.Source
	Points []model.PainPoint
}

// Fault 三级数据源之外的编排故障，是 Scan 唯一会返回的错误
type Fault struct {
	ScanID string
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("scan %s failed: %v", f.ScanID, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// ErrNoResults 兜底后仍然没有任何记录
var ErrNoResults = errors.New("no records produced by any tier")

// Engine 数据获取编排引擎：远程数据库 → 生成式 AI → 内置种子数据
type Engine struct {
	querier   remote.Querier
	generator generative.Generator
	pacing    time.Duration
	seed      func(n int) ([]model.PainPoint, error)

	mu  sync.Mutex // 保护 rng
	rng *rand.Rand
}

// Option 引擎选项
type Option func(*Engine)

// WithRand 注入随机源，用于可复现的抽样
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithPacing 设置结果展示前的固定延迟，0 表示不延迟
func WithPacing(d time.Duration) Option {
	return func(e *Engine) { e.pacing = d }
}

// WithSeed 替换第三级的种子数据来源
func WithSeed(fn func(n int) ([]model.PainPoint, error)) Option {
	return func(e *Engine) { e.seed = fn }
}

// New 创建引擎实例，querier 或 generator 为 nil 时对应的一级视为不可用
func New(querier remote.Querier, generator generative.Generator, opts ...Option) *Engine {
	e := &Engine{
		querier:   querier,
		generator: generator,
		pacing:    config.DefaultPacing,
		seed:      seed.First,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngine 根据配置创建引擎及其数据源
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, func(), error) {
	querier, cleanup, err := remotefactory.NewQuerier(cfg.Remote)
	if err != nil {
		// 远程数据源不可用时仍可依靠后两级
		logger.Log.Errorf("远程数据源初始化失败，将跳过第一级: %v", err)
		querier, cleanup = nil, func() {}
	}

	generator, err := genfactory.NewGenerator(ctx, cfg.Generative)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("生成式数据源初始化失败: %w", err)
	}

	return New(querier, generator, WithPacing(cfg.Pacing())), cleanup, nil
}

// ScanOptions 扫描选项
type ScanOptions struct {
	// Sector 行业/细分领域过滤，空或 "All" 表示不过滤
	Sector string
	// StateCallback 状态变化回调，source 仅在 StateSucceeded 时有值
	StateCallback func(state State, source model.Source)
}

// Scan 执行一次扫描。各级数据源的失败只记录日志并降级，
// 只有编排本身的故障才会以 *Fault 返回。
func (e *Engine) Scan(ctx context.Context, opts ScanOptions) (out *Outcome, err error) {
	scanID := uuid.NewString()
	sector := remote.NormalizeSector(opts.Sector)
	notify := func(s State, src model.Source) {
		if opts.StateCallback != nil {
			opts.StateCallback(s, src)
		}
	}
	log := logger.Log.WithFields(logrus.Fields{"scan_id": scanID, "sector": sector})

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &Fault{ScanID: scanID, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			log.Errorf("扫描失败: %v", err)
			notify(StateFailed, "")
		}
	}()

	notify(StateIdle, "")
	notify(StateScanning, "")

	points, source, err := e.acquire(ctx, sector, log)
	if err != nil {
		return nil, &Fault{ScanID: scanID, Err: err}
	}
	if len(points) == 0 {
		return nil, &Fault{ScanID: scanID, Err: ErrNoResults}
	}

	if err := e.pace(ctx); err != nil {
		return nil, &Fault{ScanID: scanID, Err: err}
	}

	log.Infof("扫描完成，来源 [%s]，共 %d 条", source, len(points))
	notify(StateSucceeded, source)
	return &Outcome{
		ScanID: scanID,
		Sector: sector,
		Source: source,
		Points: points,
	}, nil
}

// acquire 依次尝试三级数据源
func (e *Engine) acquire(ctx context.Context, sector string, log *logrus.Entry) ([]model.PainPoint, model.Source, error) {
	// 第一级：远程数据库
	if e.querier != nil {
		pool, err := e.querier.Query(ctx, remote.Query{Sector: sector, Limit: remote.PoolSize})
		if err == nil && len(pool) == 0 {
			err = &remote.QueryError{Provider: "unknown", Err: remote.ErrNoRows}
		}
		if err == nil {
			return e.sample(pool, ResultSize), model.SourceRemoteStore, nil
		}
		log.Warnf("远程数据源不可用，切换到生成式 AI: %v", err)
	} else {
		log.Debug("未配置远程数据源")
	}

	// 第二级：生成式 AI
	if e.generator != nil {
		points, err := e.generator.Generate(ctx, sector)
		if err == nil && len(points) == 0 {
			err = &generative.Error{Provider: "unknown", Err: generative.ErrEmptyResponse}
		}
		if err == nil {
			if len(points) > ResultSize {
				points = points[:ResultSize]
			}
			return points, model.SourceGenerativeAI, nil
		}
		log.Warnf("生成式 AI 失败，使用本地种子数据: %v", err)
	} else {
		log.Debug("未配置生成式数据源")
	}

	// 第三级：内置种子数据，不按行业过滤
	points, err := e.seed(seed.FallbackSize)
	if err != nil {
		return nil, "", fmt.Errorf("load seed dataset: %w", err)
	}
	return points, model.SourceStaticSeed, nil
}

// sample 从候选池中均匀选取 k 个不同位置的记录（部分 Fisher-Yates 洗牌）
func (e *Engine) sample(pool []model.PainPoint, k int) []model.PainPoint {
	n := len(pool)
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	e.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + e.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	e.mu.Unlock()

	out := make([]model.PainPoint, k)
	for i := 0; i < k; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// pace 固定展示延迟，可被 ctx 取消
func (e *Engine) pace(ctx context.Context) error {
	if e.pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(e.pacing)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pacing interrupted: %w", ctx.Err())
	}
}

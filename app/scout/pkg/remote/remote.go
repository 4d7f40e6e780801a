package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

// PoolSize 单次查询最多取回的候选记录数
const PoolSize = 40

// Columns pain_points 表中需要读取的列
var Columns = []string{
	"id", "industry", "title", "intensity", "description",
	"reasoning", "statistic", "solution_idea", "swot", "created_at",
}

// ErrNoRows 查询成功但没有任何匹配记录
var ErrNoRows = errors.New("remote store returned no rows")

// Querier 定义远程数据源的通用查询接口
type Querier interface {
	Query(ctx context.Context, q Query) ([]model.PainPoint, error)
}

// Query 查询参数
type Query struct {
	// Sector 行业/细分领域过滤，空表示不过滤
	Sector string
	// Limit 最大返回条数，<=0 时使用 PoolSize
	Limit int
}

// Patterns 返回行业过滤的两个匹配词：完整过滤词与其首个空白分隔词。
// 未设置过滤时返回 nil。
func (q Query) Patterns() []string {
	sector := NormalizeSector(q.Sector)
	if sector == "" {
		return nil
	}
	first := strings.Fields(sector)[0]
	return []string{sector, first}
}

// MaxRows 返回有效的行数上限
func (q Query) MaxRows() int {
	if q.Limit <= 0 || q.Limit > PoolSize {
		return PoolSize
	}
	return q.Limit
}

// SectorAll 表示不按行业过滤
const SectorAll = "All"

// NormalizeSector 去除首尾空白，"All" 视为不过滤
func NormalizeSector(sector string) string {
	s := strings.TrimSpace(sector)
	if strings.EqualFold(s, SectorAll) {
		return ""
	}
	return s
}

// Matches 判断行业是否命中过滤词（大小写不敏感的部分匹配）
func (q Query) Matches(industry string) bool {
	patterns := q.Patterns()
	if patterns == nil {
		return true
	}
	lower := strings.ToLower(industry)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// QueryError 远程查询失败（网络、鉴权、SQL 错误或空结果）
type QueryError struct {
	Provider string
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("remote query via %s: %v", e.Provider, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// 缺省字段的兜底取值
const (
	DefaultIntensity    = model.IntensityHighMargin
	DefaultReasoning    = "Identified workflow friction."
	DefaultStatistic    = "Significant market gap observed."
	DefaultSolutionIdea = "Develop a targeted automation solution."
)

// DefaultSWOT 返回缺省的 SWOT 分析
func DefaultSWOT() *model.SWOT {
	return &model.SWOT{
		Strengths:     []string{"Early Mover Advantage"},
		Weaknesses:    []string{"Integration Costs"},
		Opportunities: []string{"Market Expansion"},
		Threats:       []string{"Incumbent Response"},
	}
}

// DecodeSWOT 解析单行的 swot 列。空值返回 nil；
// 结构不符时记录告警并返回 nil，交给 Normalize 补默认值，不影响同批其他记录。
func DecodeSWOT(raw []byte, id string) *model.SWOT {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var sw model.SWOT
	if err := json.Unmarshal(raw, &sw); err != nil {
		logger.Log.Warnf("记录 %s 的 swot 格式无效，使用默认值: %v", id, err)
		return nil
	}
	return &sw
}

// Normalize 为远程记录补齐缺失字段，返回新记录
func Normalize(p model.PainPoint) model.PainPoint {
	out := p.Clone()
	if strings.TrimSpace(string(out.Intensity)) == "" {
		out.Intensity = DefaultIntensity
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		out.Reasoning = DefaultReasoning
	}
	if strings.TrimSpace(out.Statistic) == "" {
		out.Statistic = DefaultStatistic
	}
	if strings.TrimSpace(out.SolutionIdea) == "" {
		out.SolutionIdea = DefaultSolutionIdea
	}
	if out.SWOT == nil {
		out.SWOT = DefaultSWOT()
	}
	return out
}

// NormalizeAll 批量补齐
func NormalizeAll(points []model.PainPoint) []model.PainPoint {
	out := make([]model.PainPoint, len(points))
	for i, p := range points {
		out[i] = Normalize(p)
	}
	return out
}

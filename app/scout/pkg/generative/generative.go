package generative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
)

// BatchSize 每次生成的记录数
const BatchSize = 5

var (
	// ErrEmptyResponse 模型没有返回任何内容
	ErrEmptyResponse = errors.New("generative model returned an empty response")
	// ErrSchema 返回内容不符合声明的输出结构
	ErrSchema = errors.New("generative response does not match the declared schema")
)

// Generator 生成式兜底数据源
type Generator interface {
	Generate(ctx context.Context, sector string) ([]model.PainPoint, error)
}

// Error 生成式请求失败（请求错误或解析/结构错误）
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generative request via %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Prompt 生成请求提示词，sector 为空时面向多个高价值行业
func Prompt(sector string) string {
	industryContext := "across various high-value industries like Finance, HR, Logistics, Education, or Manufacturing"
	if s := remote.NormalizeSector(sector); s != "" {
		industryContext = fmt.Sprintf("specifically for the %s industry", s)
	}
	return fmt.Sprintf("Generate %d high-value, niche professional pain points %s suitable for Micro-SaaS development. Use the Greg Isenberg 'Unbundling' methodology.",
		BatchSize, industryContext)
}

// RequiredFields 每条记录必须包含的字段
var RequiredFields = []string{"id", "industry", "title", "intensity", "description", "reasoning", "statistic", "solution_idea", "swot"}

// RequiredSWOTFields swot 中必须包含的列表
var RequiredSWOTFields = []string{"strengths", "weaknesses", "opportunities", "threats"}

// IntensityHint 强度字段的取值说明
const IntensityHint = "One of: 'Critical', 'Systemic', 'High Margin', 'Low Efficiency', 'Regulatory'"

// SchemaJSON 以 JSON Schema 描述输出结构，供不支持原生结构化输出的模型放入提示词
const SchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": "string"},
      "industry": {"type": "string"},
      "title": {"type": "string"},
      "intensity": {"type": "string", "description": "One of: 'Critical', 'Systemic', 'High Margin', 'Low Efficiency', 'Regulatory'"},
      "description": {"type": "string"},
      "reasoning": {"type": "string"},
      "statistic": {"type": "string"},
      "solution_idea": {"type": "string"},
      "swot": {
        "type": "object",
        "properties": {
          "strengths": {"type": "array", "items": {"type": "string"}},
          "weaknesses": {"type": "array", "items": {"type": "string"}},
          "opportunities": {"type": "array", "items": {"type": "string"}},
          "threats": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["strengths", "weaknesses", "opportunities", "threats"]
      }
    },
    "required": ["id", "industry", "title", "intensity", "description", "reasoning", "statistic", "solution_idea", "swot"]
  }
}`

// ParseResponse 解析模型输出并按声明的结构校验。
// 允许外层包裹 markdown 代码块。
func ParseResponse(text string) ([]model.PainPoint, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil, ErrEmptyResponse
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyResponse
	}

	out := make([]model.PainPoint, 0, len(items))
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrSchema, i, err)
		}
		raw, _ := json.Marshal(item)
		var p model.PainPoint
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrSchema, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func validateItem(item map[string]json.RawMessage) error {
	for _, f := range RequiredFields {
		v, ok := item[f]
		if !ok || string(v) == "null" {
			return fmt.Errorf("missing field %q", f)
		}
		if f == "swot" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("field %q is not a string", f)
		}
	}

	var swot map[string]json.RawMessage
	if err := json.Unmarshal(item["swot"], &swot); err != nil {
		return fmt.Errorf("field \"swot\" is not an object")
	}
	for _, f := range RequiredSWOTFields {
		v, ok := swot[f]
		if !ok || string(v) == "null" {
			return fmt.Errorf("missing swot field %q", f)
		}
		var list []string
		if err := json.Unmarshal(v, &list); err != nil {
			return fmt.Errorf("swot field %q is not a string list", f)
		}
	}
	return nil
}

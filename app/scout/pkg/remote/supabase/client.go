package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
)

const (
	providerName = "supabase"
	table        = "pain_points"
)

// Client Supabase PostgREST 客户端
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Ensure Client implements remote.Querier
var _ remote.Querier = (*Client)(nil)

// NewClient 创建一个新的 Supabase 客户端。
// sb_publishable 前缀的密钥不是 Supabase 的 anon key，所有请求都会被拒绝。
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	if strings.HasPrefix(apiKey, "sb_publishable") {
		return nil, fmt.Errorf("supabase key looks like a publishable payment key, use the project's anon key")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  http.DefaultClient,
	}, nil
}

// row PostgREST 返回的单行，id 可能是数字也可能是字符串
type row struct {
	ID           json.RawMessage `json:"id"`
	Industry     *string         `json:"industry"`
	Title        *string         `json:"title"`
	Intensity    *string         `json:"intensity"`
	Description  *string         `json:"description"`
	Reasoning    *string         `json:"reasoning"`
	Statistic    *string         `json:"statistic"`
	SolutionIdea *string         `json:"solution_idea"`
	SWOT         json.RawMessage `json:"swot"`
	CreatedAt    *string         `json:"created_at"`
}

// quote 为 or 过滤中的取值加双引号，避免逗号和括号破坏语法
func quote(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}

// buildURL 生成 REST 查询地址
func (c *Client) buildURL(q remote.Query) string {
	v := url.Values{}
	v.Set("select", strings.Join(remote.Columns, ","))
	if patterns := q.Patterns(); patterns != nil {
		parts := make([]string, len(patterns))
		for i, p := range patterns {
			parts[i] = "industry.ilike." + quote("*"+p+"*")
		}
		v.Set("or", "("+strings.Join(parts, ",")+")")
	}
	v.Set("limit", strconv.Itoa(q.MaxRows()))
	return c.baseURL + "/rest/v1/" + table + "?" + v.Encode()
}

// Query 实现 remote.Querier
func (c *Client) Query(ctx context.Context, q remote.Query) ([]model.PainPoint, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(q), nil)
	if err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: fmt.Errorf("create request failed: %w", err)}
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: fmt.Errorf("read body failed: %w", err)}
	}
	if res.StatusCode != http.StatusOK {
		return nil, &remote.QueryError{Provider: providerName, Err: fmt.Errorf("supabase api error (status %d): %s", res.StatusCode, string(body))}
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &remote.QueryError{Provider: providerName, Err: fmt.Errorf("unmarshal response failed: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &remote.QueryError{Provider: providerName, Err: remote.ErrNoRows}
	}

	out := make([]model.PainPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, remote.Normalize(r.toModel()))
	}
	return out, nil
}

func (r row) toModel() model.PainPoint {
	id := idString(r.ID)
	p := model.PainPoint{
		ID:           id,
		Industry:     deref(r.Industry),
		Title:        deref(r.Title),
		Intensity:    model.Intensity(deref(r.Intensity)),
		Description:  deref(r.Description),
		Reasoning:    deref(r.Reasoning),
		Statistic:    deref(r.Statistic),
		SolutionIdea: deref(r.SolutionIdea),
		SWOT:         remote.DecodeSWOT(r.SWOT, id),
	}
	if r.CreatedAt != nil {
		if t, err := parseTime(*r.CreatedAt); err == nil {
			p.CreatedAt = &t
		}
	}
	return p
}

// idString 把数字或字符串 id 统一成字符串
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

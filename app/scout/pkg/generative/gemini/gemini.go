package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

const (
	providerName = "gemini"
	// DefaultModel 默认模型
	DefaultModel = "gemini-3-flash-preview"
)

// Client 使用 Gemini 结构化输出生成痛点
type Client struct {
	client *genai.Client
	model  string
}

// Ensure Client implements generative.Generator
var _ generative.Generator = (*Client)(nil)

// Options 客户端配置
type Options struct {
	APIKey string
	Model  string
	// BaseURL 覆盖 API 地址，主要用于测试
	BaseURL string
}

// NewClient 创建 Gemini 客户端
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, model: opts.Model}, nil
}

// ResponseSchema 声明的输出结构：对象数组，所有字段必填，swot 的四个列表必填
func ResponseSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	list := func() *genai.Schema { return &genai.Schema{Type: genai.TypeArray, Items: str()} }

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":       str(),
				"industry": str(),
				"title":    str(),
				"intensity": {
					Type:        genai.TypeString,
					Description: generative.IntensityHint,
				},
				"description":   str(),
				"reasoning":     str(),
				"statistic":     str(),
				"solution_idea": str(),
				"swot": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"strengths":     list(),
						"weaknesses":    list(),
						"opportunities": list(),
						"threats":       list(),
					},
					Required: generative.RequiredSWOTFields,
				},
			},
			Required: generative.RequiredFields,
		},
	}
}

// Generate 实现 generative.Generator
func (c *Client) Generate(ctx context.Context, sector string) ([]model.PainPoint, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(generative.Prompt(sector)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	)
	if err != nil {
		return nil, &generative.Error{Provider: providerName, Err: err}
	}

	text := resp.Text()
	points, err := generative.ParseResponse(text)
	if err != nil {
		logger.Log.Debugf("无法解析 Gemini 响应: %s", text)
		return nil, &generative.Error{Provider: providerName, Err: err}
	}
	return points, nil
}

package eino

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	dm "github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

const providerName = "openai"

// Client 通过 OpenAI 兼容协议生成痛点，输出结构写入提示词
type Client struct {
	chatModel model.BaseChatModel
}

// Ensure Client implements generative.Generator
var _ generative.Generator = (*Client)(nil)

// NewClient 初始化 LLM
func NewClient(ctx context.Context, baseURL, apiKey, modelName string) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &Client{chatModel: chatModel}, nil
}

// NewClientWithModel 使用已有的 ChatModel
func NewClientWithModel(cm model.BaseChatModel) *Client {
	return &Client{chatModel: cm}
}

// Messages 构造一次请求的消息
func Messages(sector string) []*schema.Message {
	prompt := fmt.Sprintf(`%s

请务必严格按照以下 JSON Schema 返回一个 JSON 数组，不要包含任何 markdown 标记：
%s`, generative.Prompt(sector), generative.SchemaJSON)

	return []*schema.Message{
		{Role: schema.System, Content: "你是一个 JSON 生成器。请只输出 JSON 字符串。"},
		{Role: schema.User, Content: prompt},
	}
}

// Generate 实现 generative.Generator，只请求一次，不做重试
func (c *Client) Generate(ctx context.Context, sector string) ([]dm.PainPoint, error) {
	resp, err := c.chatModel.Generate(ctx, Messages(sector))
	if err != nil {
		return nil, &generative.Error{Provider: providerName, Err: err}
	}
	if resp == nil {
		return nil, &generative.Error{Provider: providerName, Err: generative.ErrEmptyResponse}
	}

	points, err := generative.ParseResponse(resp.Content)
	if err != nil {
		logger.Log.Debugf("无法解析 LLM 响应: %s", resp.Content)
		return nil, &generative.Error{Provider: providerName, Err: err}
	}
	return points, nil
}

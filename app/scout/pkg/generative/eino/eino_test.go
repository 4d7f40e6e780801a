package eino

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative"
)

// mockChatModel 模拟 ChatModel
type mockChatModel struct {
	content string
	err     error
	got     []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.got = input
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestGenerate(t *testing.T) {
	cm := &mockChatModel{content: "```json\n[{\"id\":\"x1\",\"industry\":\"FinTech\",\"title\":\"t\",\"intensity\":\"Regulatory\",\"description\":\"d\",\"reasoning\":\"r\",\"statistic\":\"s\",\"solution_idea\":\"i\",\"swot\":{\"strengths\":[],\"weaknesses\":[],\"opportunities\":[],\"threats\":[]}}]\n```"}
	c := NewClientWithModel(cm)

	points, err := c.Generate(context.Background(), "FinTech")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "x1", points[0].ID)

	require.Len(t, cm.got, 2)
	assert.Equal(t, schema.System, cm.got[0].Role)
	assert.Contains(t, cm.got[1].Content, "specifically for the FinTech industry")
	assert.Contains(t, cm.got[1].Content, `"solution_idea"`)
}

func TestGenerate_Errors(t *testing.T) {
	boom := errors.New("429 too many requests")
	_, err := NewClientWithModel(&mockChatModel{err: boom}).Generate(context.Background(), "")
	assert.True(t, errors.Is(err, boom))

	_, err = NewClientWithModel(&mockChatModel{content: ""}).Generate(context.Background(), "")
	assert.True(t, errors.Is(err, generative.ErrEmptyResponse))

	_, err = NewClientWithModel(&mockChatModel{content: `[{"id":"1"}]`}).Generate(context.Background(), "")
	assert.True(t, errors.Is(err, generative.ErrSchema))
}

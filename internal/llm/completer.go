package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/topic_coverage/internal/conf"
)

// Completer 给定带角色的消息与最大输出 token 数，返回模型生成的文本
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message, maxTokens int) (string, error)
}

// ChatCompleter 基于 eino ChatModel 的 Completer 实现
type ChatCompleter struct {
	model       model.BaseChatModel
	temperature float32
}

var _ Completer = (*ChatCompleter)(nil)

// NewChatModel 初始化 OpenAI 兼容的 ChatModel (Groq)
func NewChatModel(ctx context.Context, c conf.LLM) (model.BaseChatModel, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Model:   c.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return chatModel, nil
}

// NewChatCompleter 创建 Completer
func NewChatCompleter(m model.BaseChatModel, temperature float32) *ChatCompleter {
	return &ChatCompleter{model: m, temperature: temperature}
}

// Complete 调用模型并返回去除首尾空白的回复
func (c *ChatCompleter) Complete(ctx context.Context, messages []*schema.Message, maxTokens int) (string, error) {
	resp, err := c.model.Generate(ctx, messages,
		model.WithMaxTokens(maxTokens),
		model.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil {
		return "", errors.New("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Content), nil
}

package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	c := &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
	if model != "" {
		c.model = anthropic.Model(model)
		c.modelName = model
	}
	return c
}

func (c *AnthropicClient) Name() string {
	return "anthropic"
}

func (c *AnthropicClient) WriteArticle(ctx context.Context, input ArticleInput) (*ArticleResult, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(input))),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return parseArticle(resp.Content[0].Text, c.modelName)
}

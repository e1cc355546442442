package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
	if model != "" {
		c.model = openai.ChatModel(model)
		c.modelName = model
	}
	return c
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) WriteArticle(ctx context.Context, input ArticleInput) (*ArticleResult, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(input)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return parseArticle(resp.Choices[0].Message.Content, c.modelName)
}

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	models    *genai.Models
	modelName string
}

func NewGeminiClient(apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiClient{models: client.Models, modelName: model}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

func (c *GeminiClient) WriteArticle(ctx context.Context, input ArticleInput) (*ArticleResult, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt(input)), config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no response from gemini")
	}

	return parseArticle(text, c.modelName)
}

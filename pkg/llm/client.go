package llm

import (
	"context"
	"time"
)

type ArticleInput struct {
	Word       string
	Number     int
	Date       time.Time
	Category   string
	Difficulty string
	Facts      []string
}

type ArticleResult struct {
	Title         string
	Content       string
	Excerpt       string
	Tags          []string
	PromptVersion string
	ModelUsed     string
}

type ArticleClient interface {
	WriteArticle(ctx context.Context, input ArticleInput) (*ArticleResult, error)
	Name() string
}

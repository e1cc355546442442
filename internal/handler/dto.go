package handler

import (
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

type ArticleResponse struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	PuzzleNumber   int      `json:"puzzle_number"`
	PuzzleDate     string   `json:"puzzle_date"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content,omitempty"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Difficulty     string   `json:"difficulty"`
	QualityScore   int      `json:"quality_score"`
	ReadingMinutes int      `json:"reading_minutes"`
	Version        int      `json:"version"`
	Views          int64    `json:"views"`
	Likes          int64    `json:"likes"`
	PublishedAt    string   `json:"published_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type CounterResponse struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

type GenerateRequest struct {
	Word  string `json:"word"`
	Date  string `json:"date"`
	Force bool   `json:"force"`
}

type WebhookRequest struct {
	Action string `json:"action"`
	Word   string `json:"word"`
	Date   string `json:"date"`
	Force  bool   `json:"force"`
}

type HintsResponse struct {
	Number int          `json:"number"`
	Date   string       `json:"date"`
	Level  int          `json:"level"`
	Hints  []model.Hint `json:"hints"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Scheduler string `json:"scheduler"`
	Time      string `json:"time"`
}

// toArticleResponse maps a stored article for the API. The body is only
// included when withContent is set, list endpoints leave it out.
func toArticleResponse(a model.Article, withContent bool) ArticleResponse {
	res := ArticleResponse{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		PuzzleNumber:   a.PuzzleNumber,
		PuzzleDate:     model.DateKey(a.PuzzleDate),
		Excerpt:        a.Excerpt,
		Category:       a.Metadata.Category,
		Tags:           a.Metadata.Tags,
		Difficulty:     a.Metadata.Difficulty,
		QualityScore:   a.Metadata.QualityScore,
		ReadingMinutes: a.Metadata.ReadingMinutes,
		Version:        a.Version,
		Views:          a.Views,
		Likes:          a.Likes,
		PublishedAt:    a.PublishedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	if withContent {
		res.Content = a.Content
	}
	return res
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toArticleResponse(a, false))
	}
	return res
}

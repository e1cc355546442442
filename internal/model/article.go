package model

import "time"

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

const (
	CategoryWordleHints  = "wordle-hints"
	CategoryWordleAnswer = "wordle-answer"
	CategoryWordAnalysis = "word-analysis"
)

// ArticleCategories is the set generated for every puzzle word, in generation order.
var ArticleCategories = []string{
	CategoryWordleHints,
	CategoryWordleAnswer,
	CategoryWordAnalysis,
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type ArticleMetadata struct {
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Difficulty     string   `json:"difficulty"`
	QualityScore   int      `json:"quality_score"`
	WordCount      int      `json:"word_count"`
	ReadingMinutes int      `json:"reading_minutes"`
	Writer         string   `json:"writer"`
}

type Article struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Word         string          `json:"word"`
	PuzzleNumber int             `json:"puzzle_number"`
	PuzzleDate   time.Time       `json:"puzzle_date"`
	Content      string          `json:"content"`
	Excerpt      string          `json:"excerpt"`
	Metadata     ArticleMetadata `json:"metadata"`
	Status       ArticleStatus   `json:"status"`
	PublishedAt  time.Time       `json:"published_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
	Views        int64           `json:"views"`
	Likes        int64           `json:"likes"`
}

// Clone returns a copy that shares no slices with a.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	c.Metadata.Tags = append([]string(nil), a.Metadata.Tags...)
	return &c
}

// DateKey is the puzzle date formatted the way it appears in slugs and cache keys.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

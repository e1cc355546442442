// Package article generates, stores and serves the per-word blog articles.
package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/repository"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/puzzle"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("article not found")
	ErrInvalidWord = errors.New("word must be five letters a-z")
)

// WordleProvider supplies the daily Wordle data articles are written about.
type WordleProvider interface {
	Today(ctx context.Context) (*model.WordleDailyData, error)
	ForDate(ctx context.Context, date time.Time) (*model.WordleDailyData, error)
}

type Option func(*Manager)

func WithWriter(w Writer) Option {
	return func(m *Manager) {
		if w != nil {
			m.writer = w
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

type Manager struct {
	store  repository.ArticleStore
	wordle WordleProvider
	writer Writer
	now    func() time.Time
	newID  func() string

	// genMu serializes generation so two callers cannot both create the
	// article for the same (word, date, category).
	genMu sync.Mutex
}

func NewManager(store repository.ArticleStore, wordle WordleProvider, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		wordle: wordle,
		writer: TemplateWriter{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type GenerateRequest struct {
	Word  string
	Date  time.Time
	Force bool
}

type GenerateResult struct {
	Word        string          `json:"word"`
	Number      int             `json:"number"`
	Date        string          `json:"date"`
	Created     int             `json:"created"`
	Regenerated int             `json:"regenerated"`
	Existing    int             `json:"existing"`
	Articles    []model.Article `json:"articles"`
}

// Generate builds the article set for req. Without a word the Wordle for
// req.Date (or today) is looked up first.
func (m *Manager) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	date := req.Date
	if date.IsZero() {
		date = m.now()
	}

	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		data, err := m.wordle.ForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("looking up wordle: %w", err)
		}
		return m.GenerateForWord(ctx, data, req.Force)
	}

	if !puzzle.IsWordleWord(word) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, req.Word)
	}

	day, err := puzzle.CheckDate(date, m.now())
	if err != nil {
		return nil, err
	}
	return m.GenerateForWord(ctx, &model.WordleDailyData{
		Word:      word,
		Number:    puzzle.WordleNumber(day),
		Date:      day,
		Source:    model.SourceManual,
		FetchedAt: m.now().UTC(),
	}, req.Force)
}

// GenerateForWord makes sure an article exists in every category for the
// word and date in data. Existing articles are returned untouched unless
// force is set, in which case they are rewritten in place.
func (m *Manager) GenerateForWord(ctx context.Context, data *model.WordleDailyData, force bool) (*GenerateResult, error) {
	word := strings.ToLower(data.Word)
	if !puzzle.IsWordleWord(word) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, data.Word)
	}
	day := puzzle.Day(data.Date)

	result := &GenerateResult{
		Word:   word,
		Number: data.Number,
		Date:   model.DateKey(day),
	}

	m.genMu.Lock()
	defer m.genMu.Unlock()

	for _, category := range model.ArticleCategories {
		existing, err := m.store.GetByWordDate(ctx, word, day, category)
		if err != nil {
			return nil, fmt.Errorf("looking up %s article: %w", category, err)
		}

		if existing != nil && !force {
			result.Existing++
			result.Articles = append(result.Articles, *existing)
			continue
		}

		a, err := m.write(ctx, existing, word, data.Number, day, category)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Regenerated++
		} else {
			result.Created++
		}
		result.Articles = append(result.Articles, *a)
	}

	slog.Info("article generation finished",
		"word", word, "date", result.Date,
		"created", result.Created, "regenerated", result.Regenerated, "existing", result.Existing)
	return result, nil
}

// write produces and saves one article. A non-nil existing article is
// rewritten under its own id and slug.
func (m *Manager) write(ctx context.Context, existing *model.Article, word string, number int, day time.Time, category string) (*model.Article, error) {
	difficulty := Difficulty(word)
	draft, err := m.writer.Write(ctx, Input{
		Word:       word,
		Number:     number,
		Date:       day,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("writing %s article: %w", category, err)
	}

	now := m.now().UTC()
	words := WordCount(draft.Content)
	tags := Tags(category, word, number, draft.Tags)

	a := &model.Article{
		ID:           m.newID(),
		Slug:         Slug(category, word, number, day),
		Title:        draft.Title,
		Word:         word,
		PuzzleNumber: number,
		PuzzleDate:   day,
		Content:      draft.Content,
		Excerpt:      Excerpt(draft.Excerpt),
		Metadata: model.ArticleMetadata{
			Category:       category,
			Tags:           tags,
			Difficulty:     difficulty,
			QualityScore:   QualityScore(&Draft{Title: draft.Title, Content: draft.Content, Excerpt: draft.Excerpt, Tags: tags}, word, category),
			WordCount:      words,
			ReadingMinutes: ReadingMinutes(words),
			Writer:         draft.Writer,
		},
		Status:      model.StatusPublished,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	if existing != nil {
		a.ID = existing.ID
		a.Slug = existing.Slug
		a.Status = existing.Status
		a.PublishedAt = existing.PublishedAt
		a.CreatedAt = existing.CreatedAt
		a.Version = existing.Version + 1
		a.Views = existing.Views
		a.Likes = existing.Likes
	}

	if err := m.store.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("saving %s article: %w", category, err)
	}
	return a, nil
}

// EnsureToday generates today's articles if they are missing and reports
// whether anything new was created.
func (m *Manager) EnsureToday(ctx context.Context) (bool, error) {
	data, err := m.wordle.Today(ctx)
	if err != nil {
		return false, fmt.Errorf("fetching today's wordle: %w", err)
	}

	res, err := m.GenerateForWord(ctx, data, false)
	if err != nil {
		return false, err
	}
	return res.Created > 0, nil
}

// Regenerate rewrites the article behind slug with fresh content.
func (m *Manager) Regenerate(ctx context.Context, slug string) (*model.Article, error) {
	m.genMu.Lock()
	defer m.genMu.Unlock()

	existing, err := m.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	return m.write(ctx, existing, existing.Word, existing.PuzzleNumber, existing.PuzzleDate, existing.Metadata.Category)
}

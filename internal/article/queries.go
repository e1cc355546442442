package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/repository"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListOptions struct {
	Category string
	Sort     repository.SortOrder
	Limit    int
	Offset   int
}

type Page struct {
	Articles []model.Article `json:"articles"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

type CategoryCount struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Stats struct {
	Total      int            `json:"total"`
	Published  int            `json:"published"`
	Archived   int            `json:"archived"`
	Views      int64          `json:"views"`
	Likes      int64          `json:"likes"`
	ByCategory map[string]int `json:"by_category"`
	ByWriter   map[string]int `json:"by_writer"`
	AvgQuality float64        `json:"avg_quality"`
	Latest     *model.Article `json:"latest,omitempty"`
}

var categoryNames = map[string]string{
	model.CategoryWordleHints:  "Wordle Hints",
	model.CategoryWordleAnswer: "Wordle Answers",
	model.CategoryWordAnalysis: "Word Analysis",
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// List returns one page of published articles.
func (m *Manager) List(ctx context.Context, opts ListOptions) (*Page, error) {
	limit := clampLimit(opts.Limit)
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	articles, total, err := m.store.List(ctx, repository.ArticleFilter{
		Category: opts.Category,
		Status:   model.StatusPublished,
		Sort:     opts.Sort,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	return &Page{Articles: articles, Total: total, Limit: limit, Offset: offset}, nil
}

func (m *Manager) query(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	f.Status = model.StatusPublished
	f.Limit = clampLimit(f.Limit)
	articles, _, err := m.store.List(ctx, f)
	return articles, err
}

func (m *Manager) Recent(ctx context.Context, limit int) ([]model.Article, error) {
	return m.query(ctx, repository.ArticleFilter{Sort: repository.SortRecent, Limit: limit})
}

// Popular orders by views, then likes.
func (m *Manager) Popular(ctx context.Context, limit int) ([]model.Article, error) {
	return m.query(ctx, repository.ArticleFilter{Sort: repository.SortPopular, Limit: limit})
}

// Search matches query case-insensitively against title, word, tags and content.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Article{}, nil
	}
	return m.query(ctx, repository.ArticleFilter{Query: query, Limit: limit})
}

func (m *Manager) ByCategory(ctx context.Context, category string, limit int) ([]model.Article, error) {
	return m.query(ctx, repository.ArticleFilter{Category: category, Limit: limit})
}

func (m *Manager) BySlug(ctx context.Context, slug string) (*model.Article, error) {
	a, err := m.store.GetBySlug(ctx, slug)
	return visible(a, err, slug)
}

func (m *Manager) ByID(ctx context.Context, id string) (*model.Article, error) {
	a, err := m.store.GetByID(ctx, id)
	return visible(a, err, id)
}

func visible(a *model.Article, err error, key string) (*model.Article, error) {
	if err != nil {
		return nil, err
	}
	if a == nil || a.Status != model.StatusPublished {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return a, nil
}

func (m *Manager) RecordView(ctx context.Context, slug string) (*model.Article, error) {
	return m.increment(ctx, slug, repository.CounterViews)
}

func (m *Manager) RecordLike(ctx context.Context, slug string) (*model.Article, error) {
	return m.increment(ctx, slug, repository.CounterLikes)
}

func (m *Manager) increment(ctx context.Context, slug string, counter repository.Counter) (*model.Article, error) {
	if _, err := m.BySlug(ctx, slug); err != nil {
		return nil, err
	}
	a, err := m.store.IncrementCounter(ctx, slug, counter)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return a, err
}

// Archive hides an article from every public query. Articles are never deleted.
func (m *Manager) Archive(ctx context.Context, slug string) error {
	err := m.store.UpdateStatus(ctx, slug, model.StatusArchived)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return err
}

// Categories lists every article category with its published count.
func (m *Manager) Categories(ctx context.Context) ([]CategoryCount, error) {
	out := make([]CategoryCount, 0, len(model.ArticleCategories))
	for _, c := range model.ArticleCategories {
		_, total, err := m.store.List(ctx, repository.ArticleFilter{
			Category: c,
			Status:   model.StatusPublished,
			Limit:    1,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryCount{Slug: c, Name: categoryNames[c], Count: total})
	}
	return out, nil
}

func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	all, _, err := m.store.List(ctx, repository.ArticleFilter{IncludeArchived: true, Sort: repository.SortRecent})
	if err != nil {
		return nil, err
	}

	s := &Stats{
		Total:      len(all),
		ByCategory: make(map[string]int),
		ByWriter:   make(map[string]int),
	}
	quality := 0
	for i := range all {
		a := &all[i]
		switch a.Status {
		case model.StatusPublished:
			s.Published++
			if s.Latest == nil {
				s.Latest = a
			}
		case model.StatusArchived:
			s.Archived++
		}
		s.Views += a.Views
		s.Likes += a.Likes
		s.ByCategory[a.Metadata.Category]++
		s.ByWriter[a.Metadata.Writer]++
		quality += a.Metadata.QualityScore
	}
	if len(all) > 0 {
		s.AvgQuality = float64(quality) / float64(len(all))
	}
	return s, nil
}

// Ping checks the article store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

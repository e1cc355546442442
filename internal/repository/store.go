package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

var ErrNotFound = errors.New("article not found")

type SortOrder string

const (
	SortRecent  SortOrder = "recent"
	SortPopular SortOrder = "popular"
)

type Counter string

const (
	CounterViews Counter = "views"
	CounterLikes Counter = "likes"
)

type ArticleFilter struct {
	Category string
	// Status restricts to one status. Empty means every non-archived article,
	// unless IncludeArchived is set.
	Status          model.ArticleStatus
	IncludeArchived bool
	Query           string
	Sort            SortOrder
	Limit           int
	Offset          int
}

// ArticleStore persists articles. Getters return nil, nil when nothing matches.
// Save inserts or updates by ID; on update the stored view and like counts
// are kept and copied back into the saved article.
type ArticleStore interface {
	Save(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id string) (*model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	GetByWordDate(ctx context.Context, word string, date time.Time, category string) (*model.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]model.Article, int, error)
	IncrementCounter(ctx context.Context, slug string, counter Counter) (*model.Article, error)
	UpdateStatus(ctx context.Context, slug string, status model.ArticleStatus) error
	Ping(ctx context.Context) error
}

func (f ArticleFilter) Match(a *model.Article) bool {
	switch {
	case f.Status != "":
		if a.Status != f.Status {
			return false
		}
	case !f.IncludeArchived:
		if a.Status == model.StatusArchived {
			return false
		}
	}

	if f.Category != "" && a.Metadata.Category != f.Category {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		fields := []string{a.Title, a.Word, a.Excerpt, a.Content, strings.Join(a.Metadata.Tags, " ")}
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func sortArticles(articles []model.Article, order SortOrder) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if order == SortPopular {
			if a.Views != b.Views {
				return a.Views > b.Views
			}
			if a.Likes != b.Likes {
				return a.Likes > b.Likes
			}
		}
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func paginate(articles []model.Article, limit, offset int) []model.Article {
	if offset >= len(articles) {
		return []model.Article{}
	}
	if offset > 0 {
		articles = articles[offset:]
	}
	if limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	return articles
}

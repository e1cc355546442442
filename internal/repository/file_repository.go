package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

// FileArticleRepository keeps every article in memory and mirrors each one
// to <dir>/articles/<id>.json.
type FileArticleRepository struct {
	dir string

	mu       sync.RWMutex
	articles map[string]*model.Article
	slugs    map[string]string
	keys     map[string]string
}

func NewFileArticleRepository(dataDir string) (*FileArticleRepository, error) {
	dir := filepath.Join(dataDir, "articles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating article dir: %w", err)
	}

	r := &FileArticleRepository{
		dir:      dir,
		articles: make(map[string]*model.Article),
		slugs:    make(map[string]string),
		keys:     make(map[string]string),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileArticleRepository) load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading article dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		var a model.Article
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
		r.index(&a)
	}
	return nil
}

func (r *FileArticleRepository) index(a *model.Article) {
	if old, ok := r.articles[a.ID]; ok {
		delete(r.slugs, old.Slug)
		delete(r.keys, uniqueKey(old.Word, old.PuzzleDate, old.Metadata.Category))
	}
	r.articles[a.ID] = a
	r.slugs[a.Slug] = a.ID
	r.keys[uniqueKey(a.Word, a.PuzzleDate, a.Metadata.Category)] = a.ID
}

func uniqueKey(word string, date time.Time, category string) string {
	return strings.ToLower(word) + "|" + model.DateKey(date) + "|" + category
}

func (r *FileArticleRepository) Save(_ context.Context, article *model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.slugs[article.Slug]; ok && id != article.ID {
		return fmt.Errorf("slug %q already used by article %s", article.Slug, id)
	}
	if id, ok := r.keys[uniqueKey(article.Word, article.PuzzleDate, article.Metadata.Category)]; ok && id != article.ID {
		return fmt.Errorf("article for %s on %s already exists as %s", article.Word, model.DateKey(article.PuzzleDate), id)
	}

	stored := article.Clone()
	if prev, ok := r.articles[article.ID]; ok {
		stored.Views = prev.Views
		stored.Likes = prev.Likes
	}
	if err := r.write(stored); err != nil {
		return err
	}
	r.index(stored)
	article.Views = stored.Views
	article.Likes = stored.Likes
	return nil
}

func (r *FileArticleRepository) write(a *model.Article) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(r.dir, a.ID+".json")
	tmp, err := os.CreateTemp(r.dir, a.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing article %s: %w", a.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (r *FileArticleRepository) GetByID(_ context.Context, id string) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.articles[id].Clone(), nil
}

func (r *FileArticleRepository) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slugs[slug]
	if !ok {
		return nil, nil
	}
	return r.articles[id].Clone(), nil
}

func (r *FileArticleRepository) GetByWordDate(_ context.Context, word string, date time.Time, category string) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[uniqueKey(word, date, category)]
	if !ok {
		return nil, nil
	}
	return r.articles[id].Clone(), nil
}

func (r *FileArticleRepository) List(_ context.Context, filter ArticleFilter) ([]model.Article, int, error) {
	r.mu.RLock()
	matched := make([]model.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if filter.Match(a) {
			matched = append(matched, *a.Clone())
		}
	}
	r.mu.RUnlock()

	sortArticles(matched, filter.Sort)
	return paginate(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (r *FileArticleRepository) IncrementCounter(_ context.Context, slug string, counter Counter) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.slugs[slug]
	if !ok {
		return nil, ErrNotFound
	}

	updated := r.articles[id].Clone()
	switch counter {
	case CounterViews:
		updated.Views++
	case CounterLikes:
		updated.Likes++
	default:
		return nil, fmt.Errorf("unknown counter %q", counter)
	}

	if err := r.write(updated); err != nil {
		return nil, err
	}
	r.articles[id] = updated
	return updated.Clone(), nil
}

func (r *FileArticleRepository) UpdateStatus(_ context.Context, slug string, status model.ArticleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.slugs[slug]
	if !ok {
		return ErrNotFound
	}

	updated := r.articles[id].Clone()
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()

	if err := r.write(updated); err != nil {
		return err
	}
	r.articles[id] = updated
	return nil
}

func (r *FileArticleRepository) Ping(_ context.Context) error {
	_, err := os.Stat(r.dir)
	return err
}

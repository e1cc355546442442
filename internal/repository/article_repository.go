package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/lib/pq"
)

const articleColumns = `id, slug, title, word, puzzle_number, puzzle_date, content, excerpt,
	category, tags, difficulty, quality_score, word_count, reading_minutes, writer,
	status, published_at, created_at, updated_at, version, views, likes`

// ArticleRepository is the Postgres ArticleStore.
type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var (
		a           model.Article
		status      string
		publishedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Word, &a.PuzzleNumber, &a.PuzzleDate, &a.Content, &a.Excerpt,
		&a.Metadata.Category, pq.Array(&a.Metadata.Tags), &a.Metadata.Difficulty, &a.Metadata.QualityScore,
		&a.Metadata.WordCount, &a.Metadata.ReadingMinutes, &a.Metadata.Writer,
		&status, &publishedAt, &a.CreatedAt, &a.UpdatedAt, &a.Version, &a.Views, &a.Likes)
	if err != nil {
		return nil, err
	}

	a.Status = model.ArticleStatus(status)
	if publishedAt.Valid {
		a.PublishedAt = publishedAt.Time
	}
	return &a, nil
}

func (r *ArticleRepository) Save(ctx context.Context, a *model.Article) error {
	var publishedAt sql.NullTime
	if !a.PublishedAt.IsZero() {
		publishedAt = sql.NullTime{Time: a.PublishedAt, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO article(`+articleColumns+`)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			slug = EXCLUDED.slug,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			excerpt = EXCLUDED.excerpt,
			tags = EXCLUDED.tags,
			difficulty = EXCLUDED.difficulty,
			quality_score = EXCLUDED.quality_score,
			word_count = EXCLUDED.word_count,
			reading_minutes = EXCLUDED.reading_minutes,
			writer = EXCLUDED.writer,
			status = EXCLUDED.status,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		RETURNING views, likes
	`, a.ID, a.Slug, a.Title, a.Word, a.PuzzleNumber, a.PuzzleDate, a.Content, a.Excerpt,
		a.Metadata.Category, pq.Array(a.Metadata.Tags), a.Metadata.Difficulty, a.Metadata.QualityScore,
		a.Metadata.WordCount, a.Metadata.ReadingMinutes, a.Metadata.Writer,
		string(a.Status), publishedAt, a.CreatedAt, a.UpdatedAt, a.Version, a.Views, a.Likes).Scan(&a.Views, &a.Likes)

	return err
}

func (r *ArticleRepository) getOne(ctx context.Context, where string, args ...interface{}) (*model.Article, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM article WHERE `+where, args...)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*model.Article, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *ArticleRepository) GetByWordDate(ctx context.Context, word string, date time.Time, category string) (*model.Article, error) {
	return r.getOne(ctx, `word = $1 AND puzzle_date = $2 AND category = $3`, strings.ToLower(word), date, category)
}

// buildListQuery turns a filter into a WHERE clause, an ORDER BY clause and
// the positional arguments for both.
func buildListQuery(f ArticleFilter) (where string, orderBy string, args []interface{}) {
	var conds []string
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case f.Status != "":
		conds = append(conds, "status = "+arg(string(f.Status)))
	case !f.IncludeArchived:
		conds = append(conds, "status <> "+arg(string(model.StatusArchived)))
	}

	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %[1]s OR word ILIKE %[1]s OR excerpt ILIKE %[1]s OR content ILIKE %[1]s OR array_to_string(tags, ' ') ILIKE %[1]s)", p))
	}

	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	orderBy = " ORDER BY published_at DESC NULLS LAST, created_at DESC"
	if f.Sort == SortPopular {
		orderBy = " ORDER BY views DESC, likes DESC, published_at DESC NULLS LAST, created_at DESC"
	}

	return where, orderBy, args
}

func (r *ArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]model.Article, int, error) {
	where, orderBy, args := buildListQuery(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + articleColumns + ` FROM article` + where + orderBy
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *ArticleRepository) IncrementCounter(ctx context.Context, slug string, counter Counter) (*model.Article, error) {
	var column string
	switch counter {
	case CounterViews:
		column = "views"
	case CounterLikes:
		column = "likes"
	default:
		return nil, fmt.Errorf("unknown counter %q", counter)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE article SET `+column+` = `+column+` + 1
		WHERE slug = $1
		RETURNING `+articleColumns, slug)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *ArticleRepository) UpdateStatus(ctx context.Context, slug string, status model.ArticleStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE article SET status = $1, updated_at = NOW() WHERE slug = $2
	`, string(status), slug)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/repository"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/puzzle"
	"github.com/gin-gonic/gin"
)

type ArticleService interface {
	List(ctx context.Context, opts article.ListOptions) (*article.Page, error)
	Search(ctx context.Context, query string, limit int) ([]model.Article, error)
	Categories(ctx context.Context) ([]article.CategoryCount, error)
	BySlug(ctx context.Context, slug string) (*model.Article, error)
	RecordView(ctx context.Context, slug string) (*model.Article, error)
	RecordLike(ctx context.Context, slug string) (*model.Article, error)
	Generate(ctx context.Context, req article.GenerateRequest) (*article.GenerateResult, error)
	Regenerate(ctx context.Context, slug string) (*model.Article, error)
	Archive(ctx context.Context, slug string) error
	Stats(ctx context.Context) (*article.Stats, error)
	Ping(ctx context.Context) error
}

type ArticleHandler struct {
	articles ArticleService
}

func NewArticleHandler(articles ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	category := c.Query("category")
	if category != "" && !slices.Contains(model.ArticleCategories, category) {
		respondError(c, http.StatusBadRequest, "Unknown category")
		return
	}

	sort := repository.SortOrder(c.DefaultQuery("sort", string(repository.SortRecent)))
	if sort != repository.SortRecent && sort != repository.SortPopular {
		respondError(c, http.StatusBadRequest, "sort must be recent or popular")
		return
	}

	page, err := h.articles.List(c.Request.Context(), article.ListOptions{
		Category: category,
		Sort:     sort,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondErr(c, err, "error listing articles")
		return
	}

	respond(c, http.StatusOK, ArticlesResponse{
		Articles: toArticleResponses(page.Articles),
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

func (h *ArticleHandler) SearchArticles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		respondError(c, http.StatusBadRequest, "Missing search query")
		return
	}

	articles, err := h.articles.Search(c.Request.Context(), q, getQueryLimit(c))
	if err != nil {
		respondErr(c, err, "error searching articles", "query", q)
		return
	}

	respond(c, http.StatusOK, ArticlesResponse{
		Articles: toArticleResponses(articles),
		Total:    len(articles),
		Limit:    getQueryLimit(c),
	})
}

func (h *ArticleHandler) GetCategories(c *gin.Context) {
	categories, err := h.articles.Categories(c.Request.Context())
	if err != nil {
		respondErr(c, err, "error fetching categories")
		return
	}
	respond(c, http.StatusOK, categories)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	a, err := h.articles.BySlug(c.Request.Context(), slug)
	if err != nil {
		respondErr(c, err, "error fetching article", "slug", slug)
		return
	}

	respond(c, http.StatusOK, toArticleResponse(*a, true))
}

func (h *ArticleHandler) RecordView(c *gin.Context) {
	h.count(c, h.articles.RecordView)
}

func (h *ArticleHandler) RecordLike(c *gin.Context) {
	h.count(c, h.articles.RecordLike)
}

func (h *ArticleHandler) count(c *gin.Context, record func(context.Context, string) (*model.Article, error)) {
	slug := c.Param("slug")

	a, err := record(c.Request.Context(), slug)
	if err != nil {
		respondErr(c, err, "error updating article counter", "slug", slug)
		return
	}

	respond(c, http.StatusOK, CounterResponse{Slug: a.Slug, Views: a.Views, Likes: a.Likes})
}

// Generate builds articles for the word and date in the body. An empty body
// generates today's set.
func (h *ArticleHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	genReq, err := toGenerateRequest(req.Word, req.Date, req.Force)
	if err != nil {
		respondErr(c, err, "error parsing generate request")
		return
	}

	res, err := h.articles.Generate(c.Request.Context(), genReq)
	if err != nil {
		respondErr(c, err, "error generating articles", "word", req.Word, "date", req.Date)
		return
	}

	status := http.StatusOK
	if res.Created > 0 {
		status = http.StatusCreated
	}
	respond(c, status, res)
}

// toGenerateRequest validates the word and date up front so queued requests
// fail the same way inline ones do.
func toGenerateRequest(word, date string, force bool) (article.GenerateRequest, error) {
	req := article.GenerateRequest{Word: strings.ToLower(strings.TrimSpace(word)), Force: force}
	if req.Word != "" && !puzzle.IsWordleWord(req.Word) {
		return req, fmt.Errorf("%w: %q", article.ErrInvalidWord, word)
	}
	if date != "" {
		now := time.Now()
		d, err := service.ParseDate(date, now)
		if err != nil {
			return req, err
		}
		if d, err = puzzle.CheckDate(d, now); err != nil {
			return req, err
		}
		req.Date = d
	}
	return req, nil
}

func (h *ArticleHandler) Regenerate(c *gin.Context) {
	slug := c.Param("slug")

	a, err := h.articles.Regenerate(c.Request.Context(), slug)
	if err != nil {
		respondErr(c, err, "error regenerating article", "slug", slug)
		return
	}

	respond(c, http.StatusOK, toArticleResponse(*a, true))
}

func (h *ArticleHandler) Archive(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.articles.Archive(c.Request.Context(), slug); err != nil {
		respondErr(c, err, "error archiving article", "slug", slug)
		return
	}

	respond(c, http.StatusOK, gin.H{"slug": slug, "status": model.StatusArchived})
}

func (h *ArticleHandler) GetStats(c *gin.Context) {
	stats, err := h.articles.Stats(c.Request.Context())
	if err != nil {
		respondErr(c, err, "error fetching article stats")
		return
	}
	respond(c, http.StatusOK, stats)
}

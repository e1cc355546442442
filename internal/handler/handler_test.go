package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/game"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/scheduler"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeArticles struct {
	page       *article.Page
	listOpts   article.ListOptions
	found      *model.Article
	generated  *article.GenerateResult
	genReq     article.GenerateRequest
	categories []article.CategoryCount
	stats      *article.Stats
	archived   string
	err        error
	pingErr    error
}

func (f *fakeArticles) List(ctx context.Context, opts article.ListOptions) (*article.Page, error) {
	f.listOpts = opts
	return f.page, f.err
}

func (f *fakeArticles) Search(ctx context.Context, query string, limit int) ([]model.Article, error) {
	if f.page == nil {
		return nil, f.err
	}
	return f.page.Articles, f.err
}

func (f *fakeArticles) Categories(ctx context.Context) ([]article.CategoryCount, error) {
	return f.categories, f.err
}

func (f *fakeArticles) BySlug(ctx context.Context, slug string) (*model.Article, error) {
	return f.found, f.err
}

func (f *fakeArticles) RecordView(ctx context.Context, slug string) (*model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.found.Views++
	return f.found, nil
}

func (f *fakeArticles) RecordLike(ctx context.Context, slug string) (*model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.found.Likes++
	return f.found, nil
}

func (f *fakeArticles) Generate(ctx context.Context, req article.GenerateRequest) (*article.GenerateResult, error) {
	f.genReq = req
	return f.generated, f.err
}

func (f *fakeArticles) Regenerate(ctx context.Context, slug string) (*model.Article, error) {
	return f.found, f.err
}

func (f *fakeArticles) Archive(ctx context.Context, slug string) error {
	f.archived = slug
	return f.err
}

func (f *fakeArticles) Stats(ctx context.Context) (*article.Stats, error) {
	return f.stats, f.err
}

func (f *fakeArticles) Ping(ctx context.Context) error {
	return f.pingErr
}

type fakeScheduler struct {
	health    model.HealthReport
	triggered []string
	err       error
}

func (f *fakeScheduler) Status() model.SchedulerStatus {
	return model.SchedulerStatus{Running: true, Jobs: []model.JobStatus{{Name: scheduler.JobDailyGeneration, Runs: 1}}}
}

func (f *fakeScheduler) Health() model.HealthReport { return f.health }

func (f *fakeScheduler) Trigger(ctx context.Context, name string) error {
	f.triggered = append(f.triggered, name)
	return f.err
}

type fakeQueue struct {
	pushed []model.GenerationRequest
}

func (f *fakeQueue) Push(ctx context.Context, req model.GenerationRequest) error {
	f.pushed = append(f.pushed, req)
	return nil
}

type fakeWordle struct {
	data *model.WordleDailyData
	err  error
}

func (f *fakeWordle) ForDate(ctx context.Context, date time.Time) (*model.WordleDailyData, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.data
	d.Date = date
	return &d, nil
}

func (f *fakeWordle) TestConnection(ctx context.Context) model.ConnectionReport {
	return model.ConnectionReport{OK: true, Endpoints: []model.EndpointCheck{{Name: "nyt", OK: true}}}
}

type fakeConnections struct{}

func (fakeConnections) ForDate(ctx context.Context, date time.Time) (*model.ConnectionsPuzzle, error) {
	return &model.ConnectionsPuzzle{
		Date:   date,
		Groups: []model.ConnectionsGroup{{Title: "Fish", Color: "yellow", Words: []string{"BASS", "PIKE", "CARP", "SOLE"}}},
	}, nil
}

type fakeStrands struct{}

func (fakeStrands) ForDate(ctx context.Context, date time.Time) (*model.StrandsPuzzle, error) {
	return &model.StrandsPuzzle{Date: date, Clue: "Out at sea", Spangram: "OCEANLIFE", ThemeWords: []string{"WHALE"}}, nil
}

type testEnv struct {
	articles  *fakeArticles
	scheduler *fakeScheduler
	queue     *fakeQueue
	router    *gin.Engine
}

func newTestEnv(t *testing.T, secret string, withQueue bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	games, err := game.NewManager()
	if err != nil {
		t.Fatalf("loading games: %v", err)
	}

	env := &testEnv{
		articles:  &fakeArticles{},
		scheduler: &fakeScheduler{health: model.HealthReport{Status: model.HealthOK}},
	}

	var queue GenerationQueue
	if withQueue {
		env.queue = &fakeQueue{}
		queue = env.queue
	}

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Articles: NewArticleHandler(env.articles),
		Games:    NewGameHandler(games),
		Puzzles:  NewPuzzleHandler(&fakeWordle{data: &model.WordleDailyData{Word: "crane", Number: 1946, Source: "nyt", IsReal: true}}, fakeConnections{}, fakeStrands{}),
		Admin:    NewAdminHandler(env.scheduler, env.articles),
		Webhook:  NewWebhookHandler(env.articles, env.scheduler, queue),
		Secret:   secret,
	})
	env.router = r
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func fromLoopback(r *http.Request) { r.RemoteAddr = "127.0.0.1:40000" }

func withToken(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(tokenHeader, token) }
}

func sampleArticle() *model.Article {
	now := time.Date(2026, 10, 17, 0, 5, 0, 0, time.UTC)
	return &model.Article{
		ID:          "a1",
		Slug:        "wordle-1946-hints-2026-10-17",
		Title:       "Wordle #1946 Hints",
		Content:     "## Hints",
		PuzzleDate:  now,
		Metadata:    model.ArticleMetadata{Category: model.CategoryWordleHints},
		Status:      model.StatusPublished,
		PublishedAt: now,
		UpdatedAt:   now,
		Version:     1,
	}
}

func TestGetArticles_ReturnsPage(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.page = &article.Page{Articles: []model.Article{*sampleArticle()}, Total: 1, Limit: 5, Offset: 0}

	w, res := env.do(t, "GET", "/api/articles?limit=5&sort=popular&category=wordle-hints", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, res.Success)

	var page ArticlesResponse
	_ = json.Unmarshal(res.Data, &page)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "wordle-1946-hints-2026-10-17", page.Articles[0].Slug)
	assert.Equal(t, "", page.Articles[0].Content)
	assert.Equal(t, "2026-10-17", page.Articles[0].PuzzleDate)

	assert.Equal(t, 5, env.articles.listOpts.Limit)
	assert.Equal(t, "wordle-hints", env.articles.listOpts.Category)
}

func TestGetArticles_ClampsLimit(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.page = &article.Page{}

	w, _ := env.do(t, "GET", "/api/articles?limit=500&offset=-3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, env.articles.listOpts.Limit)
	assert.Equal(t, 0, env.articles.listOpts.Offset)
}

func TestGetArticles_BadParams(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, res := env.do(t, "GET", "/api/articles?sort=oldest", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, res.Success)

	w, _ = env.do(t, "GET", "/api/articles?category=sports", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetArticles_StoreError(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.err = errors.New("disk full")

	w, res := env.do(t, "GET", "/api/articles", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal error", res.Error)
}

func TestSearchArticles_RequiresQuery(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, _ := env.do(t, "GET", "/api/articles/search?q=%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.articles.page = &article.Page{Articles: []model.Article{*sampleArticle()}}
	w, _ = env.do(t, "GET", "/api/articles/search?q=hints", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetArticle(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.found = sampleArticle()

	w, res := env.do(t, "GET", "/api/articles/wordle-1946-hints-2026-10-17", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var a ArticleResponse
	_ = json.Unmarshal(res.Data, &a)
	assert.Equal(t, "## Hints", a.Content)
}

func TestGetArticle_NotFound(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.err = article.ErrNotFound

	w, res := env.do(t, "GET", "/api/articles/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Article not found", res.Error)
}

func TestRecordViewAndLike(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.found = sampleArticle()

	_, _ = env.do(t, "POST", "/api/articles/wordle-1946-hints-2026-10-17/view", "")
	w, res := env.do(t, "POST", "/api/articles/wordle-1946-hints-2026-10-17/like", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var counters CounterResponse
	_ = json.Unmarshal(res.Data, &counters)
	assert.Equal(t, int64(1), counters.Views)
	assert.Equal(t, int64(1), counters.Likes)
}

func TestGenerate_RequiresLoopbackWithoutSecret(t *testing.T) {
	env := newTestEnv(t, "", false)
	env.articles.generated = &article.GenerateResult{Created: 3}

	w, _ := env.do(t, "POST", "/api/articles/generate", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, "POST", "/api/articles/generate", "", fromLoopback)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGenerate_WordAndDate(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)
	env.articles.generated = &article.GenerateResult{Existing: 3}

	w, _ := env.do(t, "POST", "/api/articles/generate", `{"word":"crane","date":"2026-10-01","force":true}`, withToken("s3cret"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "crane", env.articles.genReq.Word)
	assert.Equal(t, true, env.articles.genReq.Force)
	assert.Equal(t, "2026-10-01", model.DateKey(env.articles.genReq.Date))

	w, _ = env.do(t, "POST", "/api/articles/generate", `{"date":"yesterday"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.articles.err = article.ErrInvalidWord
	w, _ = env.do(t, "POST", "/api/articles/generate", `{"word":"toolong"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_RejectsOutOfRangeDates(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)
	env.articles.generated = &article.GenerateResult{Created: 3}

	for _, date := range []string{"1900-01-01", "2021-06-18", "2099-01-01"} {
		w, _ := env.do(t, "POST", "/api/articles/generate", `{"word":"crane","date":"`+date+`"}`, withToken("s3cret"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Equal(t, "", env.articles.genReq.Word)
}

func TestArchive(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)

	w, _ := env.do(t, "DELETE", "/api/articles/old-post?token=s3cret", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old-post", env.articles.archived)
}

func TestWebhook_Auth(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)

	w, _ := env.do(t, "POST", "/api/webhook", `{"action":"refresh"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(t, "POST", "/api/webhook", `{"action":"refresh"}`, withToken("wrong"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, "POST", "/api/webhook?token=s3cret", `{"action":"refresh"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{scheduler.JobWordleRefresh}, env.scheduler.triggered)
}

func TestWebhook_Actions(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)
	env.articles.generated = &article.GenerateResult{Created: 3}

	w, _ := env.do(t, "POST", "/api/webhook", `{"action":"generate","word":"slate"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "slate", env.articles.genReq.Word)

	w, _ = env.do(t, "POST", "/api/webhook", `{"action":"cleanup"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{scheduler.JobCacheCleanup}, env.scheduler.triggered)

	w, _ = env.do(t, "POST", "/api/webhook", `{"action":"explode"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, "POST", "/api/webhook", `not json`, withToken("s3cret"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_QueuesGeneration(t *testing.T) {
	env := newTestEnv(t, "s3cret", true)

	w, _ := env.do(t, "POST", "/api/webhook", `{"action":"generate","word":"slate","date":"2026-10-16"}`, withToken("s3cret"))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, len(env.queue.pushed))
	assert.Equal(t, "slate", env.queue.pushed[0].Word)
	assert.Equal(t, "2026-10-16", model.DateKey(env.queue.pushed[0].Date))

	for _, body := range []string{
		`{"action":"generate","word":"not-a-word!!"}`,
		`{"action":"generate","word":"cranes"}`,
		`{"action":"generate","word":"crane","date":"1900-01-01"}`,
		`{"action":"generate","word":"crane","date":"2099-01-01"}`,
	} {
		w, _ = env.do(t, "POST", "/api/webhook", body, withToken("s3cret"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Equal(t, 1, len(env.queue.pushed))
}

func TestTriggerJob(t *testing.T) {
	env := newTestEnv(t, "s3cret", false)

	w, _ := env.do(t, "POST", "/api/admin/scheduler/cache-cleanup/trigger", "", withToken("s3cret"))
	assert.Equal(t, http.StatusOK, w.Code)

	env.scheduler.err = scheduler.ErrJobRunning
	w, _ = env.do(t, "POST", "/api/admin/scheduler/cache-cleanup/trigger", "", withToken("s3cret"))
	assert.Equal(t, http.StatusConflict, w.Code)

	env.scheduler.err = scheduler.ErrUnknownJob
	w, _ = env.do(t, "POST", "/api/admin/scheduler/nope/trigger", "", withToken("s3cret"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulerEndpoints(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, res := env.do(t, "GET", "/api/admin/scheduler", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var status model.SchedulerStatus
	_ = json.Unmarshal(res.Data, &status)
	assert.Equal(t, true, status.Running)

	w, _ = env.do(t, "GET", "/api/admin/scheduler/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	env.scheduler.health = model.HealthReport{Status: model.HealthDegraded}
	w, _ = env.do(t, "GET", "/api/admin/scheduler/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, _ := env.do(t, "GET", "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	env.articles.pingErr = errors.New("db gone")
	w, res := env.do(t, "GET", "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, res.Success)
}

func TestWordleEndpoints(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, res := env.do(t, "GET", "/api/wordle?date=2026-10-17", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var data model.WordleDailyData
	_ = json.Unmarshal(res.Data, &data)
	assert.Equal(t, "crane", data.Word)

	w, _ = env.do(t, "GET", "/api/wordle?date=17-10-2026", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, res = env.do(t, "GET", "/api/wordle/hints?level=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var hints HintsResponse
	_ = json.Unmarshal(res.Data, &hints)
	assert.Equal(t, 2, hints.Level)
	assert.Equal(t, 4, len(hints.Hints))

	w, _ = env.do(t, "GET", "/api/wordle/hints?level=7", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, "GET", "/api/wordle/hints?level=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, "GET", "/api/wordle/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConnectionsAndStrands(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, res := env.do(t, "GET", "/api/connections", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var conn model.ConnectionsPuzzle
	_ = json.Unmarshal(res.Data, &conn)
	assert.Equal(t, 0, len(conn.Hints))

	w, res = env.do(t, "GET", "/api/connections?level=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	_ = json.Unmarshal(res.Data, &conn)
	assert.Equal(t, 1, len(conn.Hints))

	w, res = env.do(t, "GET", "/api/strands?level=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var strands model.StrandsPuzzle
	_ = json.Unmarshal(res.Data, &strands)
	assert.Equal(t, 6, len(strands.Hints))

	w, _ = env.do(t, "GET", "/api/strands?level=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGames(t *testing.T) {
	env := newTestEnv(t, "", false)

	w, res := env.do(t, "GET", "/api/games?featured=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var games []model.Game
	_ = json.Unmarshal(res.Data, &games)
	assert.Equal(t, 3, len(games))

	w, _ = env.do(t, "GET", "/api/games?featured=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, res = env.do(t, "GET", "/api/games?q=sudoku", "")
	assert.Equal(t, http.StatusOK, w.Code)
	_ = json.Unmarshal(res.Data, &games)
	assert.Equal(t, 1, len(games))

	w, _ = env.do(t, "GET", "/api/games/wordle", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, "GET", "/api/games/chess", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, "GET", "/api/games/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRespondErr_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		want int
	}{
		{article.ErrNotFound, http.StatusNotFound},
		{article.ErrInvalidWord, http.StatusBadRequest},
		{service.ErrInvalidLevel, http.StatusBadRequest},
		{service.ErrInvalidDate, http.StatusBadRequest},
		{scheduler.ErrUnknownJob, http.StatusNotFound},
		{scheduler.ErrJobRunning, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondErr(c, tt.err, "test")
		assert.Equal(t, tt.want, w.Code)
	}
}

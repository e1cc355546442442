package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Articles *ArticleHandler
	Games    *GameHandler
	Puzzles  *PuzzleHandler
	Admin    *AdminHandler
	Webhook  *WebhookHandler
	// Secret guards the webhook and every mutating admin route.
	Secret string
}

func RegisterRoutes(r gin.IRouter, h Handlers) {
	api := r.Group("/api")
	protected := RequireToken(h.Secret)

	api.GET("/health", h.Admin.GetHealth)

	articles := api.Group("/articles")
	articles.GET("", h.Articles.GetArticles)
	articles.GET("/search", h.Articles.SearchArticles)
	articles.GET("/categories", h.Articles.GetCategories)
	articles.GET("/:slug", h.Articles.GetArticle)
	articles.POST("/:slug/view", h.Articles.RecordView)
	articles.POST("/:slug/like", h.Articles.RecordLike)
	articles.POST("/generate", protected, h.Articles.Generate)
	articles.POST("/:slug/regenerate", protected, h.Articles.Regenerate)
	articles.DELETE("/:slug", protected, h.Articles.Archive)

	games := api.Group("/games")
	games.GET("", h.Games.GetGames)
	games.GET("/categories", h.Games.GetCategories)
	games.GET("/:id", h.Games.GetGame)

	api.GET("/wordle", h.Puzzles.GetWordle)
	api.GET("/wordle/hints", h.Puzzles.GetWordleHints)
	api.GET("/wordle/test", h.Puzzles.TestWordle)
	api.GET("/connections", h.Puzzles.GetConnections)
	api.GET("/strands", h.Puzzles.GetStrands)

	admin := api.Group("/admin")
	admin.GET("/scheduler", h.Admin.GetSchedulerStatus)
	admin.GET("/scheduler/health", h.Admin.GetSchedulerHealth)
	admin.POST("/scheduler/:job/trigger", protected, h.Admin.TriggerJob)
	admin.GET("/stats", h.Articles.GetStats)

	api.POST("/webhook", protected, h.Webhook.Handle)
}

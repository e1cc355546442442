package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/scheduler"
	"github.com/gin-gonic/gin"
)

const tokenHeader = "X-Webhook-Token"

// GenerationQueue hands generation requests to the background drainer.
type GenerationQueue interface {
	Push(ctx context.Context, req model.GenerationRequest) error
}

// RequireToken rejects requests without the shared secret. With no secret
// configured only loopback clients get through.
func RequireToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			ip := net.ParseIP(c.ClientIP())
			if ip == nil || !ip.IsLoopback() {
				slog.Warn("rejected non-local request without webhook secret", "ip", c.ClientIP(), "path", c.FullPath())
				respondError(c, http.StatusForbidden, "Forbidden")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		token := c.GetHeader(tokenHeader)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Missing token")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			slog.Warn("rejected request with bad webhook token", "ip", c.ClientIP(), "path", c.FullPath())
			respondError(c, http.StatusForbidden, "Invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

type WebhookHandler struct {
	articles  ArticleService
	scheduler JobRunner
	queue     GenerationQueue
}

// NewWebhookHandler builds the webhook handler. queue may be nil, in which
// case generate requests run inline.
func NewWebhookHandler(articles ArticleService, scheduler JobRunner, queue GenerationQueue) *WebhookHandler {
	return &WebhookHandler{articles: articles, scheduler: scheduler, queue: queue}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()

	switch req.Action {
	case "generate":
		genReq, err := toGenerateRequest(req.Word, req.Date, req.Force)
		if err != nil {
			respondErr(c, err, "error parsing webhook request")
			return
		}

		if h.queue != nil {
			err := h.queue.Push(ctx, model.GenerationRequest{
				Word:     genReq.Word,
				Date:     genReq.Date,
				Force:    genReq.Force,
				QueuedAt: time.Now().UTC(),
			})
			if err != nil {
				respondErr(c, err, "error queueing generation request")
				return
			}
			respond(c, http.StatusAccepted, gin.H{"action": req.Action, "queued": true})
			return
		}

		res, err := h.articles.Generate(ctx, genReq)
		if err != nil {
			respondErr(c, err, "error generating articles from webhook")
			return
		}
		respond(c, http.StatusOK, res)

	case "refresh":
		h.trigger(c, req.Action, scheduler.JobWordleRefresh)
	case "cleanup":
		h.trigger(c, req.Action, scheduler.JobCacheCleanup)
	default:
		respondError(c, http.StatusBadRequest, "action must be generate, refresh or cleanup")
	}
}

func (h *WebhookHandler) trigger(c *gin.Context, action, job string) {
	if err := h.scheduler.Trigger(c.Request.Context(), job); err != nil {
		respondErr(c, err, "error running webhook job", "job", job)
		return
	}
	respond(c, http.StatusOK, gin.H{"action": action, "job": job})
}

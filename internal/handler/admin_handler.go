package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/gin-gonic/gin"
)

type JobRunner interface {
	Status() model.SchedulerStatus
	Health() model.HealthReport
	Trigger(ctx context.Context, name string) error
}

type AdminHandler struct {
	scheduler JobRunner
	articles  ArticleService
}

func NewAdminHandler(scheduler JobRunner, articles ArticleService) *AdminHandler {
	return &AdminHandler{scheduler: scheduler, articles: articles}
}

func (h *AdminHandler) GetSchedulerStatus(c *gin.Context) {
	respond(c, http.StatusOK, h.scheduler.Status())
}

func (h *AdminHandler) GetSchedulerHealth(c *gin.Context) {
	report := h.scheduler.Health()
	if report.Status != model.HealthOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Scheduler degraded", "data": report})
		return
	}
	respond(c, http.StatusOK, report)
}

func (h *AdminHandler) TriggerJob(c *gin.Context) {
	name := c.Param("job")

	start := time.Now()
	if err := h.scheduler.Trigger(c.Request.Context(), name); err != nil {
		respondErr(c, err, "error running job", "job", name)
		return
	}

	respond(c, http.StatusOK, gin.H{"job": name, "duration_ms": time.Since(start).Milliseconds()})
}

func (h *AdminHandler) GetHealth(c *gin.Context) {
	res := HealthResponse{
		Status:    "healthy",
		Storage:   "connected",
		Scheduler: h.scheduler.Health().Status,
		Time:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.articles.Ping(c.Request.Context()); err != nil {
		res.Status = "unhealthy"
		res.Storage = "disconnected"
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Storage unavailable", "data": res})
		return
	}

	respond(c, http.StatusOK, res)
}

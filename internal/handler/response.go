package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/scheduler"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondErr maps err to a status code, logs anything unexpected and
// writes the error envelope.
func respondErr(c *gin.Context, err error, logMsg string, attrs ...any) {
	switch {
	case errors.Is(err, article.ErrNotFound):
		respondError(c, http.StatusNotFound, "Article not found")
	case errors.Is(err, article.ErrInvalidWord),
		errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduler.ErrUnknownJob):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, scheduler.ErrJobRunning):
		respondError(c, http.StatusConflict, err.Error())
	default:
		slog.Error(logMsg, append(attrs, "error", err)...)
		respondError(c, http.StatusInternalServerError, "Internal error")
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramLimit := c.Query(name)

	if paramLimit == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramLimit)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramLimit, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	limit := getQueryInt("limit", article.DefaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", article.DefaultLimit)
		return article.DefaultLimit
	}

	if limit > article.MaxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", article.MaxLimit)
		return article.MaxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}

// getQueryLevel reads the hint level. ok is false when the parameter is absent.
func getQueryLevel(c *gin.Context) (level int, ok bool, err error) {
	raw := c.Query("level")
	if raw == "" {
		return 0, false, nil
	}
	level, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, service.ErrInvalidLevel
	}
	return level, true, nil
}

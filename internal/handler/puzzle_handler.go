package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

type WordleProvider interface {
	ForDate(ctx context.Context, date time.Time) (*model.WordleDailyData, error)
	TestConnection(ctx context.Context) model.ConnectionReport
}

type ConnectionsProvider interface {
	ForDate(ctx context.Context, date time.Time) (*model.ConnectionsPuzzle, error)
}

type StrandsProvider interface {
	ForDate(ctx context.Context, date time.Time) (*model.StrandsPuzzle, error)
}

type PuzzleHandler struct {
	wordle      WordleProvider
	connections ConnectionsProvider
	strands     StrandsProvider
	now         func() time.Time
}

func NewPuzzleHandler(wordle WordleProvider, connections ConnectionsProvider, strands StrandsProvider) *PuzzleHandler {
	return &PuzzleHandler{
		wordle:      wordle,
		connections: connections,
		strands:     strands,
		now:         time.Now,
	}
}

func (h *PuzzleHandler) date(c *gin.Context) (time.Time, error) {
	return service.ParseDate(c.Query("date"), h.now())
}

func (h *PuzzleHandler) GetWordle(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		respondErr(c, err, "error parsing date")
		return
	}

	data, err := h.wordle.ForDate(c.Request.Context(), date)
	if err != nil {
		respondErr(c, err, "error fetching wordle", "date", c.Query("date"))
		return
	}
	respond(c, http.StatusOK, data)
}

func (h *PuzzleHandler) GetWordleHints(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		respondErr(c, err, "error parsing date")
		return
	}

	level, ok, err := getQueryLevel(c)
	if err != nil {
		respondErr(c, err, "error parsing level")
		return
	}
	if !ok {
		level = service.MinHintLevel
	}

	data, err := h.wordle.ForDate(c.Request.Context(), date)
	if err != nil {
		respondErr(c, err, "error fetching wordle", "date", c.Query("date"))
		return
	}

	hints, err := service.WordleHints(data, level)
	if err != nil {
		respondErr(c, err, "error building wordle hints")
		return
	}

	respond(c, http.StatusOK, HintsResponse{
		Number: data.Number,
		Date:   model.DateKey(data.Date),
		Level:  level,
		Hints:  hints,
	})
}

func (h *PuzzleHandler) TestWordle(c *gin.Context) {
	respond(c, http.StatusOK, h.wordle.TestConnection(c.Request.Context()))
}

func (h *PuzzleHandler) GetConnections(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		respondErr(c, err, "error parsing date")
		return
	}
	level, withHints, err := getQueryLevel(c)
	if err != nil {
		respondErr(c, err, "error parsing level")
		return
	}

	p, err := h.connections.ForDate(c.Request.Context(), date)
	if err != nil {
		respondErr(c, err, "error fetching connections", "date", c.Query("date"))
		return
	}

	if withHints {
		if p.Hints, err = service.ConnectionsHints(p, level); err != nil {
			respondErr(c, err, "error building connections hints")
			return
		}
	}
	respond(c, http.StatusOK, p)
}

func (h *PuzzleHandler) GetStrands(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		respondErr(c, err, "error parsing date")
		return
	}
	level, withHints, err := getQueryLevel(c)
	if err != nil {
		respondErr(c, err, "error parsing level")
		return
	}

	p, err := h.strands.ForDate(c.Request.Context(), date)
	if err != nil {
		respondErr(c, err, "error fetching strands", "date", c.Query("date"))
		return
	}

	if withHints {
		if p.Hints, err = service.StrandsHints(p, level); err != nil {
			respondErr(c, err, "error building strands hints")
			return
		}
	}
	respond(c, http.StatusOK, p)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/amosoni/Wordle-Hint-sub001/internal/game"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/gin-gonic/gin"
)

type GameCatalog interface {
	All() []model.Game
	ByID(id string) *model.Game
	Search(query string) []model.Game
	Filter(f game.Filter) []model.Game
	Categories() []game.CategoryCount
}

type GameHandler struct {
	games GameCatalog
}

func NewGameHandler(games GameCatalog) *GameHandler {
	return &GameHandler{games: games}
}

// GetGames searches when q is set and filters otherwise.
func (h *GameHandler) GetGames(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		respond(c, http.StatusOK, h.games.Search(q))
		return
	}

	f := game.Filter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Tag:        c.Query("tag"),
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "featured must be true or false")
			return
		}
		f.Featured = &featured
	}

	respond(c, http.StatusOK, h.games.Filter(f))
}

func (h *GameHandler) GetCategories(c *gin.Context) {
	respond(c, http.StatusOK, h.games.Categories())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	g := h.games.ByID(c.Param("id"))
	if g == nil {
		respondError(c, http.StatusNotFound, "Game not found")
		return
	}
	respond(c, http.StatusOK, g)
}

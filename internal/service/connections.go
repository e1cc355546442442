package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/cache"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/puzzle"
)

// groupColors maps group difficulty (0 easiest) to its board color.
var groupColors = []string{"yellow", "green", "blue", "purple"}

type ConnectionsService struct {
	sources []puzzle.ConnectionsSource
	cache   *dailyCache[model.ConnectionsPuzzle]
	opts    options
}

func NewConnectionsService(sources []puzzle.ConnectionsSource, c cache.Cache, ttl time.Duration, opts ...Option) *ConnectionsService {
	return &ConnectionsService{
		sources: sources,
		cache:   newDailyCache[model.ConnectionsPuzzle]("connections", c, ttl),
		opts:    buildOptions(opts),
	}
}

func (s *ConnectionsService) Today(ctx context.Context) (*model.ConnectionsPuzzle, error) {
	return s.ForDate(ctx, s.opts.now())
}

func (s *ConnectionsService) ForDate(ctx context.Context, date time.Time) (*model.ConnectionsPuzzle, error) {
	day, err := puzzle.CheckDate(date, s.opts.now())
	if err != nil {
		return nil, err
	}
	return s.cache.get(ctx, day, func(ctx context.Context) (*model.ConnectionsPuzzle, bool) {
		return s.load(ctx, day)
	})
}

func (s *ConnectionsService) load(ctx context.Context, day time.Time) (*model.ConnectionsPuzzle, bool) {
	var source string
	c, ok := fetchFirst(ctx, "connections", s.sources, s.opts.retry, func(ctx context.Context, src puzzle.ConnectionsSource) (*puzzle.Connections, error) {
		c, err := src.FetchConnections(ctx, day)
		if err == nil {
			source = src.Name()
		}
		return c, err
	})
	if !ok {
		slog.Warn("all connections sources failed, using fallback puzzle", "date", model.DateKey(day))
		c = puzzle.FallbackConnections(day)
		source = model.SourceFallback
	}

	groups := make([]model.ConnectionsGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		color := ""
		if g.Level >= 0 && g.Level < len(groupColors) {
			color = groupColors[g.Level]
		}
		groups = append(groups, model.ConnectionsGroup{
			Title: g.Title,
			Color: color,
			Level: g.Level,
			Words: g.Words,
		})
	}

	return &model.ConnectionsPuzzle{
		ID:     c.ID,
		Date:   day,
		Words:  puzzle.ShuffledWords(c.Groups, int64(puzzle.WordleNumber(day))),
		Groups: groups,
		Source: source,
		IsReal: ok,
	}, ok
}

func (s *ConnectionsService) TestConnection(ctx context.Context) model.ConnectionReport {
	today := s.opts.now()
	return probe(ctx, s.sources, today, s.opts.probeTimeout(), func(ctx context.Context, src puzzle.ConnectionsSource) error {
		_, err := src.FetchConnections(ctx, today)
		return err
	})
}

// ConnectionsHints returns every hint up to and including level. Level 1
// names the group themes, level 2 reveals one word per group and level 3
// gives the full groups.
func ConnectionsHints(p *model.ConnectionsPuzzle, level int) ([]model.Hint, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	var hints []model.Hint
	for _, g := range p.Groups {
		hints = append(hints, model.Hint{Level: 1, Text: fmt.Sprintf("The %s group: %s.", g.Color, g.Title)})
	}
	if level >= 2 {
		for _, g := range p.Groups {
			if len(g.Words) == 0 {
				continue
			}
			hints = append(hints, model.Hint{Level: 2, Text: fmt.Sprintf("%s belongs to the %s group.", g.Words[0], g.Color)})
		}
	}
	if level >= 3 {
		for _, g := range p.Groups {
			hints = append(hints, model.Hint{Level: 3, Text: fmt.Sprintf("%s: %s.", g.Title, strings.Join(g.Words, ", "))})
		}
	}
	return hints, nil
}

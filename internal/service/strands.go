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

type StrandsService struct {
	sources []puzzle.StrandsSource
	cache   *dailyCache[model.StrandsPuzzle]
	opts    options
}

func NewStrandsService(sources []puzzle.StrandsSource, c cache.Cache, ttl time.Duration, opts ...Option) *StrandsService {
	return &StrandsService{
		sources: sources,
		cache:   newDailyCache[model.StrandsPuzzle]("strands", c, ttl),
		opts:    buildOptions(opts),
	}
}

func (s *StrandsService) Today(ctx context.Context) (*model.StrandsPuzzle, error) {
	return s.ForDate(ctx, s.opts.now())
}

func (s *StrandsService) ForDate(ctx context.Context, date time.Time) (*model.StrandsPuzzle, error) {
	day, err := puzzle.CheckDate(date, s.opts.now())
	if err != nil {
		return nil, err
	}
	return s.cache.get(ctx, day, func(ctx context.Context) (*model.StrandsPuzzle, bool) {
		return s.load(ctx, day)
	})
}

func (s *StrandsService) load(ctx context.Context, day time.Time) (*model.StrandsPuzzle, bool) {
	var source string
	st, ok := fetchFirst(ctx, "strands", s.sources, s.opts.retry, func(ctx context.Context, src puzzle.StrandsSource) (*puzzle.Strands, error) {
		st, err := src.FetchStrands(ctx, day)
		if err == nil {
			source = src.Name()
		}
		return st, err
	})
	if !ok {
		slog.Warn("all strands sources failed, using fallback puzzle", "date", model.DateKey(day))
		st = puzzle.FallbackStrands(day)
		source = model.SourceFallback
	}

	return &model.StrandsPuzzle{
		ID:         st.ID,
		Date:       day,
		Clue:       st.Clue,
		Spangram:   st.Spangram,
		ThemeWords: st.ThemeWords,
		Board:      st.Board,
		Source:     source,
		IsReal:     ok,
	}, ok
}

func (s *StrandsService) TestConnection(ctx context.Context) model.ConnectionReport {
	today := s.opts.now()
	return probe(ctx, s.sources, today, s.opts.probeTimeout(), func(ctx context.Context, src puzzle.StrandsSource) error {
		_, err := src.FetchStrands(ctx, today)
		return err
	})
}

// StrandsHints returns every hint up to and including level. Level 1 is the
// theme, level 2 the first letters of the spangram and theme words, level 3
// the answers.
func StrandsHints(p *model.StrandsPuzzle, level int) ([]model.Hint, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	hints := []model.Hint{
		{Level: 1, Text: fmt.Sprintf("Today's theme: %q.", p.Clue)},
		{Level: 1, Text: fmt.Sprintf("There are %d theme words plus a spangram.", len(p.ThemeWords))},
	}

	if level >= 2 {
		hints = append(hints, model.Hint{Level: 2, Text: fmt.Sprintf("The spangram starts with %s and has %d letters.", firstLetter(p.Spangram), len(p.Spangram))})
		initials := make([]string, 0, len(p.ThemeWords))
		for _, w := range p.ThemeWords {
			initials = append(initials, firstLetter(w))
		}
		hints = append(hints, model.Hint{Level: 2, Text: "Theme words start with: " + strings.Join(initials, ", ") + "."})
	}

	if level >= 3 {
		hints = append(hints,
			model.Hint{Level: 3, Text: "Spangram: " + p.Spangram + "."},
			model.Hint{Level: 3, Text: "Theme words: " + strings.Join(p.ThemeWords, ", ") + "."},
		)
	}
	return hints, nil
}

func firstLetter(w string) string {
	if w == "" {
		return "?"
	}
	return strings.ToUpper(w[:1])
}

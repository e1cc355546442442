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

type WordleService struct {
	sources []puzzle.WordleSource
	cache   *dailyCache[model.WordleDailyData]
	opts    options
}

func NewWordleService(sources []puzzle.WordleSource, c cache.Cache, ttl time.Duration, opts ...Option) *WordleService {
	return &WordleService{
		sources: sources,
		cache:   newDailyCache[model.WordleDailyData]("wordle", c, ttl),
		opts:    buildOptions(opts),
	}
}

func (s *WordleService) Today(ctx context.Context) (*model.WordleDailyData, error) {
	return s.ForDate(ctx, s.opts.now())
}

// ForDate returns the Wordle for date. Endpoint failures are never returned;
// the local fallback word is used instead.
func (s *WordleService) ForDate(ctx context.Context, date time.Time) (*model.WordleDailyData, error) {
	day, err := puzzle.CheckDate(date, s.opts.now())
	if err != nil {
		return nil, err
	}
	return s.cache.get(ctx, day, func(ctx context.Context) (*model.WordleDailyData, bool) {
		return s.load(ctx, day)
	})
}

func (s *WordleService) load(ctx context.Context, day time.Time) (*model.WordleDailyData, bool) {
	var source string
	w, ok := fetchFirst(ctx, "wordle", s.sources, s.opts.retry, func(ctx context.Context, src puzzle.WordleSource) (*puzzle.Wordle, error) {
		w, err := src.FetchWordle(ctx, day)
		if err == nil {
			source = src.Name()
		}
		return w, err
	})
	if !ok {
		slog.Warn("all wordle sources failed, using fallback word", "date", model.DateKey(day))
		w = puzzle.FallbackWordle(day)
		source = model.SourceFallback
	}

	return &model.WordleDailyData{
		Word:      strings.ToLower(w.Word),
		Number:    w.Number,
		Date:      day,
		Source:    source,
		IsReal:    ok,
		FetchedAt: s.opts.now().UTC(),
	}, ok
}

// Refresh drops today's cached Wordle and fetches it again.
func (s *WordleService) Refresh(ctx context.Context) (*model.WordleDailyData, error) {
	today := puzzle.Day(s.opts.now())
	if err := s.cache.forget(ctx, today); err != nil {
		slog.Warn("failed to drop cached wordle", "date", model.DateKey(today), "error", err)
	}
	return s.ForDate(ctx, today)
}

func (s *WordleService) TestConnection(ctx context.Context) model.ConnectionReport {
	today := s.opts.now()
	return probe(ctx, s.sources, today, s.opts.probeTimeout(), func(ctx context.Context, src puzzle.WordleSource) error {
		_, err := src.FetchWordle(ctx, today)
		return err
	})
}

const vowels = "aeiou"

// WordleHints returns every hint up to and including level.
func WordleHints(data *model.WordleDailyData, level int) ([]model.Hint, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	word := strings.ToLower(data.Word)
	if word == "" {
		return nil, fmt.Errorf("no word to build hints from")
	}
	hints := []model.Hint{{Level: 1, Text: vowelHint(word)}}
	if repeated := repeatedLetters(word); repeated != "" {
		hints = append(hints, model.Hint{Level: 1, Text: "One letter appears more than once."})
	} else {
		hints = append(hints, model.Hint{Level: 1, Text: "No letter repeats."})
	}

	if level >= 2 {
		hints = append(hints,
			model.Hint{Level: 2, Text: fmt.Sprintf("It starts with %s.", strings.ToUpper(word[:1]))},
			model.Hint{Level: 2, Text: fmt.Sprintf("It ends with %s.", strings.ToUpper(word[len(word)-1:]))},
		)
	}

	if level >= 3 {
		hints = append(hints, model.Hint{Level: 3, Text: fmt.Sprintf("The answer to Wordle #%d is %s.", data.Number, strings.ToUpper(word))})
	}
	return hints, nil
}

func vowelHint(word string) string {
	n := 0
	for _, r := range word {
		if strings.ContainsRune(vowels, r) {
			n++
		}
	}
	switch n {
	case 0:
		return "There are no vowels (A, E, I, O, U) in today's word."
	case 1:
		return "Today's word has 1 vowel."
	default:
		return fmt.Sprintf("Today's word has %d vowels.", n)
	}
}

func repeatedLetters(word string) string {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range word {
		if seen[r] && !strings.ContainsRune(string(out), r) {
			out = append(out, r)
		}
		seen[r] = true
	}
	return string(out)
}

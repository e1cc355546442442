package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const userAgent = "wordlehint/1.0 (+https://github.com/amosoni/Wordle-Hint-sub001)"

// JSONClient reads NYT-style daily puzzle documents from a URL template
// containing "{date}".
type JSONClient struct {
	name        string
	urlTemplate string
	httpClient  *http.Client
}

func NewJSONClient(name, urlTemplate string, timeout time.Duration) *JSONClient {
	return &JSONClient{
		name:        name,
		urlTemplate: urlTemplate,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *JSONClient) Name() string {
	return c.name
}

func (c *JSONClient) Endpoint() string {
	return c.urlTemplate
}

func (c *JSONClient) FetchWordle(ctx context.Context, date time.Time) (*Wordle, error) {
	var raw wordleResponse
	if err := c.getJSON(ctx, date, &raw); err != nil {
		return nil, err
	}

	word := strings.ToLower(strings.TrimSpace(raw.Solution))
	if !IsWordleWord(word) {
		return nil, fmt.Errorf("%s: solution %q: %w", c.name, raw.Solution, ErrMalformed)
	}

	number := raw.DaysSinceLaunch
	if number == 0 {
		number = WordleNumber(date)
	}

	return &Wordle{
		ID:     raw.ID,
		Word:   word,
		Number: number,
		Date:   parseDateOr(raw.PrintDate, date),
		Editor: raw.Editor,
	}, nil
}

func (c *JSONClient) FetchConnections(ctx context.Context, date time.Time) (*Connections, error) {
	var raw connectionsResponse
	if err := c.getJSON(ctx, date, &raw); err != nil {
		return nil, err
	}

	if len(raw.Categories) != 4 {
		return nil, fmt.Errorf("%s: %d categories: %w", c.name, len(raw.Categories), ErrMalformed)
	}

	groups := make([]ConnectionsGroup, 0, len(raw.Categories))
	for level, category := range raw.Categories {
		if len(category.Cards) != 4 {
			return nil, fmt.Errorf("%s: category %q has %d cards: %w", c.name, category.Title, len(category.Cards), ErrMalformed)
		}
		words := make([]string, 0, len(category.Cards))
		for _, card := range category.Cards {
			words = append(words, strings.ToUpper(card.Content))
		}
		groups = append(groups, ConnectionsGroup{
			Title: category.Title,
			Level: level,
			Words: words,
		})
	}

	return &Connections{
		ID:     raw.ID,
		Date:   parseDateOr(raw.PrintDate, date),
		Groups: groups,
	}, nil
}

func (c *JSONClient) FetchStrands(ctx context.Context, date time.Time) (*Strands, error) {
	var raw strandsResponse
	if err := c.getJSON(ctx, date, &raw); err != nil {
		return nil, err
	}

	if raw.Spangram == "" || len(raw.ThemeWords) == 0 || len(raw.StartingBoard) == 0 {
		return nil, fmt.Errorf("%s: incomplete strands puzzle: %w", c.name, ErrMalformed)
	}

	return &Strands{
		ID:         raw.ID,
		Date:       parseDateOr(raw.PrintDate, date),
		Clue:       raw.Clue,
		Spangram:   strings.ToUpper(raw.Spangram),
		ThemeWords: upperAll(raw.ThemeWords),
		Board:      raw.StartingBoard,
	}, nil
}

func (c *JSONClient) getJSON(ctx context.Context, date time.Time, out any) error {
	url := ExpandURL(c.urlTemplate, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s fetch: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %s: %w", c.name, DateKey(date), ErrNotPublished)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Source: c.name, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %v: %w", c.name, err, ErrMalformed)
	}
	return nil
}

// ExpandURL substitutes {date} with the YYYY-MM-DD form of date.
func ExpandURL(template string, date time.Time) string {
	return strings.ReplaceAll(template, "{date}", DateKey(date))
}

func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func parseDateOr(value string, fallback time.Time) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Day(fallback)
	}
	return t
}

func upperAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}

// IsWordleWord reports whether w is five lowercase ASCII letters.
func IsWordleWord(w string) bool {
	if len(w) != 5 {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

type wordleResponse struct {
	ID              int    `json:"id"`
	Solution        string `json:"solution"`
	PrintDate       string `json:"print_date"`
	DaysSinceLaunch int    `json:"days_since_launch"`
	Editor          string `json:"editor"`
}

type connectionsResponse struct {
	Status     string                `json:"status"`
	ID         int                   `json:"id"`
	PrintDate  string                `json:"print_date"`
	Categories []connectionsCategory `json:"categories"`
}

type connectionsCategory struct {
	Title string            `json:"title"`
	Cards []connectionsCard `json:"cards"`
}

type connectionsCard struct {
	Content  string `json:"content"`
	Position int    `json:"position"`
}

type strandsResponse struct {
	ID            int      `json:"id"`
	PrintDate     string   `json:"printDate"`
	Clue          string   `json:"clue"`
	Spangram      string   `json:"spangram"`
	ThemeWords    []string `json:"themeWords"`
	StartingBoard []string `json:"startingBoard"`
}

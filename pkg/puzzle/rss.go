package puzzle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

var (
	rssNumberRe = regexp.MustCompile(`(?i)wordle\s*#?\s*(\d[\d,]*)`)
	rssAnswerRe = regexp.MustCompile(`(?i)(?:answer|solution)[^:]*:\s*["']?([a-z]{5})\b`)
)

// RSSClient finds the Wordle answer in a feed whose item titles look like
// "Wordle #1581 answer for October 17: CRANE".
type RSSClient struct {
	name   string
	url    string
	parser *gofeed.Parser
}

func NewRSSClient(name, url string, timeout time.Duration) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent
	return &RSSClient{name: name, url: url, parser: parser}
}

func (c *RSSClient) Name() string {
	return c.name
}

func (c *RSSClient) Endpoint() string {
	return c.url
}

func (c *RSSClient) FetchWordle(ctx context.Context, date time.Time) (*Wordle, error) {
	feed, err := c.parser.ParseURLWithContext(ExpandURL(c.url, date), ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &StatusError{Source: c.name, StatusCode: httpErr.StatusCode}
		}
		return nil, fmt.Errorf("%s fetch: %w", c.name, err)
	}

	want := WordleNumber(date)
	for _, item := range feed.Items {
		number, word, ok := parseRSSTitle(item.Title)
		if !ok {
			continue
		}
		if number == want || (number == 0 && sameDay(item.PublishedParsed, date)) {
			return &Wordle{
				Word:   word,
				Number: want,
				Date:   Day(date),
			}, nil
		}
	}

	return nil, fmt.Errorf("%s: no item for wordle #%d: %w", c.name, want, ErrNotPublished)
}

func parseRSSTitle(title string) (number int, word string, ok bool) {
	answer := rssAnswerRe.FindStringSubmatch(title)
	if answer == nil {
		return 0, "", false
	}
	word = strings.ToLower(answer[1])

	if m := rssNumberRe.FindStringSubmatch(title); m != nil {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil {
			number = n
		}
	}
	return number, word, true
}

func sameDay(t *time.Time, date time.Time) bool {
	if t == nil {
		return false
	}
	return DateKey(t.UTC()) == DateKey(date)
}

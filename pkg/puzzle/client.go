package puzzle

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformed marks a response that decoded but did not carry a usable puzzle.
	ErrMalformed = errors.New("malformed puzzle response")
	// ErrNotPublished means the source has no puzzle for the requested date.
	ErrNotPublished = errors.New("puzzle not published")
	// ErrInvalidDate is a date outside the range any puzzle exists for.
	ErrInvalidDate = errors.New("invalid puzzle date")
)

type Wordle struct {
	ID     int
	Word   string
	Number int
	Date   time.Time
	Editor string
}

type ConnectionsGroup struct {
	Title string
	Level int
	Words []string
}

type Connections struct {
	ID     int
	Date   time.Time
	Groups []ConnectionsGroup
}

type Strands struct {
	ID         int
	Date       time.Time
	Clue       string
	Spangram   string
	ThemeWords []string
	Board      []string
}

type Source interface {
	Name() string
	Endpoint() string
}

type WordleSource interface {
	Source
	FetchWordle(ctx context.Context, date time.Time) (*Wordle, error)
}

type ConnectionsSource interface {
	Source
	FetchConnections(ctx context.Context, date time.Time) (*Connections, error)
}

type StrandsSource interface {
	Source
	FetchStrands(ctx context.Context, date time.Time) (*Strands, error)
}

// StatusError is a non-200 answer from a puzzle endpoint.
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}

// Temporary reports whether retrying the same request can succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 408 || e.StatusCode == 429
}

var wordleEpoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// WordleNumber is the puzzle number for date; 2021-06-19 is puzzle #0.
func WordleNumber(date time.Time) int {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(wordleEpoch).Hours() / 24)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckDate truncates date to its day and rejects days before Wordle #0 or
// more than one day ahead of now.
func CheckDate(date, now time.Time) (time.Time, error) {
	day := Day(date)
	if day.Before(wordleEpoch) {
		return time.Time{}, fmt.Errorf("%w: %s is before the first puzzle", ErrInvalidDate, DateKey(day))
	}
	if day.After(Day(now).AddDate(0, 0, 1)) {
		return time.Time{}, fmt.Errorf("%w: %s is in the future", ErrInvalidDate, DateKey(day))
	}
	return day, nil
}

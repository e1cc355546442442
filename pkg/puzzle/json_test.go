package puzzle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

var testDate = time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

func newJSONServer(t *testing.T, status int, payload interface{}) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &gotPath
}

func TestExpandURL(t *testing.T) {
	got := ExpandURL("https://example.com/svc/wordle/v2/{date}.json", testDate)
	assert.Equal(t, "https://example.com/svc/wordle/v2/2026-10-17.json", got)
}

func TestWordleNumber(t *testing.T) {
	assert.Equal(t, 0, WordleNumber(time.Date(2021, time.June, 19, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, WordleNumber(time.Date(2021, time.June, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1946, WordleNumber(testDate))
}

func TestCheckDate(t *testing.T) {
	now := testDate.Add(9 * time.Hour)

	day, err := CheckDate(time.Date(2021, time.June, 19, 15, 0, 0, 0, time.UTC), now)
	assert.Equal(t, nil, err)
	assert.Equal(t, "2021-06-19", DateKey(day))

	_, err = CheckDate(testDate.AddDate(0, 0, 1), now)
	assert.Equal(t, nil, err)

	_, err = CheckDate(time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), now)
	assert.Equal(t, true, errors.Is(err, ErrInvalidDate))

	_, err = CheckDate(testDate.AddDate(0, 0, 2), now)
	assert.Equal(t, true, errors.Is(err, ErrInvalidDate))
}

func TestFetchWordle(t *testing.T) {
	payload := map[string]interface{}{
		"id":                2512,
		"solution":          "CRANE",
		"print_date":        "2026-10-17",
		"days_since_launch": 1946,
		"editor":            "Tracy Bennett",
	}
	srv, path := newJSONServer(t, http.StatusOK, payload)

	client := NewJSONClient("nyt", srv.URL+"/svc/wordle/v2/{date}.json", time.Second)
	got, err := client.FetchWordle(context.Background(), testDate)

	assert.Equal(t, nil, err)
	assert.Equal(t, "/svc/wordle/v2/2026-10-17.json", *path)
	assert.Equal(t, "crane", got.Word)
	assert.Equal(t, 1946, got.Number)
	assert.Equal(t, 2512, got.ID)
	assert.Equal(t, true, got.Date.Equal(testDate))
}

func TestFetchWordle_ComputesMissingNumber(t *testing.T) {
	srv, _ := newJSONServer(t, http.StatusOK, map[string]interface{}{"solution": "slate"})

	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	got, err := client.FetchWordle(context.Background(), testDate)

	assert.Equal(t, nil, err)
	assert.Equal(t, WordleNumber(testDate), got.Number)
}

func TestFetchWordle_Malformed(t *testing.T) {
	srv, _ := newJSONServer(t, http.StatusOK, map[string]interface{}{"solution": "toolong"})

	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	_, err := client.FetchWordle(context.Background(), testDate)

	assert.Equal(t, true, errors.Is(err, ErrMalformed))
	assert.Equal(t, false, Retryable(err))
}

func TestFetchWordle_StatusErrors(t *testing.T) {
	srv, _ := newJSONServer(t, http.StatusNotFound, map[string]string{})
	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	_, err := client.FetchWordle(context.Background(), testDate)
	assert.Equal(t, true, errors.Is(err, ErrNotPublished))

	srv, _ = newJSONServer(t, http.StatusBadGateway, map[string]string{})
	client = NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	_, err = client.FetchWordle(context.Background(), testDate)

	var statusErr *StatusError
	assert.Equal(t, true, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, true, Retryable(err))
}

func TestFetchConnections(t *testing.T) {
	categories := []map[string]interface{}{}
	titles := []string{"Fish", "Planets", "Poker terms", "___BALL"}
	for i, title := range titles {
		cards := []map[string]interface{}{}
		for j := 0; j < 4; j++ {
			cards = append(cards, map[string]interface{}{"content": title[:1] + string(rune('a'+i)) + string(rune('a'+j)), "position": i*4 + j})
		}
		categories = append(categories, map[string]interface{}{"title": title, "cards": cards})
	}
	payload := map[string]interface{}{
		"status":     "OK",
		"id":         870,
		"print_date": "2026-10-17",
		"categories": categories,
	}
	srv, _ := newJSONServer(t, http.StatusOK, payload)

	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	got, err := client.FetchConnections(context.Background(), testDate)

	assert.Equal(t, nil, err)
	assert.Equal(t, 870, got.ID)
	assert.Equal(t, 4, len(got.Groups))
	assert.Equal(t, "Planets", got.Groups[1].Title)
	assert.Equal(t, 1, got.Groups[1].Level)
	assert.Equal(t, "PBA", got.Groups[1].Words[0])
}

func TestFetchConnections_WrongShape(t *testing.T) {
	payload := map[string]interface{}{
		"categories": []map[string]interface{}{{"title": "only one", "cards": []map[string]interface{}{}}},
	}
	srv, _ := newJSONServer(t, http.StatusOK, payload)

	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	_, err := client.FetchConnections(context.Background(), testDate)

	assert.Equal(t, true, errors.Is(err, ErrMalformed))
}

func TestFetchStrands(t *testing.T) {
	payload := map[string]interface{}{
		"id":            555,
		"printDate":     "2026-10-17",
		"clue":          "Shell game",
		"spangram":      "seafood",
		"themeWords":    []string{"clam", "oyster"},
		"startingBoard": []string{"ABCDEF", "GHIJKL"},
	}
	srv, _ := newJSONServer(t, http.StatusOK, payload)

	client := NewJSONClient("nyt", srv.URL+"/{date}.json", time.Second)
	got, err := client.FetchStrands(context.Background(), testDate)

	assert.Equal(t, nil, err)
	assert.Equal(t, "SEAFOOD", got.Spangram)
	assert.Equal(t, []string{"CLAM", "OYSTER"}, got.ThemeWords)
	assert.Equal(t, "Shell game", got.Clue)
	assert.Equal(t, 2, len(got.Board))
}

func TestIsWordleWord(t *testing.T) {
	assert.Equal(t, true, IsWordleWord("crane"))
	assert.Equal(t, false, IsWordleWord("CRANE"))
	assert.Equal(t, false, IsWordleWord("cran"))
	assert.Equal(t, false, IsWordleWord("cr4ne"))
}

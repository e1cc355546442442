package model

import "time"

const (
	SourceFallback = "fallback"
	SourceManual   = "manual"
)

type WordleDailyData struct {
	Word      string    `json:"word"`
	Number    int       `json:"number"`
	Date      time.Time `json:"date"`
	Source    string    `json:"source"`
	IsReal    bool      `json:"is_real"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Hint struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type ConnectionsGroup struct {
	Title string   `json:"title"`
	Color string   `json:"color"`
	Level int      `json:"level"`
	Words []string `json:"words"`
}

type ConnectionsPuzzle struct {
	ID     int                `json:"id"`
	Date   time.Time          `json:"date"`
	Words  []string           `json:"words"`
	Groups []ConnectionsGroup `json:"groups"`
	Hints  []Hint             `json:"hints,omitempty"`
	Source string             `json:"source"`
	IsReal bool               `json:"is_real"`
}

type StrandsPuzzle struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"date"`
	Clue       string    `json:"clue"`
	Spangram   string    `json:"spangram"`
	ThemeWords []string  `json:"theme_words"`
	Board      []string  `json:"board"`
	Hints      []Hint    `json:"hints,omitempty"`
	Source     string    `json:"source"`
	IsReal     bool      `json:"is_real"`
}

type EndpointCheck struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type ConnectionReport struct {
	OK        bool            `json:"ok"`
	CheckedAt time.Time       `json:"checked_at"`
	Endpoints []EndpointCheck `json:"endpoints"`
}

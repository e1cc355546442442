package model

import "time"

// GenerationRequest is a queued request to build the article set for one puzzle word.
type GenerationRequest struct {
	Word     string    `json:"word"`
	Date     time.Time `json:"date"`
	Force    bool      `json:"force"`
	Attempts int       `json:"attempts"`
	QueuedAt time.Time `json:"queued_at"`
}

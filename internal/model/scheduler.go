package model

import "time"

const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

type JobStatus struct {
	Name           string    `json:"name"`
	Schedule       string    `json:"schedule"`
	Interval       string    `json:"interval"`
	NextRun        time.Time `json:"next_run"`
	LastRun        time.Time `json:"last_run"`
	LastSuccess    time.Time `json:"last_success"`
	LastDurationMS int64     `json:"last_duration_ms"`
	LastError      string    `json:"last_error,omitempty"`
	Runs           int       `json:"runs"`
	Failures       int       `json:"failures"`
	Running        bool      `json:"running"`
}

type SchedulerStatus struct {
	Running   bool        `json:"running"`
	StartedAt time.Time   `json:"started_at"`
	Jobs      []JobStatus `json:"jobs"`
}

type JobHealth struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type HealthReport struct {
	Status    string      `json:"status"`
	CheckedAt time.Time   `json:"checked_at"`
	Jobs      []JobHealth `json:"jobs"`
}

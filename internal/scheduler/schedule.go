package scheduler

import (
	"fmt"
	"time"
)

// Schedule decides when a job is next due.
type Schedule interface {
	Next(after time.Time) time.Time
	// Interval is the nominal gap between runs.
	Interval() time.Duration
	String() string
}

type every struct {
	d time.Duration
}

// Every runs a job at a fixed interval.
func Every(d time.Duration) Schedule {
	return every{d: d}
}

func (e every) Next(after time.Time) time.Time { return after.Add(e.d) }
func (e every) Interval() time.Duration       { return e.d }
func (e every) String() string                { return "every " + e.d.String() }

type daily struct {
	hour, minute int
	loc          *time.Location
}

// Daily runs a job once a day at hour:minute in loc.
func Daily(hour, minute int, loc *time.Location) Schedule {
	if loc == nil {
		loc = time.Local
	}
	return daily{hour: hour, minute: minute, loc: loc}
}

func (d daily) Next(after time.Time) time.Time {
	t := after.In(d.loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), d.hour, d.minute, 0, 0, d.loc)
	if !next.After(t) {
		next = time.Date(t.Year(), t.Month(), t.Day()+1, d.hour, d.minute, 0, 0, d.loc)
	}
	return next
}

func (d daily) Interval() time.Duration { return 24 * time.Hour }
func (d daily) String() string          { return fmt.Sprintf("daily at %02d:%02d", d.hour, d.minute) }

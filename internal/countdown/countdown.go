// Package countdown measures the time left until demo day.
package countdown

import (
	"fmt"
	"time"
)

// Remaining is a duration split into whole days, hours, minutes and seconds.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Done    bool `json:"done"`
}

// Until returns the time left from now to target. Once target is reached
// every field is zero and Done is set.
func Until(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{Done: true}
	}

	total := int(d / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// String renders r the way the dashboard clock does, e.g. "12d 04h 30m 05s".
func (r Remaining) String() string {
	if r.Done {
		return "demo day is here"
	}
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Progress is the elapsed fraction of the start..target window, clamped to
// [0, 1]. A window that is empty or reversed counts as complete once now
// reaches target.
func Progress(start, target, now time.Time) float64 {
	if !now.Before(target) {
		return 1
	}
	if !target.After(start) || !now.After(start) {
		return 0
	}
	return float64(now.Sub(start)) / float64(target.Sub(start))
}

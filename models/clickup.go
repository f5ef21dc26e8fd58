package models

import "time"

// Space is a top-level organizational unit in ClickUp.
type Space struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Folder belongs to exactly one Space and is treated as a project
// when building reports.
type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the ClickUp user a time entry is attributed to. It is never
// persisted; it is distinct from the Account this service stores.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TrackedTime is one logged interval of work against a task.
// Duration, Start and End are in milliseconds (Start/End epoch-based),
// as transmitted by the ClickUp API. The record is immutable once fetched.
type TrackedTime struct {
	ID       int64 `json:"id"`
	Task     Task  `json:"task"`
	User     User  `json:"user"`
	Duration int64 `json:"duration"`
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
}

// StartDate returns the calendar date of the entry start in loc,
// normalized to midnight.
func (t TrackedTime) StartDate(loc *time.Location) time.Time {
	ts := time.UnixMilli(t.Start).In(loc)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc)
}

// NormalizedDuration returns the tracked duration as a time.Duration.
func (t TrackedTime) NormalizedDuration() time.Duration {
	return time.Duration(t.Duration) * time.Millisecond
}

// Package report builds and renders per-project / per-day work-time
// summaries from ClickUp time entries.
package report

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RostHarcha/clickup-tracker/clickup"
	"github.com/RostHarcha/clickup-tracker/models"
	"github.com/RostHarcha/clickup-tracker/pkg/timeutil"
)

// Row is one line of a report: the time worked on a project during one
// calendar day.
type Row struct {
	Date     time.Time
	Project  string
	Duration time.Duration
}

// Report is a finalized summary over [FromDate, ToDate]. Rows from regular
// folders are aggregated per (project, date); rows from the personal folder
// stay per-entry. All totals are derived on demand from Rows.
type Report struct {
	FromDate   time.Time
	ToDate     time.Time
	HourlyRate decimal.Decimal
	Rows       []Row
}

// Options carries everything Create needs to assemble a report.
type Options struct {
	BaseURL          string // empty selects the production ClickUp API
	APIToken         string
	TeamID           int64
	From             time.Time
	To               time.Time
	HourlyRate       decimal.Decimal
	PersonalFolderID *int64
	Location         *time.Location
	Logger           *slog.Logger
}

// Create fetches all tracked time for the team in [opts.From, opts.To] and
// assembles a report. Any fetch failure aborts creation and discards the
// partial rows; the client connection is released in every case.
func Create(ctx context.Context, opts Options) (*Report, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	client := clickup.NewClient(opts.BaseURL, opts.APIToken, opts.Logger)
	defer client.Close()

	byFolder, err := client.GetTeamTrackedTime(ctx, opts.TeamID, opts.From, opts.To)
	if err != nil {
		return nil, err
	}
	rows := folderRows(byFolder, loc)

	if opts.PersonalFolderID != nil {
		entries, err := client.GetTrackedTime(ctx, opts.TeamID, opts.From, opts.To, *opts.PersonalFolderID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, personalRows(entries, loc)...)
	}

	return &Report{
		FromDate:   timeutil.StartOfDay(opts.From.In(loc)),
		ToDate:     timeutil.StartOfDay(opts.To.In(loc)),
		HourlyRate: opts.HourlyRate,
		Rows:       rows,
	}, nil
}

// folderRows groups each folder's entries by start date and emits one row
// per (folder, date) with the durations summed.
func folderRows(byFolder []clickup.FolderTrackedTime, loc *time.Location) []Row {
	var rows []Row
	for _, ft := range byFolder {
		byDate := make(map[time.Time][]models.TrackedTime)
		var order []time.Time
		for _, entry := range ft.Entries {
			date := entry.StartDate(loc)
			if _, seen := byDate[date]; !seen {
				order = append(order, date)
			}
			byDate[date] = append(byDate[date], entry)
		}
		for _, date := range order {
			var total time.Duration
			for _, entry := range byDate[date] {
				total += entry.NormalizedDuration()
			}
			rows = append(rows, Row{Date: date, Project: ft.Folder.Name, Duration: total})
		}
	}
	return rows
}

// personalRows emits one row per entry, labeled with the task name. Entries
// outside formal projects keep task-level visibility instead of collapsing
// into the project/day grid.
func personalRows(entries []models.TrackedTime, loc *time.Location) []Row {
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, Row{
			Date:     entry.StartDate(loc),
			Project:  "(outside projects) - " + entry.Task.Name,
			Duration: entry.NormalizedDuration(),
		})
	}
	return rows
}

// WorkTime is the sum of all row durations.
func (r *Report) WorkTime() time.Duration {
	var total time.Duration
	for _, row := range r.Rows {
		total += row.Duration
	}
	return total
}

// TotalHours is the work time in hours as an exact decimal.
func (r *Report) TotalHours() decimal.Decimal {
	ms := r.WorkTime().Milliseconds()
	return decimal.NewFromInt(ms).Div(decimal.NewFromInt(3600000))
}

// Payment is the billable amount: floor(TotalHours × HourlyRate), in whole
// currency units.
func (r *Report) Payment() int64 {
	return r.TotalHours().Mul(r.HourlyRate).IntPart()
}

// ProjectTotal is one entry of the per-project breakdown.
type ProjectTotal struct {
	Project  string
	Duration time.Duration
}

// ProjectTime sums rows per project, sorted by project name.
func (r *Report) ProjectTime() []ProjectTotal {
	byProject := make(map[string]time.Duration)
	for _, row := range r.Rows {
		byProject[row.Project] += row.Duration
	}
	totals := make([]ProjectTotal, 0, len(byProject))
	for project, d := range byProject {
		totals = append(totals, ProjectTotal{Project: project, Duration: d})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Project < totals[j].Project })
	return totals
}

// DayTotal is one entry of the per-day breakdown.
type DayTotal struct {
	Date     time.Time
	Duration time.Duration
}

// DateTime sums rows per calendar day, chronologically, with one entry for
// every day in [FromDate, ToDate] inclusive. Days without entries appear
// with a zero duration.
func (r *Report) DateTime() []DayTotal {
	byDate := make(map[time.Time]time.Duration)
	for _, row := range r.Rows {
		byDate[row.Date] += row.Duration
	}
	for date := r.FromDate; !date.After(r.ToDate); date = date.AddDate(0, 0, 1) {
		if _, ok := byDate[date]; !ok {
			byDate[date] = 0
		}
	}
	totals := make([]DayTotal, 0, len(byDate))
	for date, d := range byDate {
		totals = append(totals, DayTotal{Date: date, Duration: d})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	return totals
}

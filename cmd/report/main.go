// Command report prints a work-time report to stdout without going through
// the HTTP API. Credentials and billing settings come from the environment
// or an optional YAML settings file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/RostHarcha/clickup-tracker/config"
	"github.com/RostHarcha/clickup-tracker/pkg/timeutil"
	"github.com/RostHarcha/clickup-tracker/report"
)

func main() {
	from := flag.String("from", "", "Start date. Format: DD[.MM[.YY]]")
	to := flag.String("to", "", "Finish date. Format: DD[.MM[.YY]]")
	configPath := flag.String("config", "", "Optional YAML settings file")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings, err := config.LoadWithFile(*configPath)
	if err != nil {
		logger.Error("failed to load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if settings.APIToken == "" || settings.TeamID == 0 || settings.HourlyRate.IsZero() {
		logger.Error("CLICKUP_API_TOKEN, CLICKUP_TEAM_ID and HOURLY_RATE must be configured")
		os.Exit(1)
	}
	location, err := settings.Location()
	if err != nil {
		logger.Error("invalid timezone", slog.String("tz", settings.TimeZone), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Dates are validated before any network call is made.
	now := time.Now().In(location)
	fromDate, err := timeutil.ParseDate(*from, now, location)
	if err != nil {
		logger.Error("invalid -from", slog.String("error", err.Error()))
		os.Exit(1)
	}
	toDate, err := timeutil.ParseDate(*to, now, location)
	if err != nil {
		logger.Error("invalid -to", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rep, err := report.Create(context.Background(), report.Options{
		BaseURL:          settings.ClickUpBaseURL,
		APIToken:         settings.APIToken,
		TeamID:           settings.TeamID,
		From:             timeutil.StartOfDay(fromDate),
		To:               timeutil.EndOfDay(toDate),
		HourlyRate:       settings.HourlyRate,
		PersonalFolderID: settings.PersonalFolderID,
		Location:         location,
		Logger:           logger,
	})
	if err != nil {
		logger.Error("report creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(rep)
}

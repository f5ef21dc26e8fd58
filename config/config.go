// Package config loads process configuration once at startup and threads
// it through constructors, keeping the client and aggregator free of
// ambient state.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Settings is the full process configuration. The HTTP server uses the
// database and default-team parts; the standalone report CLI uses the
// ClickUp credential and billing parts.
type Settings struct {
	APIToken         string
	TeamID           int64
	HourlyRate       decimal.Decimal
	PersonalFolderID *int64
	TimeZone         string
	ClickUpBaseURL   string
	DatabaseURL      string
	HTTPAddr         string
}

// fileSettings mirrors the optional YAML settings file for the CLI.
// Environment variables always take precedence.
type fileSettings struct {
	APIToken         string `yaml:"api_token"`
	TeamID           int64  `yaml:"team_id"`
	HourlyRate       string `yaml:"hourly_rate"`
	PersonalFolderID *int64 `yaml:"personal_folder_id"`
	TimeZone         string `yaml:"time_zone"`
}

// Load reads settings from the environment. Nothing is required here;
// each entry point validates the subset it needs.
func Load() (Settings, error) {
	s := Settings{
		APIToken:       os.Getenv("CLICKUP_API_TOKEN"),
		TimeZone:       os.Getenv("TIME_ZONE"),
		ClickUpBaseURL: os.Getenv("CLICKUP_BASE_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
	}
	if s.TimeZone == "" {
		s.TimeZone = "UTC"
	}
	if s.HTTPAddr == "" {
		s.HTTPAddr = ":8080"
	}

	if v := os.Getenv("CLICKUP_TEAM_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return s, errors.New("CLICKUP_TEAM_ID must be an integer")
		}
		s.TeamID = id
	}
	if v := os.Getenv("HOURLY_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return s, errors.New("HOURLY_RATE must be a decimal number")
		}
		s.HourlyRate = rate
	}
	if v := os.Getenv("PERSONAL_FOLDER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return s, errors.New("PERSONAL_FOLDER_ID must be an integer")
		}
		s.PersonalFolderID = &id
	}
	return s, nil
}

// LoadWithFile loads settings from a YAML file, then overlays environment
// variables on top. Used by the standalone report CLI.
func LoadWithFile(path string) (Settings, error) {
	var file fileSettings
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read settings file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Settings{}, fmt.Errorf("parse settings file: %w", err)
		}
	}

	s, err := Load()
	if err != nil {
		return s, err
	}
	if s.APIToken == "" {
		s.APIToken = file.APIToken
	}
	if s.TeamID == 0 {
		s.TeamID = file.TeamID
	}
	if s.HourlyRate.IsZero() && file.HourlyRate != "" {
		rate, err := decimal.NewFromString(file.HourlyRate)
		if err != nil {
			return s, errors.New("hourly_rate in settings file must be a decimal number")
		}
		s.HourlyRate = rate
	}
	if s.PersonalFolderID == nil {
		s.PersonalFolderID = file.PersonalFolderID
	}
	if os.Getenv("TIME_ZONE") == "" && file.TimeZone != "" {
		s.TimeZone = file.TimeZone
	}
	return s, nil
}

// Location resolves the configured timezone name.
func (s Settings) Location() (*time.Location, error) {
	return time.LoadLocation(s.TimeZone)
}

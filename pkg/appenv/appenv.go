package appenv

import (
	"os"
	"strings"
)

// Env represents the application runtime environment.
// Supported values are strictly "production" and "test".
type Env string

const (
	Production Env = "production"
	Test       Env = "test"
)

// Parse maps a raw APP_ENV value to an Env. Unknown or empty values fall
// back to Production so a misconfigured deploy never runs with relaxed
// test behavior.
func Parse(raw string) Env {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Test):
		return Test
	default:
		return Production
	}
}

// Current returns the effective runtime environment from APP_ENV.
func Current() Env {
	return Parse(os.Getenv("APP_ENV"))
}

func IsProduction() bool { return Current() == Production }
func IsTest() bool       { return Current() == Test }


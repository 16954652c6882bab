// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
	"github.com/lsdforum/meeting-raffle/internal/service"
)

// Zoom authentication modes.
const (
	authModeJWT      = "jwt"
	authModeS2SOAuth = "s2s_oauth"
)

// environment are the environment variables for the report run. A .env file
// loaded beforehand feeds the same lookups.
type environment struct {
	AuthMode string

	// jwt mode credentials
	APIKey    string
	APISecret string

	// s2s_oauth mode credentials
	AccountID    string
	ClientID     string
	ClientSecret string

	UserID      string
	WindowStart time.Time
	WindowEnd   time.Time

	PayingMemberList     string
	DelinquentMemberList string
	LeadershipList       string

	DataDir          string
	ReportTimezone   string
	MinEligibleHours float64
	HTTPTimeout      time.Duration
	FetchWorkers     int
}

func requireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", domain.NewValidationError(fmt.Sprintf("%s must be set", name))
	}
	return v, nil
}

// parseEnv parses and validates the environment for a run. All three user
// credentials come from configuration; nothing is hardcoded.
func parseEnv() (environment, error) {
	env := environment{
		AuthMode:         authModeJWT,
		DataDir:          "data",
		ReportTimezone:   "US/Eastern",
		MinEligibleHours: service.DefaultMinEligibleHours,
		HTTPTimeout:      api.DefaultClientTimeout,
		FetchWorkers:     1,
	}

	if mode := os.Getenv("ZOOM_AUTH_MODE"); mode != "" {
		if mode != authModeJWT && mode != authModeS2SOAuth {
			return env, domain.NewValidationError(fmt.Sprintf("ZOOM_AUTH_MODE must be %q or %q", authModeJWT, authModeS2SOAuth))
		}
		env.AuthMode = mode
	}

	var err error
	switch env.AuthMode {
	case authModeJWT:
		if env.APIKey, err = requireEnv("ZOOM_API_KEY"); err != nil {
			return env, err
		}
		if env.APISecret, err = requireEnv("ZOOM_API_SECRET"); err != nil {
			return env, err
		}
	case authModeS2SOAuth:
		if env.AccountID, err = requireEnv("ZOOM_ACCOUNT_ID"); err != nil {
			return env, err
		}
		if env.ClientID, err = requireEnv("ZOOM_CLIENT_ID"); err != nil {
			return env, err
		}
		if env.ClientSecret, err = requireEnv("ZOOM_CLIENT_SECRET"); err != nil {
			return env, err
		}
	}

	if env.UserID, err = requireEnv("ZOOM_USER_ID"); err != nil {
		return env, err
	}

	windowStart, err := requireEnv("WINDOW_START")
	if err != nil {
		return env, err
	}
	if env.WindowStart, err = time.Parse(api.StartTimeFormat, windowStart); err != nil {
		return env, domain.NewValidationError("WINDOW_START must be a UTC timestamp like 2021-08-26T00:00:00Z", err)
	}
	windowEnd, err := requireEnv("WINDOW_END")
	if err != nil {
		return env, err
	}
	if env.WindowEnd, err = time.Parse(api.StartTimeFormat, windowEnd); err != nil {
		return env, domain.NewValidationError("WINDOW_END must be a UTC timestamp like 2021-08-27T00:00:00Z", err)
	}
	if env.WindowEnd.Before(env.WindowStart) {
		return env, domain.NewValidationError("WINDOW_END must not be before WINDOW_START")
	}

	if env.PayingMemberList, err = requireEnv("PAYING_MEMBER_LIST"); err != nil {
		return env, err
	}
	if env.DelinquentMemberList, err = requireEnv("DELINQUENT_MEMBER_LIST"); err != nil {
		return env, err
	}
	if env.LeadershipList, err = requireEnv("LEADERSHIP_LIST"); err != nil {
		return env, err
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		env.DataDir = v
	}
	if v := os.Getenv("REPORT_TIMEZONE"); v != "" {
		env.ReportTimezone = v
	}
	if v := os.Getenv("MIN_ELIGIBLE_HOURS"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours < 0 {
			return env, domain.NewValidationError("MIN_ELIGIBLE_HOURS must be a non-negative number", err)
		}
		env.MinEligibleHours = hours
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return env, domain.NewValidationError("HTTP_TIMEOUT must be a positive duration like 30s", err)
		}
		env.HTTPTimeout = timeout
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil || workers < 1 {
			return env, domain.NewValidationError("FETCH_WORKERS must be a positive integer", err)
		}
		env.FetchWorkers = workers
	}

	return env, nil
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package main is the meeting attendance report: it discovers the scheduled
// meetings in a time window, collects attendance and registrations, writes
// per-meeting CSV artifacts, and draws a raffle winner among eligible
// attendees.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/report"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/roster"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
	"github.com/lsdforum/meeting-raffle/internal/logging"
	"github.com/lsdforum/meeting-raffle/internal/service"
)

type flags struct {
	EnvFile     string
	DataDir     string
	WindowStart string
	WindowEnd   string
	DryRun      bool
	Debug       bool
}

func main() {
	var f flags

	cmd := &cobra.Command{
		Use:   "meeting-report",
		Short: "Report attendance for scheduled Zoom meetings and draw a raffle winner",
		Long: `meeting-report retrieves attendance and registration data for every
scheduled Zoom meeting in a time window, writes per-meeting CSV artifacts,
prints attendance and registration statistics, and draws a prize winner among
eligible attendees validated against the paid-membership roster.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.EnvFile, "env-file", ".env", "file to read environment variables from")
	cmd.Flags().StringVar(&f.DataDir, "data-dir", "", "directory for per-meeting artifacts (overrides DATA_DIR)")
	cmd.Flags().StringVar(&f.WindowStart, "window-start", "", "window start, UTC (overrides WINDOW_START)")
	cmd.Flags().StringVar(&f.WindowEnd, "window-end", "", "window end, UTC (overrides WINDOW_END)")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false, "skip writing artifacts")
	cmd.Flags().BoolVarP(&f.Debug, "debug", "d", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	// A missing .env file is fine when the environment is already populated.
	if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.NewValidationError("cannot load env file "+f.EnvFile, err)
	}

	if f.Debug {
		_ = os.Setenv("LOG_LEVEL", "debug")
	}
	// Flag overrides take effect through the environment so that parseEnv
	// stays the single source of configuration.
	if f.DataDir != "" {
		_ = os.Setenv("DATA_DIR", f.DataDir)
	}
	if f.WindowStart != "" {
		_ = os.Setenv("WINDOW_START", f.WindowStart)
	}
	if f.WindowEnd != "" {
		_ = os.Setenv("WINDOW_END", f.WindowEnd)
	}

	logging.InitStructureLogConfig()

	env, err := parseEnv()
	if err != nil {
		slog.With(logging.ErrKey, err).Error("invalid configuration")
		return err
	}

	ctx = logging.AppendCtx(ctx, slog.String("run_id", uuid.New().String()))

	reportingZone, err := time.LoadLocation(env.ReportTimezone)
	if err != nil {
		slog.ErrorContext(ctx, "invalid reporting timezone", "timezone", env.ReportTimezone, logging.ErrKey, err)
		return domain.NewValidationError("REPORT_TIMEZONE is not a valid timezone name", err)
	}

	// Roster failures are fatal: no meaningful processing without them.
	leadership, err := roster.LoadLeadershipRoster(env.LeadershipList)
	if err != nil {
		slog.ErrorContext(ctx, "cannot load leadership roster", logging.ErrKey, err)
		return err
	}
	members, err := roster.LoadMemberRoster(env.PayingMemberList)
	if err != nil {
		slog.ErrorContext(ctx, "cannot load paying member roster", logging.ErrKey, err)
		return err
	}

	// Lowercased derivatives are written alongside both member lists.
	for _, path := range []string{env.PayingMemberList, env.DelinquentMemberList} {
		processed, err := roster.WriteLowercasedRoster(path)
		if err != nil {
			slog.ErrorContext(ctx, "cannot write lowercased roster", "roster", path, logging.ErrKey, err)
			return err
		}
		slog.InfoContext(ctx, "wrote lowercased roster", "path", processed)
	}

	var tokens api.TokenSource
	switch env.AuthMode {
	case authModeS2SOAuth:
		tokens = api.NewOAuthTokenSource(ctx, api.OAuthConfig{
			AccountID:    env.AccountID,
			ClientID:     env.ClientID,
			ClientSecret: env.ClientSecret,
		})
	default:
		tokens = api.NewJWTTokenSource(env.APIKey, env.APISecret)
	}

	client := api.NewClient(api.Config{Timeout: env.HTTPTimeout}, tokens)

	runner := service.NewRunner(
		client,
		leadership,
		members,
		report.NewConsolePrinter(os.Stdout),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		service.RunnerConfig{
			UserID:           env.UserID,
			WindowStart:      env.WindowStart,
			WindowEnd:        env.WindowEnd,
			DataDir:          env.DataDir,
			ReportingZone:    reportingZone,
			MinEligibleHours: env.MinEligibleHours,
			Workers:          env.FetchWorkers,
			DryRun:           f.DryRun,
		},
	)

	result, err := runner.Run(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "run failed", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "run complete",
		"meetings_succeeded", len(result.Reports),
		"meetings_failed", len(result.Failures),
		"winner_drawn", result.Winner != nil)

	return nil
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain/models"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/report"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
	"github.com/lsdforum/meeting-raffle/internal/logging"
	"github.com/lsdforum/meeting-raffle/pkg/concurrent"
)

// RunnerConfig configures one report run.
type RunnerConfig struct {
	UserID           string
	WindowStart      time.Time
	WindowEnd        time.Time
	DataDir          string
	ReportingZone    *time.Location
	MinEligibleHours float64
	// Workers bounds how many meetings are fetched concurrently. 1 keeps the
	// run fully sequential.
	Workers int
	// DryRun skips writing the per-meeting artifacts.
	DryRun bool
}

// RunResult is everything a completed run produced. Per-meeting failures do
// not abort the run; they are collected here. WinnerErr is set when the
// raffle step failed after the per-meeting outputs were already written.
type RunResult struct {
	Reports   []models.MeetingReport
	Failures  []models.MeetingFailure
	Winner    *models.Winner
	WinnerErr error
}

// Runner orchestrates a report run: meeting discovery, per-meeting
// collection and aggregation, artifact writing, console reporting, and the
// raffle draw.
type Runner struct {
	client     api.ClientAPI
	leadership models.EmailSet
	members    *models.MemberRoster
	printer    *report.ConsolePrinter
	rng        *rand.Rand
	config     RunnerConfig
}

// NewRunner creates a runner. members is the paid-membership roster used for
// winner validation; leadership is the exclusion set.
func NewRunner(client api.ClientAPI, leadership models.EmailSet, members *models.MemberRoster, printer *report.ConsolePrinter, rng *rand.Rand, config RunnerConfig) *Runner {
	if config.MinEligibleHours == 0 {
		config.MinEligibleHours = DefaultMinEligibleHours
	}
	if config.ReportingZone == nil {
		config.ReportingZone = time.UTC
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Runner{
		client:     client,
		leadership: leadership,
		members:    members,
		printer:    printer,
		rng:        rng,
		config:     config,
	}
}

// Run executes the whole report. Discovery failure aborts the run; a failure
// on one meeting is reported and the rest proceed. The raffle runs last over
// everything that succeeded.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	meetings, err := r.client.ListScheduledMeetings(ctx, r.config.UserID, r.config.WindowStart, r.config.WindowEnd)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "discovered meetings in window", "count", len(meetings))

	// Each meeting writes only its own slot, so the pool needs no locking.
	reports := make([]*models.MeetingReport, len(meetings))
	failures := make([]*models.MeetingFailure, len(meetings))

	pool := concurrent.NewWorkerPool(r.config.Workers)
	jobs := make([]func() error, len(meetings))
	for i, meeting := range meetings {
		i, meeting := i, meeting
		jobs[i] = func() error {
			meetingCtx := logging.AppendCtx(ctx, slog.Int64("meeting_id", meeting.ID))
			meetingCtx = logging.AppendCtx(meetingCtx, slog.String("topic", meeting.Topic))

			rep, err := r.processMeeting(meetingCtx, meeting)
			if err != nil {
				slog.ErrorContext(meetingCtx, "failed to process meeting", logging.ErrKey, err)
				failures[i] = &models.MeetingFailure{MeetingID: meeting.ID, Topic: meeting.Topic, Err: err}
				return nil
			}
			reports[i] = rep
			return nil
		}
	}
	_ = pool.RunAll(ctx, jobs...)

	result := &RunResult{}
	for _, rep := range reports {
		if rep != nil {
			result.Reports = append(result.Reports, *rep)
		}
	}
	for _, f := range failures {
		if f != nil {
			result.Failures = append(result.Failures, *f)
		}
	}

	for _, rep := range result.Reports {
		r.printer.PrintAttendanceStats(rep.Meeting.Topic, rep.AttendanceStats)
	}
	for _, rep := range result.Reports {
		r.printer.PrintRegistrantStats(rep.Meeting.Topic, rep.RegistrantStats)
	}

	eligible := BuildEligiblePool(result.Reports, r.config.MinEligibleHours)
	winner, err := SelectRaffleWinner(r.rng, eligible, r.members)
	if err != nil {
		slog.ErrorContext(ctx, "raffle selection failed", logging.ErrKey, err)
		result.WinnerErr = err
	} else {
		result.Winner = &winner
		r.printer.PrintWinner(winner)
	}

	r.printer.PrintRunSummary(len(result.Reports), result.Failures)

	return result, nil
}

// processMeeting collects, aggregates, and persists one meeting's data,
// returning the immutable per-meeting report.
func (r *Runner) processMeeting(ctx context.Context, entry api.MeetingEntry) (*models.MeetingReport, error) {
	meeting, err := ToMeeting(entry)
	if err != nil {
		return nil, err
	}

	participants, err := r.client.GetMeetingParticipants(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}
	summaries := AggregateAttendance(ToAttendanceEvents(participants), r.leadership, r.config.ReportingZone)
	attendanceStats := ComputeAttendanceStats(summaries, r.config.MinEligibleHours)

	registrantEntries, err := r.client.GetMeetingRegistrants(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}
	registrants := make([]models.RegistrantRecord, 0, len(registrantEntries))
	for _, re := range registrantEntries {
		registrants = append(registrants, ToRegistrantRecord(re, r.leadership))
	}
	registrantStats := ComputeRegistrantStats(registrants)

	attendanceFile := report.AttendanceFileName(r.config.DataDir, meeting.Topic, meeting.StartTime)
	registrantsFile := report.RegistrantsFileName(r.config.DataDir, meeting.Topic, meeting.StartTime)
	if !r.config.DryRun {
		if err := report.WriteAttendanceArtifact(attendanceFile, summaries); err != nil {
			return nil, err
		}
		if err := report.WriteRegistrantsArtifact(registrantsFile, registrants); err != nil {
			return nil, err
		}
	}

	return &models.MeetingReport{
		Meeting:         meeting,
		Attendance:      summaries,
		Registrants:     registrants,
		AttendanceStats: attendanceStats,
		RegistrantStats: registrantStats,
		AttendanceFile:  attendanceFile,
		RegistrantsFile: registrantsFile,
	}, nil
}

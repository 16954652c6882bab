// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package service holds the report pipeline: attendance aggregation, consent
// classification, raffle selection, and the per-meeting batch runner.
package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

// reportTimeFormat is how join/leave times are rendered in artifacts.
const reportTimeFormat = "2006-01-02 15:04:05"

// AggregateAttendance collapses raw join intervals into one summary per
// unique email. Emails are lowercased, durations summed in seconds and
// converted to hours rounded to two decimals (half away from zero), and the
// earliest join and latest leave are rendered in the reporting timezone.
// Output is sorted by email so identical input always yields identical rows.
func AggregateAttendance(events []models.AttendanceEvent, leadership models.EmailSet, loc *time.Location) []models.AttendeeSummary {
	sorted := make([]models.AttendanceEvent, len(events))
	copy(sorted, events)
	for i := range sorted {
		sorted[i].Email = strings.ToLower(sorted[i].Email)
	}

	// Deterministic grouping order for rejoin duplicates.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ParticipantID != sorted[j].ParticipantID {
			return sorted[i].ParticipantID < sorted[j].ParticipantID
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].JoinTime.Before(sorted[j].JoinTime)
	})

	type group struct {
		totalSeconds int
		earliestJoin time.Time
		latestLeave  time.Time
	}
	groups := make(map[string]*group)
	for _, event := range sorted {
		g, ok := groups[event.Email]
		if !ok {
			groups[event.Email] = &group{
				totalSeconds: event.Duration,
				earliestJoin: event.JoinTime,
				latestLeave:  event.LeaveTime,
			}
			continue
		}
		g.totalSeconds += event.Duration
		if event.JoinTime.Before(g.earliestJoin) {
			g.earliestJoin = event.JoinTime
		}
		if event.LeaveTime.After(g.latestLeave) {
			g.latestLeave = event.LeaveTime
		}
	}

	emails := make([]string, 0, len(groups))
	for email := range groups {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	summaries := make([]models.AttendeeSummary, 0, len(groups))
	for _, email := range emails {
		g := groups[email]
		summaries = append(summaries, models.AttendeeSummary{
			Email:         email,
			TotalDuration: roundHours(g.totalSeconds),
			JoinTime:      g.earliestJoin.In(loc).Format(reportTimeFormat),
			LeaveTime:     g.latestLeave.In(loc).Format(reportTimeFormat),
			Excom:         leadership.Contains(email),
		})
	}
	return summaries
}

// roundHours converts seconds to hours rounded to two decimal places, ties
// away from zero.
func roundHours(seconds int) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// ComputeAttendanceStats derives the per-meeting console counts from the
// aggregated summaries. minHours is the engagement threshold for "stayed".
func ComputeAttendanceStats(summaries []models.AttendeeSummary, minHours float64) models.AttendanceStats {
	stats := models.AttendanceStats{Attended: len(summaries)}
	for _, s := range summaries {
		if !s.Excom {
			stats.AttendedNonExcom++
		}
		if s.TotalDuration >= minHours {
			stats.Stayed++
			if !s.Excom {
				stats.StayedNonExcom++
			}
		}
	}
	return stats
}

// ComputeRegistrantStats derives the per-meeting registration counts.
func ComputeRegistrantStats(registrants []models.RegistrantRecord) models.RegistrantStats {
	stats := models.RegistrantStats{Registered: len(registrants)}
	for _, r := range registrants {
		if !r.Excom {
			stats.RegisteredNonExcom++
		}
		switch r.EmailUse {
		case models.EmailUseAlready:
			stats.AlreadyHaveEmail++
		case models.EmailUseYes:
			stats.UseEmail++
		case models.EmailUseNo:
			stats.DoNotUseEmail++
		}
	}
	return stats
}

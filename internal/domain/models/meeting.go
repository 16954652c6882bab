// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package models holds the domain types threaded through a report run.
package models

import "time"

// Meeting is one scheduled meeting whose start time falls inside the report
// window. It is created by the meeting directory client and never mutated;
// collected attendance and registrant data live in the per-meeting
// MeetingReport instead.
type Meeting struct {
	ID        int64
	UUID      string
	Topic     string
	StartTime time.Time // UTC, as returned by the API
	Duration  int       // scheduled duration in minutes
	Timezone  string
}

// AttendanceEvent is one raw join interval for one participant. A participant
// who rejoins produces multiple events.
type AttendanceEvent struct {
	ParticipantID string
	Name          string
	Email         string
	JoinTime      time.Time
	LeaveTime     time.Time
	Duration      int // seconds
}

// AttendeeSummary is one row per unique (meeting, email): the collapsed view
// of every join interval for that attendee. Join and leave times are already
// rendered in the reporting timezone because they round-trip through the
// attendance artifact in that form.
type AttendeeSummary struct {
	Email         string
	TotalDuration float64 // hours, rounded to 2 decimals
	JoinTime      string  // earliest join, "2006-01-02 15:04:05" reporting zone
	LeaveTime     string  // latest leave, same format
	Excom         bool
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package models

// AttendanceStats are the per-meeting attendance counts printed in the
// console report. "Stayed" means total duration at or above the eligibility
// threshold.
type AttendanceStats struct {
	Attended         int
	AttendedNonExcom int
	Stayed           int
	StayedNonExcom   int
}

// RegistrantStats are the per-meeting registration counts printed in the
// console report.
type RegistrantStats struct {
	Registered         int
	RegisteredNonExcom int
	AlreadyHaveEmail   int
	UseEmail           int
	DoNotUseEmail      int
}

// MeetingReport is the immutable per-meeting result of one processing pass.
// It is constructed once by the runner and never mutated afterwards.
type MeetingReport struct {
	Meeting     Meeting
	Attendance  []AttendeeSummary
	Registrants []RegistrantRecord

	AttendanceStats AttendanceStats
	RegistrantStats RegistrantStats

	AttendanceFile  string
	RegistrantsFile string
}

// MeetingFailure records a meeting that could not be processed. The run
// continues past failures; they are surfaced in the final summary.
type MeetingFailure struct {
	MeetingID int64
	Topic     string
	Err       error
}

// Winner is the raffle result: the drawn attendee resolved to their full
// membership roster row.
type Winner struct {
	Email  string
	Header []string
	Row    []string
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

func easternZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("US/Eastern")
	require.NoError(t, err)
	return loc
}

func TestAggregateAttendance_SumsDurations(t *testing.T) {
	loc := easternZone(t)
	base := time.Date(2021, 8, 26, 14, 0, 0, 0, time.UTC)

	// Three join intervals for one attendee: 1800s + 900s + 300s = 3000s.
	events := []models.AttendanceEvent{
		{ParticipantID: "p1", Name: "Jane Doe", Email: "jane@x.com", JoinTime: base, LeaveTime: base.Add(30 * time.Minute), Duration: 1800},
		{ParticipantID: "p1", Name: "Jane Doe", Email: "jane@x.com", JoinTime: base.Add(35 * time.Minute), LeaveTime: base.Add(50 * time.Minute), Duration: 900},
		{ParticipantID: "p1", Name: "Jane Doe", Email: "jane@x.com", JoinTime: base.Add(55 * time.Minute), LeaveTime: base.Add(60 * time.Minute), Duration: 300},
	}

	summaries := AggregateAttendance(events, models.EmailSet{}, loc)

	require.Len(t, summaries, 1)
	assert.Equal(t, "jane@x.com", summaries[0].Email)
	assert.Equal(t, 0.83, summaries[0].TotalDuration) // 3000s / 3600
	// 14:00 UTC is 10:00 US/Eastern during DST.
	assert.Equal(t, "2021-08-26 10:00:00", summaries[0].JoinTime)
	assert.Equal(t, "2021-08-26 11:00:00", summaries[0].LeaveTime)
}

func TestAggregateAttendance_NormalizesEmailCase(t *testing.T) {
	loc := easternZone(t)
	base := time.Date(2021, 8, 26, 14, 0, 0, 0, time.UTC)

	events := []models.AttendanceEvent{
		{ParticipantID: "p1", Name: "Jane Doe", Email: "Jane@X.com", JoinTime: base, LeaveTime: base.Add(10 * time.Minute), Duration: 600},
		{ParticipantID: "p2", Name: "Jane Doe", Email: "jane@x.com", JoinTime: base.Add(20 * time.Minute), LeaveTime: base.Add(30 * time.Minute), Duration: 600},
	}

	summaries := AggregateAttendance(events, models.EmailSet{}, loc)

	require.Len(t, summaries, 1)
	assert.Equal(t, "jane@x.com", summaries[0].Email)
	assert.Equal(t, 0.33, summaries[0].TotalDuration)
}

func TestAggregateAttendance_LeadershipFlag(t *testing.T) {
	loc := easternZone(t)
	base := time.Date(2021, 8, 26, 14, 0, 0, 0, time.UTC)

	leadership := models.NewEmailSet("alice@x.com")
	events := []models.AttendanceEvent{
		{ParticipantID: "p1", Name: "Alice", Email: "alice@x.com", JoinTime: base, LeaveTime: base.Add(time.Hour), Duration: 3600},
		{ParticipantID: "p2", Name: "Bob", Email: "bob@x.com", JoinTime: base, LeaveTime: base.Add(time.Hour), Duration: 3600},
	}

	summaries := AggregateAttendance(events, leadership, loc)

	require.Len(t, summaries, 2)
	// Output is sorted by email: alice first.
	assert.True(t, summaries[0].Excom)
	assert.False(t, summaries[1].Excom)
}

func TestAggregateAttendance_MinJoinMaxLeave(t *testing.T) {
	loc := easternZone(t)
	base := time.Date(2021, 8, 26, 14, 0, 0, 0, time.UTC)

	// Events deliberately out of order; the later interval is listed first.
	events := []models.AttendanceEvent{
		{ParticipantID: "p1", Name: "Jane", Email: "jane@x.com", JoinTime: base.Add(40 * time.Minute), LeaveTime: base.Add(60 * time.Minute), Duration: 1200},
		{ParticipantID: "p1", Name: "Jane", Email: "jane@x.com", JoinTime: base, LeaveTime: base.Add(20 * time.Minute), Duration: 1200},
	}

	summaries := AggregateAttendance(events, models.EmailSet{}, loc)

	require.Len(t, summaries, 1)
	assert.Equal(t, "2021-08-26 10:00:00", summaries[0].JoinTime)
	assert.Equal(t, "2021-08-26 11:00:00", summaries[0].LeaveTime)
}

func TestAggregateAttendance_DeterministicOrder(t *testing.T) {
	loc := easternZone(t)
	base := time.Date(2021, 8, 26, 14, 0, 0, 0, time.UTC)

	events := []models.AttendanceEvent{
		{ParticipantID: "p3", Name: "Carol", Email: "carol@x.com", JoinTime: base, LeaveTime: base.Add(time.Hour), Duration: 3600},
		{ParticipantID: "p1", Name: "Alice", Email: "alice@x.com", JoinTime: base, LeaveTime: base.Add(time.Hour), Duration: 3600},
		{ParticipantID: "p2", Name: "Bob", Email: "bob@x.com", JoinTime: base, LeaveTime: base.Add(time.Hour), Duration: 3600},
	}

	first := AggregateAttendance(events, models.EmailSet{}, loc)
	second := AggregateAttendance(events, models.EmailSet{}, loc)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "alice@x.com", first[0].Email)
	assert.Equal(t, "bob@x.com", first[1].Email)
	assert.Equal(t, "carol@x.com", first[2].Email)
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected float64
	}{
		{"exact threshold", 2700, 0.75},
		{"3000 seconds", 3000, 0.83},
		{"full hour", 3600, 1.0},
		{"tie rounds away from zero", 2718, 0.76}, // 0.755h
		{"zero", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, roundHours(tt.seconds))
		})
	}
}

func TestComputeAttendanceStats(t *testing.T) {
	summaries := []models.AttendeeSummary{
		{Email: "alice@x.com", TotalDuration: 1.0, Excom: true},
		{Email: "bob@x.com", TotalDuration: 0.9, Excom: false},
		{Email: "carol@x.com", TotalDuration: 0.75, Excom: false},
		{Email: "dave@x.com", TotalDuration: 0.5, Excom: false},
	}

	stats := ComputeAttendanceStats(summaries, 0.75)

	assert.Equal(t, models.AttendanceStats{
		Attended:         4,
		AttendedNonExcom: 3,
		Stayed:           3,
		StayedNonExcom:   2,
	}, stats)
}

func TestComputeRegistrantStats(t *testing.T) {
	registrants := []models.RegistrantRecord{
		{Email: "alice@x.com", Excom: true, EmailUse: models.EmailUseAlready},
		{Email: "bob@x.com", EmailUse: models.EmailUseYes},
		{Email: "carol@x.com", EmailUse: models.EmailUseNo},
		{Email: "dave@x.com", EmailUse: models.EmailUseYes},
	}

	stats := ComputeRegistrantStats(registrants)

	assert.Equal(t, models.RegistrantStats{
		Registered:         4,
		RegisteredNonExcom: 3,
		AlreadyHaveEmail:   1,
		UseEmail:           2,
		DoNotUseEmail:      1,
	}, stats)
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/domain/models"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
)

// ToMeeting converts a wire meeting descriptor into the domain meeting.
func ToMeeting(entry api.MeetingEntry) (models.Meeting, error) {
	startTime, err := time.Parse(api.StartTimeFormat, entry.StartTime)
	if err != nil {
		return models.Meeting{}, domain.NewDataIntegrityError(
			fmt.Sprintf("meeting %d has unparseable start_time %q", entry.ID, entry.StartTime), err)
	}
	return models.Meeting{
		ID:        entry.ID,
		UUID:      entry.UUID,
		Topic:     entry.Topic,
		StartTime: startTime,
		Duration:  entry.Duration,
		Timezone:  entry.Timezone,
	}, nil
}

// ToAttendanceEvents converts raw participant-report records into domain
// attendance events.
func ToAttendanceEvents(entries []api.ParticipantEntry) []models.AttendanceEvent {
	events := make([]models.AttendanceEvent, 0, len(entries))
	for _, e := range entries {
		events = append(events, models.AttendanceEvent{
			ParticipantID: e.ID,
			Name:          e.Name,
			Email:         e.UserEmail,
			JoinTime:      e.JoinTime,
			LeaveTime:     e.LeaveTime,
			Duration:      e.Duration,
		})
	}
	return events
}

// ToRegistrantRecord classifies one raw registrant against the leadership
// roster and the email-consent heuristic.
func ToRegistrantRecord(entry api.RegistrantEntry, leadership models.EmailSet) models.RegistrantRecord {
	email := strings.ToLower(entry.Email)
	return models.RegistrantRecord{
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Email:     email,
		Excom:     leadership.Contains(email),
		EmailUse:  ClassifyEmailUse(RenderCustomQuestions(entry.CustomQuestions)),
	}
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
)

// MockClientAPI implements api.ClientAPI for testing
type MockClientAPI struct {
	mock.Mock
}

func (m *MockClientAPI) ListScheduledMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]api.MeetingEntry, error) {
	args := m.Called(ctx, userID, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.MeetingEntry), args.Error(1)
}

func (m *MockClientAPI) GetMeetingParticipants(ctx context.Context, meetingID int64) ([]api.ParticipantEntry, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.ParticipantEntry), args.Error(1)
}

func (m *MockClientAPI) GetMeetingRegistrants(ctx context.Context, meetingID int64) ([]api.RegistrantEntry, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.RegistrantEntry), args.Error(1)
}

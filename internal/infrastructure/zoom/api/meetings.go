// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/logging"
)

// Meeting type constants for Zoom API
const (
	MeetingTypeInstant              = 1
	MeetingTypeScheduled            = 2
	MeetingTypeRecurringNoFixedTime = 3
	MeetingTypeRecurringFixedTime   = 8
)

// StartTimeFormat is the timestamp layout the list-meetings endpoint returns.
const StartTimeFormat = "2006-01-02T15:04:05Z"

// MeetingEntry represents one meeting descriptor from the list-meetings
// endpoint.
type MeetingEntry struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	HostID    string `json:"host_id"`
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	JoinURL   string `json:"join_url"`
}

// meetingsPageResponse represents one page of the list-meetings endpoint.
type meetingsPageResponse struct {
	PageSize      int            `json:"page_size"`
	TotalRecords  int            `json:"total_records"`
	NextPageToken string         `json:"next_page_token"`
	Meetings      []MeetingEntry `json:"meetings"`
}

// ListScheduledMeetings retrieves every scheduled meeting for the user and
// returns those whose start time falls inside [windowStart, windowEnd],
// inclusive at both ends. Pages are followed until the API stops returning a
// continuation token; output preserves the API's return order.
func (c *Client) ListScheduledMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]MeetingEntry, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "list_scheduled_meetings"))

	path := fmt.Sprintf("/users/%s/meetings", userID)

	var all []MeetingEntry
	nextPageToken := ""
	for {
		query := pageQuery(nextPageToken)
		query.Set("type", "scheduled")

		var page meetingsPageResponse
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			slog.ErrorContext(ctx, "failed to list meetings", logging.ErrKey, err)
			return nil, err
		}
		if page.Meetings == nil {
			return nil, domain.NewDataIntegrityError("list-meetings response has no meetings field")
		}

		all = append(all, page.Meetings...)

		if page.NextPageToken == "" {
			break
		}
		nextPageToken = page.NextPageToken
	}

	var inWindow []MeetingEntry
	for _, meeting := range all {
		startTime, err := time.Parse(StartTimeFormat, meeting.StartTime)
		if err != nil {
			return nil, domain.NewDataIntegrityError(
				fmt.Sprintf("meeting %d has unparseable start_time %q", meeting.ID, meeting.StartTime), err)
		}
		if !startTime.Before(windowStart) && !startTime.After(windowEnd) {
			inWindow = append(inWindow, meeting)
		}
	}

	slog.InfoContext(ctx, "listed scheduled meetings",
		"total", len(all),
		"in_window", len(inWindow),
		"window_start", windowStart.Format(StartTimeFormat),
		"window_end", windowEnd.Format(StartTimeFormat))

	return inWindow, nil
}

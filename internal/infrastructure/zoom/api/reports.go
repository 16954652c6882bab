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

// ParticipantEntry represents one raw join interval from the meeting
// participant report. A participant who rejoins appears once per interval.
// The report's attentiveness_score field is not modeled; nothing downstream
// uses it.
type ParticipantEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	UserEmail string    `json:"user_email"`
	JoinTime  time.Time `json:"join_time"`
	LeaveTime time.Time `json:"leave_time"`
	Duration  int       `json:"duration"` // seconds
}

// participantsPageResponse represents one page of the participant report.
// Participants is a pointer so that a 2xx response missing the key entirely
// is distinguishable from an empty page.
type participantsPageResponse struct {
	PageSize      int                 `json:"page_size"`
	TotalRecords  int                 `json:"total_records"`
	NextPageToken string              `json:"next_page_token"`
	Participants  *[]ParticipantEntry `json:"participants"`
}

// GetMeetingParticipants retrieves the complete participant report for a
// meeting, following continuation tokens until exhausted. Termination is
// driven purely by the absence of a token, so short non-final pages are
// collected like any other. Records are concatenated in page order.
func (c *Client) GetMeetingParticipants(ctx context.Context, meetingID int64) ([]ParticipantEntry, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_meeting_participants"))

	path := fmt.Sprintf("/report/meetings/%d/participants", meetingID)

	var all []ParticipantEntry
	nextPageToken := ""
	for {
		var page participantsPageResponse
		if err := c.getJSON(ctx, path, pageQuery(nextPageToken), &page); err != nil {
			slog.ErrorContext(ctx, "failed to get meeting participants", logging.ErrKey, err)
			return nil, err
		}
		if page.Participants == nil {
			return nil, domain.NewDataIntegrityError("participant report response has no participants field")
		}

		all = append(all, *page.Participants...)

		if page.NextPageToken == "" {
			break
		}
		nextPageToken = page.NextPageToken
	}

	slog.InfoContext(ctx, "retrieved meeting participants", "record_count", len(all))

	return all, nil
}

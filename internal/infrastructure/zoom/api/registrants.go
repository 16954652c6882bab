// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/logging"
)

// CustomQuestion is one answered registration question.
type CustomQuestion struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// RegistrantEntry represents one meeting registrant as returned by the
// registrants endpoint.
type RegistrantEntry struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Status          string           `json:"status"`
	CustomQuestions []CustomQuestion `json:"custom_questions"`
}

// registrantsPageResponse represents one page of the registrants endpoint.
type registrantsPageResponse struct {
	PageSize      int                `json:"page_size"`
	TotalRecords  int                `json:"total_records"`
	NextPageToken string             `json:"next_page_token"`
	Registrants   *[]RegistrantEntry `json:"registrants"`
}

// GetMeetingRegistrants retrieves every registrant for a meeting, following
// continuation tokens until exhausted, concatenating pages in order.
func (c *Client) GetMeetingRegistrants(ctx context.Context, meetingID int64) ([]RegistrantEntry, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_meeting_registrants"))

	path := fmt.Sprintf("/meetings/%d/registrants", meetingID)

	var all []RegistrantEntry
	nextPageToken := ""
	for {
		var page registrantsPageResponse
		if err := c.getJSON(ctx, path, pageQuery(nextPageToken), &page); err != nil {
			slog.ErrorContext(ctx, "failed to get meeting registrants", logging.ErrKey, err)
			return nil, err
		}
		if page.Registrants == nil {
			return nil, domain.NewDataIntegrityError("registrants response has no registrants field")
		}

		all = append(all, *page.Registrants...)

		if page.NextPageToken == "" {
			break
		}
		nextPageToken = page.NextPageToken
	}

	slog.InfoContext(ctx, "retrieved meeting registrants", "record_count", len(all))

	return all, nil
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package api is a thin client for the Zoom REST API endpoints the report
// needs: listing a user's scheduled meetings, a meeting's participant report,
// and a meeting's registrants. All three are paginated with page_size and
// next_page_token query parameters and authenticated with a bearer token.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/logging"
)

// ClientAPI defines the interface for Zoom API operations
// This allows for easy mocking and testing of the Zoom client
type ClientAPI interface {
	ListScheduledMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]MeetingEntry, error)
	GetMeetingParticipants(ctx context.Context, meetingID int64) ([]ParticipantEntry, error)
	GetMeetingRegistrants(ctx context.Context, meetingID int64) ([]RegistrantEntry, error)
}

const (
	// BaseURL is the base URL for Zoom API
	BaseURL = "https://api.zoom.us/v2"
	// DefaultClientTimeout is the default HTTP client timeout for Zoom API requests
	DefaultClientTimeout = 30 * time.Second
	// PageSize is the page size requested from every paginated endpoint.
	PageSize = 300
)

// Client represents a Zoom API client
type Client struct {
	httpClient *http.Client
	config     Config
	tokens     TokenSource
}

// Config holds the configuration for the Zoom client
type Config struct {
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Ensure that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient creates a new Zoom API client authenticated by the given token
// source.
func NewClient(config Config, tokens TokenSource) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		tokens: tokens,
	}
}

// doRequest performs an authenticated GET against the Zoom API. The response
// body is the caller's to close. Transport failures map to NetworkError, 401
// to AuthError, and any other non-2xx status to APIError; pagination loops
// stop on the first error.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := c.config.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	slog.DebugContext(ctx, "making Zoom API request", "path", path)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		slog.ErrorContext(ctx, "Zoom API request failed",
			"path", path,
			"duration", duration.String(),
			logging.ErrKey, err)
		return nil, domain.NewNetworkError("zoom API request failed", err)
	}

	slog.DebugContext(ctx, "Zoom API request completed",
		"path", path,
		"status", resp.StatusCode,
		"duration", duration.String())

	if resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, domain.NewAuthError("zoom API rejected the token", parseErrorResponse(body))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		slog.ErrorContext(ctx, "Zoom API error response",
			"path", path,
			"status", resp.StatusCode,
			logging.ErrKey, parseErrorResponse(body))
		return nil, domain.NewAPIError(fmt.Sprintf("zoom API returned status %d", resp.StatusCode), parseErrorResponse(body))
	}

	return resp, nil
}

// getJSON performs a request and decodes the 2xx response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewDataIntegrityError("failed to decode zoom API response", err)
	}
	return nil
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(nextPageToken string) url.Values {
	query := url.Values{}
	query.Set("page_size", fmt.Sprintf("%d", PageSize))
	if nextPageToken != "" {
		query.Set("next_page_token", nextPageToken)
	}
	return query
}

// parseErrorResponse attempts to parse a Zoom API error response
func parseErrorResponse(body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("zoom API error (code %d): %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("zoom API error: %s", string(body))
}

// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
)

// staticTokenSource is a TokenSource returning a fixed token for tests.
type staticTokenSource string

func (s staticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(serverURL string) *Client {
	return NewClient(Config{BaseURL: serverURL}, staticTokenSource("test-token"))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{}, staticTokenSource("t"))

	if client.config.BaseURL != BaseURL {
		t.Errorf("expected BaseURL %s, got %s", BaseURL, client.config.BaseURL)
	}
	if client.config.Timeout != DefaultClientTimeout {
		t.Errorf("expected Timeout %v, got %v", DefaultClientTimeout, client.config.Timeout)
	}
	if client.httpClient.Timeout != DefaultClientTimeout {
		t.Errorf("expected HTTP client timeout %v, got %v", DefaultClientTimeout, client.httpClient.Timeout)
	}
}

func TestNewClient_Overrides(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "https://custom.api.zoom.us/v2",
		Timeout: 45 * time.Second,
	}, staticTokenSource("t"))

	if client.config.BaseURL != "https://custom.api.zoom.us/v2" {
		t.Errorf("unexpected BaseURL %s", client.config.BaseURL)
	}
	if client.httpClient.Timeout != 45*time.Second {
		t.Errorf("unexpected timeout %v", client.httpClient.Timeout)
	}
}

func TestClient_BearerTokenSent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meetings": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListScheduledMeetings(context.Background(), "user123", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("expected Bearer test-token, got %q", gotAuth)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		mockStatus   int
		mockResponse string
		expectedType domain.ErrorType
	}{
		{
			name:         "401 maps to auth error",
			mockStatus:   http.StatusUnauthorized,
			mockResponse: `{"code": 124, "message": "Invalid access token."}`,
			expectedType: domain.ErrorTypeAuth,
		},
		{
			name:         "404 maps to api error",
			mockStatus:   http.StatusNotFound,
			mockResponse: `{"code": 3001, "message": "Meeting does not exist."}`,
			expectedType: domain.ErrorTypeAPI,
		},
		{
			name:         "500 maps to api error",
			mockStatus:   http.StatusInternalServerError,
			mockResponse: `{}`,
			expectedType: domain.ErrorTypeAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.mockStatus)
				_, _ = w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.GetMeetingParticipants(context.Background(), 123)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := domain.GetErrorType(err); got != tt.expectedType {
				t.Errorf("expected error type %v, got %v (%v)", tt.expectedType, got, err)
			}
		})
	}
}

func TestClient_TransportErrorIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server.URL)
	_, err := client.GetMeetingParticipants(context.Background(), 123)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := domain.GetErrorType(err); got != domain.ErrorTypeNetwork {
		t.Errorf("expected network error, got %v (%v)", got, err)
	}
}

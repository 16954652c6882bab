// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lsdforum/meeting-raffle/internal/domain"
)

func TestClient_GetMeetingRegistrants_Pagination(t *testing.T) {
	pages := map[string]string{
		"": `{
			"page_size": 300,
			"next_page_token": "next",
			"registrants": [
				{"id": "r1", "email": "Jane@X.com", "first_name": "Jane", "last_name": "Doe",
				 "custom_questions": [{"title": "May we email you?", "value": "Yes"}]}
			]
		}`,
		"next": `{
			"page_size": 300,
			"next_page_token": "",
			"registrants": [
				{"id": "r2", "email": "bob@x.com", "first_name": "Bob", "last_name": "Roe",
				 "custom_questions": []}
			]
		}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetings/98765/registrants" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pages[r.URL.Query().Get("next_page_token")]))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	registrants, err := client.GetMeetingRegistrants(context.Background(), 98765)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(registrants) != 2 {
		t.Fatalf("expected 2 registrants, got %d", len(registrants))
	}
	if registrants[0].ID != "r1" || registrants[1].ID != "r2" {
		t.Errorf("registrants not in page order: %+v", registrants)
	}
	if len(registrants[0].CustomQuestions) != 1 || registrants[0].CustomQuestions[0].Value != "Yes" {
		t.Errorf("custom questions not decoded: %+v", registrants[0].CustomQuestions)
	}
}

func TestClient_GetMeetingRegistrants_MissingRegistrantsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page_size": 300}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetMeetingRegistrants(context.Background(), 98765)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := domain.GetErrorType(err); got != domain.ErrorTypeDataIntegrity {
		t.Errorf("expected data integrity error, got %v (%v)", got, err)
	}
}

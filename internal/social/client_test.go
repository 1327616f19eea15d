package social_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
)

func TestCreateQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/queries" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected auth header: %s", auth)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] == "" || body["boolean_query"] == "" {
			t.Errorf("Request body missing fields: %v", body)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(social.Query{ID: "q-1", Name: body["name"], BooleanQuery: body["boolean_query"]})
	}))
	defer server.Close()

	client := social.NewClient("test-key", server.URL)
	query, err := client.CreateQuery(context.Background(), "brandpulse_tmp_acme_1", `("Acme")`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if query.ID != "q-1" {
		t.Errorf("Expected query ID q-1, got %s", query.ID)
	}
}

func TestCreateQueryQuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "query limit reached for this account",
			"code":  "quota_exceeded",
		})
	}))
	defer server.Close()

	client := social.NewClient("test-key", server.URL)
	_, err := client.CreateQuery(context.Background(), "brandpulse_tmp_acme_1", `("Acme")`)

	if !errors.Is(err, models.ErrResourceQuotaExceeded) {
		t.Errorf("Expected ErrResourceQuotaExceeded, got %v", err)
	}
}

func TestCreateQueryOtherForbiddenIsRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials", "code": "auth_failed"})
	}))
	defer server.Close()

	client := social.NewClient("test-key", server.URL)
	_, err := client.CreateQuery(context.Background(), "brandpulse_tmp_acme_1", `("Acme")`)

	if errors.Is(err, models.ErrResourceQuotaExceeded) {
		t.Error("Non-quota 403 must not map to quota exceeded")
	}
	if !errors.Is(err, models.ErrProviderRequestFailed) {
		t.Errorf("Expected ErrProviderRequestFailed, got %v", err)
	}
}

func TestFetchMentionsSendsWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queries/q-1/mentions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
		if _, err := time.Parse(time.RFC3339, start); err != nil {
			t.Errorf("start is not RFC3339: %q", start)
		}
		if _, err := time.Parse(time.RFC3339, end); err != nil {
			t.Errorf("end is not RFC3339: %q", end)
		}

		json.NewEncoder(w).Encode(map[string][]social.Mention{
			"mentions": {{Text: "nice", Sentiment: "positive", Source: "twitter"}},
		})
	}))
	defer server.Close()

	client := social.NewClient("test-key", server.URL)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mentions, err := client.FetchMentions(context.Background(), "q-1", social.TimeWindow{Start: end.AddDate(0, 0, -30), End: end})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(mentions) != 1 || mentions[0].Sentiment != "positive" {
		t.Errorf("Unexpected mentions: %v", mentions)
	}
}

func TestDeleteQuery(t *testing.T) {
	var deletedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		deletedPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := social.NewClient("test-key", server.URL)
	if err := client.DeleteQuery(context.Background(), "q-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if deletedPath != "/queries/q-1" {
		t.Errorf("Unexpected delete path: %s", deletedPath)
	}
}

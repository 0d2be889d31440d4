package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTavilyTestServer(t *testing.T, capture *tavilyRequest, results []map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		resp := map[string]any{"results": results}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
}

func TestBroadStrategySearch(t *testing.T) {
	var captured tavilyRequest
	server := newTavilyTestServer(t, &captured, []map[string]string{
		{"title": "Lakers trade rumors", "content": "Latest on the roster", "url": "https://example.com/1"},
		{"title": "Season preview", "content": "What to expect", "url": "https://example.com/2"},
	})
	defer server.Close()

	client := NewTavilyClient("test-key")
	client.baseURL = server.URL

	s := &BroadStrategy{client: client}
	got, err := s.Search(context.Background(), "lakers roster")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if captured.SearchDepth != "advanced" {
		t.Errorf("search_depth = %s, want advanced", captured.SearchDepth)
	}
	if captured.MaxResults != 5 {
		t.Errorf("max_results = %d, want 5", captured.MaxResults)
	}
	if !strings.Contains(got, "Title: Lakers trade rumors") {
		t.Errorf("result missing first title: %s", got)
	}
	if !strings.Contains(got, "URL: https://example.com/2") {
		t.Errorf("result missing second URL: %s", got)
	}
}

func TestDiscussionStrategyBiasesQuery(t *testing.T) {
	var captured tavilyRequest
	server := newTavilyTestServer(t, &captured, nil)
	defer server.Close()

	client := NewTavilyClient("test-key")
	client.baseURL = server.URL

	s := &DiscussionStrategy{client: client}
	got, err := s.Search(context.Background(), "lakers roster")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.Contains(captured.Query, "site:reddit.com") {
		t.Errorf("query not biased toward discussions: %s", captured.Query)
	}
	if got != "No search results found" {
		t.Errorf("empty results should report no results, got %q", got)
	}
}

func TestNewsStrategyRestrictsDomains(t *testing.T) {
	var captured tavilyRequest
	server := newTavilyTestServer(t, &captured, []map[string]string{
		{"title": "Breaking", "content": "News", "url": "https://cnn.com/x"},
	})
	defer server.Close()

	client := NewTavilyClient("test-key")
	client.baseURL = server.URL

	s := &NewsStrategy{client: client}
	got, err := s.Search(context.Background(), "lakers")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(captured.IncludeDomains) != len(newsDomains) {
		t.Errorf("include_domains = %v, want %v", captured.IncludeDomains, newsDomains)
	}
	if !strings.Contains(got, "News: Breaking") {
		t.Errorf("result not formatted as news: %s", got)
	}
}

func TestTavilyMissingAPIKey(t *testing.T) {
	s := &BroadStrategy{client: NewTavilyClient("")}
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestTavilyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTavilyClient("test-key")
	client.baseURL = server.URL

	s := &BroadStrategy{client: client}
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestKeywordStrategySearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %s, want json", got)
		}
		resp := map[string]any{
			"Results": []map[string]string{
				{"Text": "LeBron James", "FirstURL": "https://example.com/lebron"},
			},
			"RelatedTopics": []map[string]string{
				{"Text": "Los Angeles Lakers"},
				{"Text": ""},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewDuckDuckGoClient()
	client.baseURL = server.URL

	s := &KeywordStrategy{client: client}
	got, err := s.Search(context.Background(), "lebron james")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.Contains(got, "Title: LeBron James") {
		t.Errorf("result missing instant answer: %s", got)
	}
	if !strings.Contains(got, "Related: Los Angeles Lakers") {
		t.Errorf("result missing related topic: %s", got)
	}
	if strings.Contains(got, "Related: \n") {
		t.Errorf("empty related topic should be skipped: %s", got)
	}
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const tavilyDefaultURL = "https://api.tavily.com/search"

// newsDomains is the allow-list the news-focused strategy restricts
// itself to.
var newsDomains = []string{"cnn.com", "bbc.com", "reuters.com", "ap.org", "npr.org"}

// TavilyClient talks to the Tavily search API.
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyDefaultURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

func (t *TavilyClient) search(ctx context.Context, req tavilyRequest) (*tavilyResponse, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("tavily API key not configured")
	}
	req.APIKey = t.apiKey

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tavily request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create tavily request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily API returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tavily response: %w", err)
	}
	return &parsed, nil
}

// BroadStrategy is the general-purpose deep search and the registry
// default.
type BroadStrategy struct {
	client *TavilyClient
}

func (s *BroadStrategy) Name() string { return TagTavily }

func (s *BroadStrategy) Search(ctx context.Context, query string) (string, error) {
	resp, err := s.client.search(ctx, tavilyRequest{
		Query:       query,
		SearchDepth: "advanced",
		MaxResults:  5,
	})
	if err != nil {
		return "", err
	}
	return formatResults(resp, "Title", "URL"), nil
}

// DiscussionStrategy biases the query toward community and opinion
// sources.
type DiscussionStrategy struct {
	client *TavilyClient
}

func (s *DiscussionStrategy) Name() string { return TagRedditStyle }

func (s *DiscussionStrategy) Search(ctx context.Context, query string) (string, error) {
	resp, err := s.client.search(ctx, tavilyRequest{
		Query:       query + " site:reddit.com OR discussion OR opinion OR community",
		SearchDepth: "basic",
		MaxResults:  4,
	})
	if err != nil {
		return "", err
	}
	return formatResults(resp, "Discussion", "Source"), nil
}

// NewsStrategy biases the query toward freshness and restricts results
// to a fixed set of news domains.
type NewsStrategy struct {
	client *TavilyClient
}

func (s *NewsStrategy) Name() string { return TagNewsFocused }

func (s *NewsStrategy) Search(ctx context.Context, query string) (string, error) {
	resp, err := s.client.search(ctx, tavilyRequest{
		Query:          query + " news OR latest OR recent OR breaking",
		SearchDepth:    "basic",
		MaxResults:     5,
		IncludeDomains: newsDomains,
	})
	if err != nil {
		return "", err
	}
	return formatResults(resp, "News", "Source"), nil
}

func formatResults(resp *tavilyResponse, titleLabel, urlLabel string) string {
	var blocks []string
	for _, r := range resp.Results {
		title, content, url := r.Title, r.Content, r.URL
		if title == "" {
			title = "No title"
		}
		if content == "" {
			content = "No content"
		}
		if url == "" {
			url = "No URL"
		}
		blocks = append(blocks, fmt.Sprintf("%s: %s\nContent: %s\n%s: %s", titleLabel, title, content, urlLabel, url))
	}
	if len(blocks) == 0 {
		return "No search results found"
	}
	return strings.Join(blocks, "\n\n")
}

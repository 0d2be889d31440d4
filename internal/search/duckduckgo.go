package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const duckDuckGoDefaultURL = "https://api.duckduckgo.com/"

// DuckDuckGoClient talks to the DuckDuckGo instant-answer API. It is the
// lightweight keyword-only backend: no content extraction, just titles
// and links.
type DuckDuckGoClient struct {
	baseURL string
	client  *http.Client
}

func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL: duckDuckGoDefaultURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type duckDuckGoResponse struct {
	Results []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"Results"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// KeywordStrategy answers queries with DuckDuckGo instant answers.
type KeywordStrategy struct {
	client *DuckDuckGoClient
}

func (s *KeywordStrategy) Name() string { return TagDuckDuckGo }

func (s *KeywordStrategy) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create duckduckgo request: %w", err)
	}

	resp, err := s.client.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo API returned status %d", resp.StatusCode)
	}

	var parsed duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode duckduckgo response: %w", err)
	}

	var blocks []string
	for i, r := range parsed.Results {
		if i >= 5 {
			break
		}
		blocks = append(blocks, fmt.Sprintf("Title: %s\nURL: %s", r.Text, r.FirstURL))
	}
	for i, topic := range parsed.RelatedTopics {
		if i >= 3 {
			break
		}
		if topic.Text != "" {
			blocks = append(blocks, fmt.Sprintf("Related: %s", topic.Text))
		}
	}

	if len(blocks) == 0 {
		return "No DuckDuckGo results found", nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

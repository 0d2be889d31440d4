// Package catalog wraps the YouTube Data API as the pipeline's video
// catalog: relevance-ordered video search translated into playable URLs.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"cliphunt/internal/models"
	"cliphunt/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client searches the YouTube catalog. Authentication is API-key based
// by default; deployments with OAuth client credentials and a
// pre-provisioned token file get quota-scoped access instead.
type Client struct {
	service *youtube.Service
}

// NewClient builds a catalog client from config. It returns an error
// when no usable credentials exist; callers treat that the same as any
// other catalog failure and degrade.
func NewClient(cfg *config.YouTubeConfig) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		httpClient, err := oauthHTTPClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	default:
		return nil, fmt.Errorf("no YouTube credentials configured (set YOUTUBE_API_KEY or OAuth client credentials)")
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// FindVideos runs one relevance-ordered video search and maps each hit
// to a playable URL.
func (c *Client) FindVideos(ctx context.Context, query string, maxResults int64) ([]models.CatalogVideo, error) {
	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	var videos []models.CatalogVideo
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videos = append(videos, models.CatalogVideo{
			ID:    item.Id.VideoId,
			Title: item.Snippet.Title,
			URL:   WatchURL(item.Id.VideoId),
		})
	}
	return videos, nil
}

// WatchURL converts a video ID into its playable URL.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

func oauthHTTPClient(ctx context.Context, cfg *config.YouTubeConfig) (*http.Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth token from %s (provision it before enabling OAuth catalog access): %w", cfg.TokenFile, err)
	}
	if !token.Valid() && token.RefreshToken == "" {
		return nil, fmt.Errorf("OAuth token in %s is expired and has no refresh token", cfg.TokenFile)
	}

	return oauth2.NewClient(ctx, &savingTokenSource{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	}), nil
}

// savingTokenSource refreshes the OAuth token on demand and persists
// refreshed tokens so they survive restarts.
type savingTokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex
}

func (ts *savingTokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	newToken, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != ts.token.AccessToken {
		log.Println("YouTube OAuth token refreshed, saving to file")
		ts.token = newToken
		if err := saveToken(ts.tokenFile, newToken); err != nil {
			log.Printf("Warning: Failed to save refreshed token: %v", err)
		}
	}

	return newToken, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

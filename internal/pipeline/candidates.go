package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"cliphunt/internal/models"
)

// findCandidates queries the video catalog once per script timestamp.
// The output is positionally aligned with the input: every entry yields
// exactly one result record, with empty links when the catalog is
// unavailable or the query fails. Lookups share no state, so they fan
// out concurrently.
func (p *Pipeline) findCandidates(ctx context.Context, topic string, keywords []models.TimestampKeywords) []models.ContentSearchResult {
	results := make([]models.ContentSearchResult, len(keywords))

	var wg sync.WaitGroup
	for i, tk := range keywords {
		wg.Add(1)
		go func(i int, tk models.TimestampKeywords) {
			defer wg.Done()
			results[i] = p.findCandidatesFor(ctx, topic, tk)
		}(i, tk)
	}
	wg.Wait()

	return results
}

func (p *Pipeline) findCandidatesFor(ctx context.Context, topic string, tk models.TimestampKeywords) models.ContentSearchResult {
	query := strings.Join(tk.Keywords, " ") + " " + topic

	result := models.ContentSearchResult{
		Index:       tk.Index,
		Timestamp:   tk.Timestamp,
		Keywords:    tk.Keywords,
		SearchQuery: query,
	}

	if p.catalog == nil {
		result.Title = fmt.Sprintf("Video catalog unavailable for %s", tk.Timestamp)
		result.DegradedReason = "video catalog not configured"
		return result
	}

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	videos, err := p.catalog.FindVideos(callCtx, query, p.opts.CatalogMaxResults)
	if err != nil {
		log.Printf("Warning: catalog search for %s degraded: %v", tk.Timestamp, err)
		result.Title = fmt.Sprintf("Catalog search failed for %s", tk.Timestamp)
		result.DegradedReason = fmt.Sprintf("catalog: %v", err)
		return result
	}

	for _, v := range videos {
		result.Links = append(result.Links, v.URL)
	}
	result.Title = fmt.Sprintf("Catalog results for %s - found %d videos", tk.Timestamp, len(result.Links))
	return result
}

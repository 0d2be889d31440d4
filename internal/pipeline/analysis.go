package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cliphunt/internal/models"
)

const analysisQueryTemplate = `Please analyze this video for segments related to '%s' and '%s'. Identify all timestamps where these keywords appear, providing the time in minutes and seconds, along with a brief description of the content within that segment. Return the information as a JSON array of objects, each with a "timestamp" and a "content" description.`

// analyzeCandidates runs multimodal understanding over candidate
// videos, in search-result order, analyzing only the first link of each
// chosen result. MaxVideosAnalyzed caps how many results are analyzed
// per run; the remainder are skipped by policy, not by failure.
func (p *Pipeline) analyzeCandidates(ctx context.Context, topic string, searchResults []models.ContentSearchResult) []models.VideoUnderstandingResult {
	var results []models.VideoUnderstandingResult

	for _, sr := range searchResults {
		if len(results) >= p.opts.MaxVideosAnalyzed {
			break
		}
		if len(sr.Links) == 0 {
			continue
		}
		results = append(results, p.analyzeOne(ctx, topic, sr))
	}

	return results
}

func (p *Pipeline) analyzeOne(ctx context.Context, topic string, sr models.ContentSearchResult) models.VideoUnderstandingResult {
	videoURL := sr.Links[0]
	query := fmt.Sprintf(analysisQueryTemplate, strings.Join(sr.Keywords, ", "), topic)

	result := models.VideoUnderstandingResult{
		Index:         sr.Index,
		Timestamp:     sr.Timestamp,
		Keywords:      sr.Keywords,
		VideoURL:      videoURL,
		AnalysisQuery: query,
	}

	log.Printf("Analyzing video for %s: %s", sr.Timestamp, videoURL)

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	start := time.Now()
	analysis, err := p.analyzer.AnalyzeVideo(callCtx, videoURL, query)
	if err != nil {
		log.Printf("Warning: video analysis for %s degraded: %v", sr.Timestamp, err)
		result.AnalysisResult = fmt.Sprintf("Analysis failed: %v", err)
		result.DegradedReason = fmt.Sprintf("analysis: %v", err)
		return result
	}

	result.AnalysisResult = analysis
	result.ProcessingTime = time.Since(start)
	log.Printf("Video analysis for %s completed in %v", sr.Timestamp, result.ProcessingTime)
	return result
}

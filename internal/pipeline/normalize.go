package pipeline

import (
	"encoding/json"
	"strings"

	"cliphunt/internal/models"
)

// normalizeAnalyses converts raw analysis text into strict segment
// records. Every input yields exactly one output; unparseable text
// yields an empty segment list, never an error.
func normalizeAnalyses(understanding []models.VideoUnderstandingResult) []models.ParsedVideoAnalysis {
	parsed := make([]models.ParsedVideoAnalysis, 0, len(understanding))
	for _, u := range understanding {
		parsed = append(parsed, normalizeOne(u))
	}
	return parsed
}

func normalizeOne(u models.VideoUnderstandingResult) models.ParsedVideoAnalysis {
	result := models.ParsedVideoAnalysis{
		Index:           u.Index,
		ScriptTimestamp: u.Timestamp,
		Keywords:        u.Keywords,
		VideoURL:        u.VideoURL,
		Segments:        []models.VideoSegment{},
		ProcessingTime:  u.ProcessingTime,
		DegradedReason:  u.DegradedReason,
	}

	text := stripCodeFences(u.AnalysisResult)

	var raw []struct {
		Timestamp string `json:"timestamp"`
		Content   string `json:"content"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		// Malformed or non-array analysis output: keep the record, drop
		// the segments.
		if result.DegradedReason == "" {
			result.DegradedReason = "analysis text is not a segment list"
		}
		return result
	}

	for _, seg := range raw {
		if seg.Timestamp == "" || seg.Content == "" {
			continue
		}
		result.Segments = append(result.Segments, models.VideoSegment{
			Timestamp: seg.Timestamp,
			Content:   seg.Content,
		})
	}
	return result
}

// stripCodeFences removes surrounding markdown code-block delimiters
// from model output, returning only the fenced body when fences exist.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	var body []string
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inBlock && strings.HasPrefix(trimmed, "```"):
			inBlock = true
		case inBlock && trimmed == "```":
			return strings.Join(body, "\n")
		case inBlock:
			body = append(body, line)
		}
	}
	return strings.Join(body, "\n")
}

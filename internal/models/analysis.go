package models

import "time"

// VideoUnderstandingResult is the raw multimodal analysis of one
// candidate video. AnalysisResult is best-effort structured text with no
// guaranteed shape; failures are embedded there with a zero duration.
type VideoUnderstandingResult struct {
	Index          int           `json:"index"`
	Timestamp      string        `json:"timestamp"`
	Keywords       []string      `json:"keywords"`
	VideoURL       string        `json:"video_url"`
	AnalysisQuery  string        `json:"analysis_query"`
	AnalysisResult string        `json:"analysis_result"`
	ProcessingTime time.Duration `json:"processing_time"`
	DegradedReason string        `json:"degraded_reason,omitempty"`
}

// VideoSegment is one sub-timestamp found inside an analyzed video.
type VideoSegment struct {
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// ParsedVideoAnalysis is the normalized form of a raw analysis. When the
// raw text cannot be parsed the segment list is empty but the record
// still exists with its identifying fields populated.
type ParsedVideoAnalysis struct {
	Index           int            `json:"index"`
	ScriptTimestamp string         `json:"script_timestamp"`
	Keywords        []string       `json:"keywords"`
	VideoURL        string         `json:"video_url"`
	Segments        []VideoSegment `json:"video_segments"`
	ProcessingTime  time.Duration  `json:"processing_time"`
	DegradedReason  string         `json:"degraded_reason,omitempty"`
}

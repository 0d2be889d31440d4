package models

// VideoScript is the synthesized short-form video script. MainContent
// carries bracketed time markers (e.g. "[0-5 seconds] ...") and is the
// sole source of truth for per-segment splitting downstream.
type VideoScript struct {
	Title             string   `json:"title"`
	Hook              string   `json:"hook"`
	MainContent       string   `json:"main_content"`
	CallToAction      string   `json:"call_to_action"`
	VisualSuggestions string   `json:"visual_suggestions"`
	EstimatedDuration string   `json:"estimated_duration"`
	TargetPlatforms   []string `json:"target_platforms"`
}

// TimestampKeywords holds the keywords extracted for one timestamped
// script line. Index is the stable position assigned at extraction time
// and threaded through every downstream record; Timestamp is the
// free-form label carried forward verbatim and only ever compared by
// exact string equality.
type TimestampKeywords struct {
	Index       int      `json:"index"`
	Timestamp   string   `json:"timestamp"`
	ContentLine string   `json:"content_line"`
	Keywords    []string `json:"keywords"`
}

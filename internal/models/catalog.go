package models

// CatalogVideo is one video returned by the external catalog, already
// translated into a playable URL.
type CatalogVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentSearchResult is the catalog lookup result for one script
// timestamp. One record exists per TimestampKeywords entry even when the
// lookup fails (empty Links); consumers rely on positional alignment.
// DegradedReason is set when the record exists despite a lookup failure.
type ContentSearchResult struct {
	Index          int      `json:"index"`
	Title          string   `json:"title"`
	Timestamp      string   `json:"timestamp"`
	Keywords       []string `json:"keywords"`
	SearchQuery    string   `json:"search_query"`
	Links          []string `json:"links"`
	DegradedReason string   `json:"degraded_reason,omitempty"`
}

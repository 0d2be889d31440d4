package models

import "time"

// RunRecord is the manifest persisted alongside each generated
// blueprint.
type RunRecord struct {
	RunID           string        `json:"run_id"`
	Topic           string        `json:"topic"`
	MaxIdeators     int           `json:"max_ideators"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
	SegmentCount    int           `json:"segment_count"`
	ConceptFallback int           `json:"concept_fallbacks"`
}

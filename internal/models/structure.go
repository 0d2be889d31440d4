package models

// Visual element kinds. A "clip" points at a real source video; a
// "concept" is a synthetic placeholder emitted when no analyzed footage
// matched the segment.
const (
	VisualKindClip    = "clip"
	VisualKindConcept = "concept"
)

// VisualElement is one visual cue within a segment.
type VisualElement struct {
	SubTimeRange string  `json:"sub_time_range"`
	Kind         string  `json:"type"`
	Source       *string `json:"source"`
	Description  string  `json:"description"`
}

// Segment is one timed slice of the final blueprint. TimeRange is the
// original script timestamp label, unchanged.
type Segment struct {
	TimeRange string          `json:"time_range"`
	Title     string          `json:"title"`
	Visual    []VisualElement `json:"visual"`
	Audio     string          `json:"audio"`
}

// FinalVideoStructure is the assembled blueprint returned to callers.
// Every script timestamp yields exactly one segment with at least one
// visual element.
type FinalVideoStructure struct {
	Title    string    `json:"title"`
	Goal     string    `json:"goal"`
	Style    []string  `json:"style"`
	Segments []Segment `json:"segments"`
}

// ConceptFallbacks counts segments that degraded to a synthetic concept
// visual instead of real footage.
func (s *FinalVideoStructure) ConceptFallbacks() int {
	count := 0
	for _, seg := range s.Segments {
		for _, v := range seg.Visual {
			if v.Kind == VisualKindConcept {
				count++
				break
			}
		}
	}
	return count
}

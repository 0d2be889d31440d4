package pipeline

import (
	"strings"
	"testing"

	"cliphunt/internal/models"
)

func testKeywords() []models.TimestampKeywords {
	return []models.TimestampKeywords{
		{Index: 0, Timestamp: "[0-5 seconds]", ContentLine: "[0-5 seconds] The hook", Keywords: []string{"LeBron James"}},
		{Index: 1, Timestamp: "[5-10 seconds]", ContentLine: "[5-10 seconds] The story", Keywords: []string{"Lakers", "trade"}},
		{Index: 2, Timestamp: "[10-15 seconds]", ContentLine: "[10-15 seconds] The close", Keywords: []string{"playoffs"}},
	}
}

func TestAssembleMatchesByIndex(t *testing.T) {
	keywords := testKeywords()
	parsed := []models.ParsedVideoAnalysis{
		{
			Index:           1,
			ScriptTimestamp: "[5-10 seconds]",
			VideoURL:        "https://www.youtube.com/watch?v=abc",
			Segments: []models.VideoSegment{
				{Timestamp: "00:07", Content: "trade announcement"},
				{Timestamp: "01:32", Content: "press conference"},
			},
		},
	}

	structure := assemble("lakers", models.VideoScript{Title: "The Trade"}, keywords, parsed)

	if len(structure.Segments) != len(keywords) {
		t.Fatalf("got %d segments, want %d", len(structure.Segments), len(keywords))
	}

	matched := structure.Segments[1]
	if len(matched.Visual) != 2 {
		t.Fatalf("matched segment has %d visuals, want 2", len(matched.Visual))
	}
	for _, v := range matched.Visual {
		if v.Kind != models.VisualKindClip {
			t.Errorf("matched visual kind = %s, want clip", v.Kind)
		}
		if v.Source == nil || *v.Source != "https://www.youtube.com/watch?v=abc" {
			t.Errorf("clip source = %v, want analyzed video URL", v.Source)
		}
	}

	for _, i := range []int{0, 2} {
		seg := structure.Segments[i]
		if len(seg.Visual) != 1 {
			t.Fatalf("unmatched segment %d has %d visuals, want 1", i, len(seg.Visual))
		}
		v := seg.Visual[0]
		if v.Kind != models.VisualKindConcept {
			t.Errorf("unmatched visual kind = %s, want concept", v.Kind)
		}
		if v.Source != nil {
			t.Errorf("concept visual has source %q, want nil", *v.Source)
		}
		if !strings.Contains(v.Description, keywords[i].ContentLine) {
			t.Errorf("concept description %q does not reference the content line", v.Description)
		}
	}
}

func TestAssembleMatchesByLabelFallback(t *testing.T) {
	keywords := testKeywords()
	// Index -1 never matches, forcing the label-equality path.
	parsed := []models.ParsedVideoAnalysis{
		{
			Index:           -1,
			ScriptTimestamp: "[10-15 seconds]",
			VideoURL:        "https://www.youtube.com/watch?v=xyz",
			Segments:        []models.VideoSegment{{Timestamp: "00:03", Content: "buzzer beater"}},
		},
	}

	structure := assemble("lakers", models.VideoScript{}, keywords, parsed)

	if got := structure.Segments[2].Visual[0].Kind; got != models.VisualKindClip {
		t.Errorf("label-matched segment visual kind = %s, want clip", got)
	}
	if got := structure.Segments[0].Visual[0].Kind; got != models.VisualKindConcept {
		t.Errorf("unmatched segment visual kind = %s, want concept", got)
	}
}

func TestAssembleEmptyAnalysisFallsBack(t *testing.T) {
	keywords := testKeywords()
	// A matching record with zero segments still degrades to a concept.
	parsed := []models.ParsedVideoAnalysis{
		{Index: 0, ScriptTimestamp: "[0-5 seconds]", VideoURL: "https://example.com", Segments: []models.VideoSegment{}},
	}

	structure := assemble("lakers", models.VideoScript{}, keywords, parsed)

	v := structure.Segments[0].Visual[0]
	if v.Kind != models.VisualKindConcept {
		t.Errorf("visual kind = %s, want concept", v.Kind)
	}
}

func TestAssembleInvariants(t *testing.T) {
	keywords := testKeywords()
	structure := assemble("lakers", models.VideoScript{Title: "T"}, keywords, nil)

	if len(structure.Segments) != len(keywords) {
		t.Errorf("len(segments) = %d, want %d", len(structure.Segments), len(keywords))
	}
	for i, seg := range structure.Segments {
		if len(seg.Visual) < 1 {
			t.Errorf("segment %d has no visual elements", i)
		}
		if seg.TimeRange != keywords[i].Timestamp {
			t.Errorf("segment %d time range = %q, want %q", i, seg.TimeRange, keywords[i].Timestamp)
		}
	}
	if len(structure.Style) == 0 {
		t.Error("structure has no style tags")
	}
	if structure.Goal == "" {
		t.Error("structure has no goal")
	}
}

func TestConceptFallbacks(t *testing.T) {
	keywords := testKeywords()
	parsed := []models.ParsedVideoAnalysis{
		{Index: 1, ScriptTimestamp: "[5-10 seconds]", VideoURL: "u", Segments: []models.VideoSegment{{Timestamp: "00:07", Content: "x"}}},
	}

	structure := assemble("lakers", models.VideoScript{}, keywords, parsed)

	if got := structure.ConceptFallbacks(); got != 2 {
		t.Errorf("ConceptFallbacks = %d, want 2", got)
	}
}

package pipeline

import (
	"testing"
	"time"

	"cliphunt/internal/models"
)

func TestNormalizeOne(t *testing.T) {
	base := models.VideoUnderstandingResult{
		Index:          2,
		Timestamp:      "[5-10 seconds]",
		Keywords:       []string{"LeBron James", "Lakers"},
		VideoURL:       "https://www.youtube.com/watch?v=abc123",
		ProcessingTime: 3 * time.Second,
	}

	tests := []struct {
		name         string
		analysisText string
		wantSegments int
		wantDegraded bool
	}{
		{
			name:         "Valid unwrapped array",
			analysisText: `[{"timestamp": "00:07", "content": "dunk highlight"}, {"timestamp": "00:14", "content": "post-game interview"}]`,
			wantSegments: 2,
		},
		{
			name: "Valid fenced array",
			analysisText: "```json\n" +
				`[{"timestamp": "00:07", "content": "dunk highlight"}, {"timestamp": "00:14", "content": "post-game interview"}]` +
				"\n```",
			wantSegments: 2,
		},
		{
			name:         "Fenced without language tag",
			analysisText: "```\n[{\"timestamp\": \"00:07\", \"content\": \"dunk highlight\"}]\n```",
			wantSegments: 1,
		},
		{
			name:         "Empty array",
			analysisText: `[]`,
			wantSegments: 0,
		},
		{
			name:         "Non-array top level",
			analysisText: `{"timestamp": "00:07", "content": "dunk highlight"}`,
			wantSegments: 0,
			wantDegraded: true,
		},
		{
			name:         "Syntactically invalid",
			analysisText: "I found some interesting segments around the middle of the video.",
			wantSegments: 0,
			wantDegraded: true,
		},
		{
			name:         "Objects missing fields are skipped",
			analysisText: `[{"timestamp": "00:07"}, {"content": "orphan"}, {"timestamp": "00:21", "content": "kept"}]`,
			wantSegments: 1,
		},
		{
			name:         "Embedded failure text",
			analysisText: "Analysis failed: context deadline exceeded",
			wantSegments: 0,
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.AnalysisResult = tt.analysisText

			got := normalizeOne(in)

			if len(got.Segments) != tt.wantSegments {
				t.Errorf("got %d segments, want %d", len(got.Segments), tt.wantSegments)
			}
			// Identity fields survive regardless of parse outcome.
			if got.Index != base.Index {
				t.Errorf("Index = %d, want %d", got.Index, base.Index)
			}
			if got.ScriptTimestamp != base.Timestamp {
				t.Errorf("ScriptTimestamp = %q, want %q", got.ScriptTimestamp, base.Timestamp)
			}
			if got.VideoURL != base.VideoURL {
				t.Errorf("VideoURL = %q, want %q", got.VideoURL, base.VideoURL)
			}
			if got.Segments == nil {
				t.Error("Segments must be an empty list, not nil")
			}
			if degraded := got.DegradedReason != ""; degraded != tt.wantDegraded {
				t.Errorf("DegradedReason = %q, want degraded=%v", got.DegradedReason, tt.wantDegraded)
			}
		})
	}
}

func TestNormalizeKeepsUpstreamDegradedReason(t *testing.T) {
	got := normalizeOne(models.VideoUnderstandingResult{
		AnalysisResult: "Analysis failed: quota exhausted",
		DegradedReason: "analysis: quota exhausted",
	})
	if got.DegradedReason != "analysis: quota exhausted" {
		t.Errorf("DegradedReason = %q, want the upstream reason preserved", got.DegradedReason)
	}
}

func TestNormalizeFencedRoundTrip(t *testing.T) {
	payload := `[{"timestamp": "00:07", "content": "a"}, {"timestamp": "00:14", "content": "b"}]`

	unwrapped := normalizeOne(models.VideoUnderstandingResult{AnalysisResult: payload})
	fenced := normalizeOne(models.VideoUnderstandingResult{AnalysisResult: "```json\n" + payload + "\n```"})

	if len(unwrapped.Segments) != len(fenced.Segments) {
		t.Fatalf("fenced parse yielded %d segments, unwrapped %d", len(fenced.Segments), len(unwrapped.Segments))
	}
	for i := range unwrapped.Segments {
		if unwrapped.Segments[i] != fenced.Segments[i] {
			t.Errorf("segment %d differs: %+v vs %+v", i, unwrapped.Segments[i], fenced.Segments[i])
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "No fences", input: `[1, 2]`, expected: `[1, 2]`},
		{name: "Json fence", input: "```json\n[1, 2]\n```", expected: "[1, 2]"},
		{name: "Bare fence", input: "```\n[1, 2]\n```", expected: "[1, 2]"},
		{name: "Unterminated fence", input: "```json\n[1, 2]", expected: "[1, 2]"},
		{name: "Whitespace around fences", input: "  ```json\n[1, 2]\n```  ", expected: "[1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.expected {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
		wantErr  bool
	}{
		{
			name:     "Bare object",
			response: `{"title": "x"}`,
			expected: `{"title": "x"}`,
		},
		{
			name:     "Object with surrounding prose",
			response: "Sure, here you go:\n{\"title\": \"x\"}\nHope that helps!",
			expected: `{"title": "x"}`,
		},
		{
			name:     "Bare array",
			response: `[{"timestamp": "00:07"}]`,
			expected: `[{"timestamp": "00:07"}]`,
		},
		{
			name:     "Array chosen over later object",
			response: `[{"a": 1}] trailing`,
			expected: `[{"a": 1}]`,
		},
		{
			name:     "No JSON at all",
			response: "I cannot answer that.",
			wantErr:  true,
		},
		{
			name:     "Opening brace only",
			response: "{ broken",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Errorf("extractJSON(%q) expected error, got %q", tt.response, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractJSON(%q) unexpected error: %v", tt.response, err)
			}
			if got != tt.expected {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.response, got, tt.expected)
			}
		})
	}
}

func TestUnmarshalResponse(t *testing.T) {
	var script struct {
		Title string `json:"title"`
		Hook  string `json:"hook"`
	}

	response := "Here is your script:\n{\n  \"title\": \"The Comeback\",\n  \"hook\": \"You won't believe this\"\n}"
	if err := UnmarshalResponse(response, &script); err != nil {
		t.Fatalf("UnmarshalResponse failed: %v", err)
	}
	if script.Title != "The Comeback" {
		t.Errorf("Title = %q, want %q", script.Title, "The Comeback")
	}
}

func TestUnmarshalResponseSanitizesQuotes(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}

	// Unescaped inner quotes should be repaired on the second attempt.
	response := "{\n\"summary\": \"He said \"no way\" on camera\"\n}"
	if err := UnmarshalResponse(response, &out); err != nil {
		t.Fatalf("UnmarshalResponse failed on sanitizable input: %v", err)
	}
	if out.Summary == "" {
		t.Error("expected non-empty summary after sanitization")
	}
}

func TestUnmarshalResponseRejectsGarbage(t *testing.T) {
	var out map[string]any
	if err := UnmarshalResponse("not json in any form", &out); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

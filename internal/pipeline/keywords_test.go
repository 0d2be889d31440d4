package pipeline

import "testing"

func TestSplitTimestampedLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name: "Standard markers",
			content: "[0-5 seconds] The hook grabs you.\n" +
				"[5-10 seconds] The twist lands.\n" +
				"[10-15 seconds] The payoff.",
			expected: []string{
				"[0-5 seconds] The hook grabs you.",
				"[5-10 seconds] The twist lands.",
				"[10-15 seconds] The payoff.",
			},
		},
		{
			name: "Mixed content keeps only marked lines",
			content: "Intro notes for the editor\n" +
				"[0-5 seconds] The hook\n" +
				"\n" +
				"Some unrelated direction\n" +
				"[5-10 seconds] The story",
			expected: []string{"[0-5 seconds] The hook", "[5-10 seconds] The story"},
		},
		{
			name:     "Singular second marker",
			content:  "[1 second] Blink and you miss it",
			expected: []string{"[1 second] Blink and you miss it"},
		},
		{
			name:     "Brackets without second keyword are ignored",
			content:  "[SCENE 1] Open on the arena\n[SCENE 2] Cut to the bench",
			expected: []string{"[SCENE 1] Open on the arena\n[SCENE 2] Cut to the bench"},
		},
		{
			name:     "No markers treats whole content as one block",
			content:  "Just one long paragraph about the topic with no timing at all.",
			expected: []string{"Just one long paragraph about the topic with no timing at all."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTimestampedLines(tt.content)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d lines, want %d: %q", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

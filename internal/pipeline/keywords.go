package pipeline

import (
	"context"
	"fmt"
	"strings"

	"cliphunt/internal/models"
)

const keywordInstructions = `You are an expert at analyzing video script content to extract important keywords for video search.

Topic: %s

Task: for each timestamped line from the video script, extract 1-8 highly useful search keywords. These keywords should capture primary visual subjects, key actions, central concepts, and relevant proper nouns for finding related video content.

Extraction focus, per line:
- People's names
- Organizations/Entities
- Key concepts/Themes
- Important objects, places, or events
- Text overlays or visual elements mentioned

Prioritize proper nouns, key thematic concepts, prominent visual elements, and terms capturing the essence of the moment.

Timestamped Lines to Analyze:
%s

Respond with a JSON object of the form:
{"timestamp_keywords": [{"timestamp": "[0-5 seconds]", "content_line": "...", "keywords": ["..."]}]}
where timestamp is the bracketed marker from the line, copied exactly.`

// extractKeywords splits the script's main content into timestamped
// lines and asks the model for search keywords per line. Each record is
// stamped with its stable position index; downstream stages match on
// that index and only fall back to the free-form timestamp label.
func (p *Pipeline) extractKeywords(ctx context.Context, topic string, script models.VideoScript) ([]models.TimestampKeywords, error) {
	lines := splitTimestampedLines(script.MainContent)

	var linesText strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&linesText, "Line %d: %s\n", i+1, line)
	}

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	var out struct {
		TimestampKeywords []models.TimestampKeywords `json:"timestamp_keywords"`
	}
	systemPrompt := fmt.Sprintf(keywordInstructions, topic, linesText.String())
	if err := p.gen.GenerateJSON(callCtx, systemPrompt, "Extract the keywords from each timestamped line.", &out); err != nil {
		return nil, err
	}

	for i := range out.TimestampKeywords {
		out.TimestampKeywords[i].Index = i
	}
	return out.TimestampKeywords, nil
}

// splitTimestampedLines finds the script lines carrying a bracketed
// "second" marker. When none exist the whole content is one unlabeled
// block; that is the fallback policy, not an error.
func splitTimestampedLines(mainContent string) []string {
	var timestamped []string
	for _, line := range strings.Split(mainContent, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "[") && strings.Contains(line, "]") && strings.Contains(line, "second") {
			timestamped = append(timestamped, line)
		}
	}

	if len(timestamped) == 0 {
		return []string{mainContent}
	}
	return timestamped
}

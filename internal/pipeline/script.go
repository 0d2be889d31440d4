package pipeline

import (
	"context"
	"fmt"
	"strings"

	"cliphunt/internal/models"
)

const scriptInstructions = `You are %s, a %s. %s

Your task is to synthesize research insights from multiple ideators and create a compelling short-form video script.

Topic: %s

Research Insights from Ideators:
%s

As %s, create a video script that:
1. Starts with a POWERFUL HOOK that grabs attention in the first 3 seconds
2. Tells a compelling story or presents information in an engaging way
3. Incorporates the most interesting insights from the research
4. Includes specific timing cues for a short-form video (15-60 seconds), as bracketed markers like "[0-5 seconds]" at the start of each main_content line
5. Ends with a strong call-to-action or memorable conclusion
6. Suggests appropriate visuals to accompany the content

Focus on:
- Making it immediately engaging and shareable
- Using the unique angles discovered by the ideators
- Optimizing for short attention spans
- Applying your unique writing style and specialization

Respond with a JSON object of the form:
{"title": "...", "hook": "...", "main_content": "...", "call_to_action": "...", "visual_suggestions": "...", "estimated_duration": "...", "target_platforms": ["..."]}`

// synthesizeScript merges every persona's distilled insight into one
// timed script in the scriptor's voice. Bracketed time markers in
// main_content are requested but not enforced; downstream stages
// tolerate their absence.
func (p *Pipeline) synthesizeScript(ctx context.Context, topic string, findings []models.ResearchFinding, scriptor models.Scriptor) (models.VideoScript, error) {
	var summary strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&summary, "\n%s (%s):\n", f.Persona.Name, f.Persona.Role)
		fmt.Fprintf(&summary, "Search Method: %s\n", f.Directive.Strategy)
		fmt.Fprintf(&summary, "Key Insights: %s\n", f.KeyInsight)
		summary.WriteString(strings.Repeat("-", 40) + "\n")
	}

	systemPrompt := fmt.Sprintf(scriptInstructions,
		scriptor.Name, scriptor.Specialization, scriptor.WritingStyle,
		topic, summary.String(), scriptor.Name)

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	var script models.VideoScript
	if err := p.gen.GenerateJSON(callCtx, systemPrompt, "Create the video script based on all the research insights.", &script); err != nil {
		return models.VideoScript{}, err
	}

	return script, nil
}

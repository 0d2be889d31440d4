package pipeline

import (
	"context"
	"fmt"

	"cliphunt/internal/models"
)

const ideatorInstructions = `You are tasked with creating a set of AI ideator personas. Each ideator is an expert in short-form video creation whose core responsibilities are:
- Analyze market trends, audience preferences, and popular topics.
- Extract novel video subjects, storylines, or concepts from large amounts of data.
- Generate multiple creative directions or proposal outlines based on the goal.
- Iterate and optimize existing concepts to identify potential highlights.

Follow these instructions to generate the personas:
1. Review the research topic: %s
2. Determine the most interesting themes based on the topic and the core responsibilities.
3. Pick the top %d themes.
4. For each theme, assign an ideator persona whose role and description are tailored to that theme and embody the core responsibilities.

Respond with a comprehensive, structured JSON object of the form:
{"ideators": [{"name": "...", "role": "...", "description": "..."}]}`

const scriptorInstructions = `You are tasked with creating a specialized video script writer persona for the topic: %s

Create a scriptor persona that:
1. Has expertise in viral short-form video content
2. Can synthesize multiple perspectives into one cohesive narrative
3. Understands platform-specific requirements (TikTok, Instagram Reels, YouTube Shorts)
4. Has a unique writing style that would work well for this topic

The scriptor does NOT conduct research - they focus purely on script creation using the research provided by ideators.

Respond with a JSON object of the form:
{"name": "...", "specialization": "...", "writing_style": "..."}`

// generateIdeators creates the analyst personas for a topic. The model
// is asked for exactly maxIdeators; whatever count comes back is used
// as-is.
func (p *Pipeline) generateIdeators(ctx context.Context, topic string, maxIdeators int) ([]models.Persona, error) {
	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	var out struct {
		Ideators []models.Persona `json:"ideators"`
	}
	systemPrompt := fmt.Sprintf(ideatorInstructions, topic, maxIdeators)
	if err := p.gen.GenerateJSON(callCtx, systemPrompt, "Generate the set of ideators.", &out); err != nil {
		return nil, err
	}

	return out.Ideators, nil
}

// generateScriptor creates the single script-writing persona. Research
// findings are deliberately not consulted so the scriptor's voice stays
// independent of any one research angle.
func (p *Pipeline) generateScriptor(ctx context.Context, topic string) (models.Scriptor, error) {
	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	var scriptor models.Scriptor
	systemPrompt := fmt.Sprintf(scriptorInstructions, topic)
	if err := p.gen.GenerateJSON(callCtx, systemPrompt, "Generate the scriptor persona.", &scriptor); err != nil {
		return models.Scriptor{}, err
	}

	return scriptor, nil
}

package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"cliphunt/internal/models"
)

const directiveInstructions = `Based on your persona and the research topic, generate a specific search query AND choose the most appropriate search method for finding relevant, interesting information for short-form video content.

Your Persona:
%s
Research Topic: %s

Available Search Methods:
- tavily: comprehensive web search with detailed content extraction (best for in-depth research)
- duckduckgo: lightweight keyword search with quick results (good for broad topic exploration)
- reddit_style: discussions, opinions, and community insights (great for understanding public sentiment)
- news_focused: recent news and current events (perfect for trending topics and breaking news)

Generate a search query and choose a method that:
1. Reflects your unique perspective and expertise
2. Will surface information that aligns with your specific interests and role
3. Could lead to creative video content ideas

Respond with a JSON object of the form:
{"query": "...", "search_method": "...", "reasoning": "..."}`

const insightInstructions = `As %s (%s), analyze these search results and extract the key insights most relevant to your expertise for creating short-form video content about "%s".

Search Results:
%s

Focus on:
1. Information that aligns with your specific role and perspective
2. Trends, stories, or angles that could make compelling video content
3. Unique insights that other personas might miss
4. Actionable content ideas or creative directions

Provide your key insights:`

// conductResearch runs one research pass per persona: a structured
// directive, a strategy-dispatched web search, and an insight
// distillation. Personas share no state, so the fan-out is concurrent;
// output order matches persona order. Search and distillation failures
// degrade that persona's finding, a directive schema failure aborts.
func (p *Pipeline) conductResearch(ctx context.Context, topic string, ideators []models.Persona) ([]models.ResearchFinding, error) {
	findings := make([]models.ResearchFinding, len(ideators))
	errs := make([]error, len(ideators))

	var wg sync.WaitGroup
	for i, ideator := range ideators {
		wg.Add(1)
		go func(i int, ideator models.Persona) {
			defer wg.Done()
			findings[i], errs[i] = p.researchOne(ctx, topic, ideator)
		}(i, ideator)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("persona %s: %w", ideators[i].Name, err)
		}
	}
	return findings, nil
}

func (p *Pipeline) researchOne(ctx context.Context, topic string, ideator models.Persona) (models.ResearchFinding, error) {
	directiveCtx, cancel := p.callCtx(ctx)
	defer cancel()

	var directive models.SearchDirective
	prompt := fmt.Sprintf(directiveInstructions, ideator.Identity(), topic)
	if err := p.gen.GenerateJSON(directiveCtx, prompt, "Generate your search query.", &directive); err != nil {
		return models.ResearchFinding{}, err
	}

	log.Printf("Persona %s searching via %s: %q", ideator.Name, directive.Strategy, directive.Query)

	finding := models.ResearchFinding{
		Persona:   ideator,
		Directive: directive,
	}

	// Unknown strategy tags silently resolve to the default; a failed
	// search becomes data rather than an error.
	searchCtx, cancelSearch := p.callCtx(ctx)
	rawResults, err := p.registry.Lookup(directive.Strategy).Search(searchCtx, directive.Query)
	cancelSearch()
	if err != nil {
		rawResults = fmt.Sprintf("Search failed: %v", err)
		finding.DegradedReason = fmt.Sprintf("search: %v", err)
		log.Printf("Warning: search for persona %s degraded: %v", ideator.Name, err)
	}
	finding.RawResults = rawResults

	insight, err := p.distillInsight(ctx, topic, ideator, rawResults)
	if err != nil {
		insight = fmt.Sprintf("Insight distillation failed: %v", err)
		if finding.DegradedReason != "" {
			finding.DegradedReason += "; "
		}
		finding.DegradedReason += fmt.Sprintf("distillation: %v", err)
		log.Printf("Warning: insight distillation for persona %s degraded: %v", ideator.Name, err)
	}
	finding.KeyInsight = insight

	return finding, nil
}

func (p *Pipeline) distillInsight(ctx context.Context, topic string, ideator models.Persona, rawResults string) (string, error) {
	callCtx, cancel := p.callCtx(ctx)
	defer cancel()

	systemPrompt := fmt.Sprintf("You are %s, a %s. %s", ideator.Name, ideator.Role, ideator.Description)
	userPrompt := fmt.Sprintf(insightInstructions, ideator.Name, ideator.Role, topic, rawResults)

	insight, err := p.gen.GenerateText(callCtx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(insight), nil
}

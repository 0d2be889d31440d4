// Package pipeline turns a topic string into a structured short-form
// video blueprint through nine sequential stages: persona generation,
// per-persona research, scriptor generation, script synthesis, keyword
// extraction, catalog candidate search, multimodal video analysis,
// analysis normalization, and final structure assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cliphunt/internal/models"
	"cliphunt/internal/search"
)

// TextGenerator produces free text and JSON-shaped records from
// prompts. A GenerateJSON failure means the model refused the schema;
// there is no degraded default for that, so callers escalate it.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, out any) error
}

// VideoAnalyzer runs multimodal understanding over one video URL and
// returns best-effort structured text with no guaranteed shape.
type VideoAnalyzer interface {
	AnalyzeVideo(ctx context.Context, videoURL, instruction string) (string, error)
}

// Catalog finds candidate videos for a query, ordered by relevance.
type Catalog interface {
	FindVideos(ctx context.Context, query string, maxResults int64) ([]models.CatalogVideo, error)
}

// Options are the pipeline's cost and safety knobs.
type Options struct {
	// MaxVideosAnalyzed caps how many candidate videos get the expensive
	// multimodal treatment per run.
	MaxVideosAnalyzed int
	// CatalogMaxResults caps candidates fetched per script timestamp.
	CatalogMaxResults int64
	// CallTimeout bounds every external call. Zero disables the bound.
	CallTimeout time.Duration
}

// Input validation errors surfaced to the caller before any stage runs.
var (
	ErrEmptyTopic      = errors.New("topic is required")
	ErrInvalidIdeators = errors.New("ideator count must be at least 1")
)

// Pipeline owns the stage sequence. External capabilities are injected
// so every stage is testable against fakes.
type Pipeline struct {
	gen      TextGenerator
	analyzer VideoAnalyzer
	catalog  Catalog // nil means catalog lookups degrade in place
	registry *search.Registry
	opts     Options
}

func New(gen TextGenerator, analyzer VideoAnalyzer, catalog Catalog, registry *search.Registry, opts Options) *Pipeline {
	if opts.CatalogMaxResults == 0 {
		opts.CatalogMaxResults = 5
	}
	return &Pipeline{
		gen:      gen,
		analyzer: analyzer,
		catalog:  catalog,
		registry: registry,
		opts:     opts,
	}
}

// State is the accumulating pipeline context. Each stage exclusively
// owns the fields it produces; nothing is mutated after the producing
// stage returns.
type State struct {
	Topic       string
	MaxIdeators int

	Ideators      []models.Persona
	Findings      []models.ResearchFinding
	Scriptor      models.Scriptor
	Script        models.VideoScript
	Keywords      []models.TimestampKeywords
	SearchResults []models.ContentSearchResult
	Understanding []models.VideoUnderstandingResult
	Parsed        []models.ParsedVideoAnalysis
	Structure     *models.FinalVideoStructure
}

// Run executes all nine stages in order and returns the assembled
// blueprint. Upstream search, catalog, and analysis failures degrade in
// place; structured-generation failures abort the run.
func (p *Pipeline) Run(ctx context.Context, topic string, maxIdeators int) (*models.FinalVideoStructure, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if maxIdeators < 1 {
		return nil, ErrInvalidIdeators
	}

	state := &State{Topic: topic, MaxIdeators: maxIdeators}

	log.Printf("Pipeline run starting: topic=%q ideators=%d", topic, maxIdeators)

	ideators, err := p.generateIdeators(ctx, topic, maxIdeators)
	if err != nil {
		return nil, fmt.Errorf("persona generation failed: %w", err)
	}
	state.Ideators = ideators
	log.Printf("Generated %d ideator personas", len(ideators))

	findings, err := p.conductResearch(ctx, topic, ideators)
	if err != nil {
		return nil, fmt.Errorf("research failed: %w", err)
	}
	state.Findings = findings

	scriptor, err := p.generateScriptor(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("scriptor generation failed: %w", err)
	}
	state.Scriptor = scriptor
	log.Printf("Scriptor persona: %s (%s)", scriptor.Name, scriptor.Specialization)

	script, err := p.synthesizeScript(ctx, topic, findings, scriptor)
	if err != nil {
		return nil, fmt.Errorf("script synthesis failed: %w", err)
	}
	state.Script = script
	log.Printf("Script synthesized: %q (%s)", script.Title, script.EstimatedDuration)

	keywords, err := p.extractKeywords(ctx, topic, script)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}
	state.Keywords = keywords
	log.Printf("Extracted keywords for %d script lines", len(keywords))

	state.SearchResults = p.findCandidates(ctx, topic, keywords)
	state.Understanding = p.analyzeCandidates(ctx, topic, state.SearchResults)
	state.Parsed = normalizeAnalyses(state.Understanding)
	state.Structure = assemble(topic, script, keywords, state.Parsed)

	log.Printf("Pipeline run complete: %d segments, %d concept fallbacks",
		len(state.Structure.Segments), state.Structure.ConceptFallbacks())

	return state.Structure, nil
}

// callCtx bounds one external call with the configured timeout.
func (p *Pipeline) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.opts.CallTimeout)
}

// Package blueprint ties the pipeline to its surroundings: it runs
// generations, archives the results, and drives scheduled standing-topic
// runs.
package blueprint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cliphunt/internal/models"
	"cliphunt/internal/pipeline"
	"cliphunt/shared/config"
	"cliphunt/shared/email"
	"cliphunt/shared/scheduler"
	"cliphunt/shared/storage"
)

var ErrNoTopics = errors.New("scheduled mode requires at least one standing topic")

// Service runs blueprint generations and archives each run.
type Service struct {
	pipe   *pipeline.Pipeline
	store  *storage.RunStore
	sender *email.Sender // nil disables report mail
	cfg    *config.Config
}

func NewService(pipe *pipeline.Pipeline, store *storage.RunStore, sender *email.Sender, cfg *config.Config) *Service {
	return &Service{
		pipe:   pipe,
		store:  store,
		sender: sender,
		cfg:    cfg,
	}
}

// Generate runs the full pipeline for one topic and archives the
// result. An absent (zero) maxIdeators selects the configured default;
// negative counts are rejected by the pipeline, not defaulted.
// Archiving failures are logged, not escalated; the blueprint itself is
// the deliverable.
func (s *Service) Generate(ctx context.Context, topic string, maxIdeators int) (models.RunRecord, *models.FinalVideoStructure, error) {
	if maxIdeators == 0 {
		maxIdeators = s.cfg.Pipeline.DefaultIdeators
	}

	start := time.Now()
	structure, err := s.pipe.Run(ctx, topic, maxIdeators)
	if err != nil {
		return models.RunRecord{}, nil, err
	}
	duration := time.Since(start)

	record, err := s.store.SaveRun(topic, maxIdeators, start, duration, structure)
	if err != nil {
		log.Printf("Warning: failed to archive run for topic %q: %v", topic, err)
		record = models.RunRecord{
			Topic:           topic,
			MaxIdeators:     maxIdeators,
			StartedAt:       start,
			Duration:        duration,
			SegmentCount:    len(structure.Segments),
			ConceptFallback: structure.ConceptFallbacks(),
		}
	}

	return record, structure, nil
}

// Name implements scheduler.Agent.
func (s *Service) Name() string {
	return "cliphunt"
}

// Initialize implements scheduler.Agent. Scheduled mode is pointless
// without standing topics, so that is checked up front.
func (s *Service) Initialize() error {
	if len(s.cfg.Topics) == 0 {
		return ErrNoTopics
	}
	return nil
}

// RunOnce implements scheduler.Agent: one generation per standing
// topic. A single topic failing degrades the run; all topics failing
// fails it.
func (s *Service) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	start := time.Now()
	metrics := &runMetrics{topics: len(s.cfg.Topics)}

	var lastErr error
	for _, topic := range s.cfg.Topics {
		record, structure, err := s.Generate(ctx, topic, s.cfg.Pipeline.DefaultIdeators)
		if err != nil {
			log.Printf("Scheduled run for topic %q failed: %v", topic, err)
			metrics.failed++
			lastErr = err
			continue
		}

		metrics.segments += record.SegmentCount
		metrics.fallbacks += record.ConceptFallback

		if s.sender != nil {
			if err := s.sender.SendBlueprintReport(record, structure); err != nil {
				log.Printf("Warning: failed to email report for topic %q: %v", topic, err)
			}
		}
	}

	duration := time.Since(start)

	switch {
	case metrics.failed == metrics.topics:
		err := fmt.Errorf("all %d topics failed: %w", metrics.topics, lastErr)
		events.OnFailure(err, duration)
		return err
	case metrics.failed > 0 || metrics.fallbacks > 0:
		events.OnDegraded(metrics, duration)
	default:
		events.OnSuccess(metrics, duration)
	}

	return nil
}

type runMetrics struct {
	topics    int
	failed    int
	segments  int
	fallbacks int
}

func (m *runMetrics) GetSummary() string {
	return fmt.Sprintf("%d topics (%d failed), %d segments, %d concept fallbacks",
		m.topics, m.failed, m.segments, m.fallbacks)
}

package email

import (
	"strings"
	"testing"
	"time"

	"cliphunt/internal/models"
	"cliphunt/shared/config"
)

func TestGenerateReportBody(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})

	source := "https://www.youtube.com/watch?v=abc"
	record := models.RunRecord{
		RunID:           "run-1",
		Topic:           "lakers comeback",
		MaxIdeators:     2,
		StartedAt:       time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		Duration:        42 * time.Second,
		SegmentCount:    2,
		ConceptFallback: 1,
	}
	structure := &models.FinalVideoStructure{
		Title: "The Comeback",
		Goal:  "Create engaging short-form content",
		Style: []string{"informative"},
		Segments: []models.Segment{
			{
				TimeRange: "[0-5 seconds]",
				Title:     "Segment: LeBron James",
				Visual:    []models.VisualElement{{SubTimeRange: "00:07", Kind: models.VisualKindClip, Source: &source, Description: "dunk highlight"}},
				Audio:     "Background music and narration",
			},
			{
				TimeRange: "[5-10 seconds]",
				Title:     "Segment: Lakers",
				Visual:    []models.VisualElement{{SubTimeRange: "[5-10 seconds]", Kind: models.VisualKindConcept, Description: "Visual concept for the story"}},
				Audio:     "Background music and narration",
			},
		},
	}

	body, err := sender.generateReportBody(record, structure)
	if err != nil {
		t.Fatalf("generateReportBody failed: %v", err)
	}

	for _, want := range []string{
		"The Comeback",
		"lakers comeback",
		"[0-5 seconds]",
		"dunk highlight",
		source,
		"Visual concept for the story",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("report body missing %q", want)
		}
	}

	// Concept visuals have no source, so no dangling links.
	if strings.Contains(body, `href=""`) {
		t.Error("report body contains an empty link")
	}
}

func TestSendBlueprintReportRejectsNil(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})
	if err := sender.SendBlueprintReport(models.RunRecord{}, nil); err == nil {
		t.Error("expected error for nil structure")
	}
}

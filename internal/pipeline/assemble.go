package pipeline

import (
	"fmt"
	"strings"

	"cliphunt/internal/models"
)

// blueprintStyle is the fixed style-tag set stamped on every assembled
// structure.
var blueprintStyle = []string{"informative", "engaging", "dynamic"}

// assemble folds all previously produced data into the final blueprint.
// It is pure: no external calls, no mutation of its inputs. Every script
// timestamp yields one segment; segments with matching analyzed footage
// get one "clip" visual per video segment, the rest get one synthetic
// "concept" visual.
func assemble(topic string, script models.VideoScript, keywords []models.TimestampKeywords, parsed []models.ParsedVideoAnalysis) *models.FinalVideoStructure {
	segments := make([]models.Segment, 0, len(keywords))

	for _, tk := range keywords {
		analysis := matchAnalysis(tk, parsed)

		var visuals []models.VisualElement
		if analysis != nil {
			for _, vs := range analysis.Segments {
				source := analysis.VideoURL
				visuals = append(visuals, models.VisualElement{
					SubTimeRange: vs.Timestamp,
					Kind:         models.VisualKindClip,
					Source:       &source,
					Description:  vs.Content,
				})
			}
		}

		if len(visuals) == 0 {
			visuals = append(visuals, models.VisualElement{
				SubTimeRange: tk.Timestamp,
				Kind:         models.VisualKindConcept,
				Source:       nil,
				Description:  fmt.Sprintf("Visual concept for: %s", tk.ContentLine),
			})
		}

		segments = append(segments, models.Segment{
			TimeRange: tk.Timestamp,
			Title:     fmt.Sprintf("Segment: %s", strings.Join(tk.Keywords, ", ")),
			Visual:    visuals,
			Audio:     "Background music and narration",
		})
	}

	return &models.FinalVideoStructure{
		Title:    script.Title,
		Goal:     fmt.Sprintf("Create engaging short-form content about %s using insights from research and video analysis", topic),
		Style:    blueprintStyle,
		Segments: segments,
	}
}

// matchAnalysis finds the analysis belonging to a script timestamp. The
// stable index is the primary key; exact label equality is kept as a
// fallback for records produced without indexes.
func matchAnalysis(tk models.TimestampKeywords, parsed []models.ParsedVideoAnalysis) *models.ParsedVideoAnalysis {
	for i := range parsed {
		if parsed[i].Index == tk.Index {
			return &parsed[i]
		}
	}
	for i := range parsed {
		if parsed[i].ScriptTimestamp == tk.Timestamp {
			return &parsed[i]
		}
	}
	return nil
}

package models

import "fmt"

// Persona is one generated analytical viewpoint ("ideator") used to
// diversify research angles for a topic.
type Persona struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

// Identity renders the persona as prompt-ready text.
func (p *Persona) Identity() string {
	return fmt.Sprintf("Name: %s\nRole: %s\nDescription: %s\n", p.Name, p.Role, p.Description)
}

// Scriptor is the single synthesizing persona that owns the final
// script's voice. It is generated independently of research findings.
type Scriptor struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	WritingStyle   string `json:"writing_style"`
}

func (s *Scriptor) Identity() string {
	return fmt.Sprintf("Name: %s\nSpecialization: %s\nWriting Style: %s\n", s.Name, s.Specialization, s.WritingStyle)
}

// SearchDirective is a persona's chosen query plus the strategy tag
// selecting which search backend should run it. Unknown tags fall back
// to the default strategy at dispatch time.
type SearchDirective struct {
	Query     string `json:"query"`
	Strategy  string `json:"search_method"`
	Reasoning string `json:"reasoning"`
}

// ResearchFinding is the unit of knowledge one persona hands to script
// synthesis. Search failures are embedded in RawResults rather than
// aborting the run; DegradedReason names what failed when they are.
type ResearchFinding struct {
	Persona        Persona         `json:"persona"`
	Directive      SearchDirective `json:"directive"`
	RawResults     string          `json:"raw_results"`
	KeyInsight     string          `json:"key_insight"`
	DegradedReason string          `json:"degraded_reason,omitempty"`
}

// Package search implements the web research backends the pipeline's
// personas choose between. Every backend shares one signature so the
// research coordinator can dispatch on an LLM-chosen tag without caring
// which service answers.
package search

import (
	"context"
	"log"
	"sort"
)

// Strategy tags the model can pick. Unknown tags dispatch to the
// default strategy rather than failing.
const (
	TagTavily      = "tavily"
	TagDuckDuckGo  = "duckduckgo"
	TagRedditStyle = "reddit_style"
	TagNewsFocused = "news_focused"
)

// Strategy is a single search backend: query in, human-readable result
// text out. Implementations return errors for internal failures; the
// caller decides how to degrade.
type Strategy interface {
	Name() string
	Search(ctx context.Context, query string) (string, error)
}

// Registry maps strategy tags to implementations with a default for
// unregistered tags.
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

func NewRegistry(fallback Strategy) *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy),
		fallback:   fallback,
	}
	r.Register(fallback)
	return r
}

func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Lookup resolves a strategy tag, silently falling back to the default
// strategy for tags nothing registered.
func (r *Registry) Lookup(tag string) Strategy {
	if s, ok := r.strategies[tag]; ok {
		return s
	}
	log.Printf("Unknown search strategy %q, using %s", tag, r.fallback.Name())
	return r.fallback
}

// Tags returns the registered strategy tags in stable order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.strategies))
	for tag := range r.strategies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultRegistry wires the four build-time strategies around a Tavily
// client and a DuckDuckGo client.
func DefaultRegistry(tavily *TavilyClient, ddg *DuckDuckGoClient) *Registry {
	r := NewRegistry(&BroadStrategy{client: tavily})
	r.Register(&DiscussionStrategy{client: tavily})
	r.Register(&NewsStrategy{client: tavily})
	r.Register(&KeywordStrategy{client: ddg})
	return r
}

package dsl

import (
	"fmt"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

// Builder manages scenario graph construction.
type Builder struct {
	graph *domain.ScenarioGraph
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new scenario builder.
func New(id string) *Builder {
	return &Builder{
		graph: &domain.ScenarioGraph{
			ID:    id,
			Nodes: make(map[string]domain.Node),
		},
		nodes: make(map[string]*NodeBuilder),
	}
}

// Title adds a localized title.
func (b *Builder) Title(lang, text string) *Builder {
	b.graph.Title = setText(b.graph.Title, lang, text)
	return b
}

// Category adds a localized category.
func (b *Builder) Category(lang, text string) *Builder {
	b.graph.Category = setText(b.graph.Category, lang, text)
	return b
}

// Description adds a localized description.
func (b *Builder) Description(lang, text string) *Builder {
	b.graph.Description = setText(b.graph.Description, lang, text)
	return b
}

// Languages declares the languages the scenario supports.
func (b *Builder) Languages(langs ...string) *Builder {
	b.graph.SupportedLanguages = langs
	return b
}

// Difficulty sets the difficulty label.
func (b *Builder) Difficulty(level string) *Builder {
	b.graph.Difficulty = level
	return b
}

// Estimated sets the expected duration in minutes.
func (b *Builder) Estimated(minutes int) *Builder {
	b.graph.EstimatedMinutes = minutes
	return b
}

// Node creates a new node in the graph. If the node already exists, it
// returns the existing builder.
func (b *Builder) Node(key string) *NodeBuilder {
	if nb, ok := b.nodes[key]; ok {
		return nb
	}
	nb := &NodeBuilder{key: key, builder: b}
	b.nodes[key] = nb
	b.order = append(b.order, key)
	return nb
}

// Build compiles the graph. Nodes are counted into the turn estimate in
// declaration order.
func (b *Builder) Build() (*domain.ScenarioGraph, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("scenario %q has no nodes", b.graph.ID)
	}
	for _, key := range b.order {
		b.graph.Nodes[key] = b.nodes[key].node
	}
	b.graph.TotalTurnsEstimate = len(b.order)
	return b.graph, nil
}

func setText(t domain.LocalizedText, lang, text string) domain.LocalizedText {
	if t == nil {
		t = make(domain.LocalizedText)
	}
	t[lang] = text
	return t
}

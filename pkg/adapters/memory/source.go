package memory

import "github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"

// Source implements ports.ScenarioSource from in-memory graphs. Intended
// for tests and embedded content.
type Source struct {
	graphs map[string]*domain.ScenarioGraph
}

// NewSource builds a source from domain values, keyed by scenario ID.
func NewSource(graphs ...*domain.ScenarioGraph) *Source {
	m := make(map[string]*domain.ScenarioGraph, len(graphs))
	for _, g := range graphs {
		m[g.ID] = g
	}
	return &Source{graphs: m}
}

// LoadAll returns the configured graphs.
func (s *Source) LoadAll() (map[string]*domain.ScenarioGraph, error) {
	out := make(map[string]*domain.ScenarioGraph, len(s.graphs))
	for id, g := range s.graphs {
		out[id] = g
	}
	return out, nil
}

package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

// Source implements ports.ScenarioSource over a directory of scenario
// JSON files. Each *.json file holds one scenario graph keyed by its "id"
// field.
type Source struct {
	dir string
}

// NewSource creates a source reading from the given directory.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// LoadAll reads and decodes every scenario file. Malformed content fails
// the whole load: content problems should surface at startup, not during
// a live session.
func (s *Source) LoadAll() (map[string]*domain.ScenarioGraph, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory %s: %w", s.dir, err)
	}

	graphs := make(map[string]*domain.ScenarioGraph)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		graph, err := loadGraph(path)
		if err != nil {
			return nil, err
		}
		if _, exists := graphs[graph.ID]; exists {
			return nil, fmt.Errorf("%s: duplicate scenario id %q", entry.Name(), graph.ID)
		}
		graphs[graph.ID] = graph
	}
	return graphs, nil
}

func loadGraph(path string) (*domain.ScenarioGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	var graph domain.ScenarioGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	if graph.ID == "" {
		return nil, fmt.Errorf("%s: scenario is missing an id", path)
	}
	if len(graph.Nodes) == 0 {
		return nil, fmt.Errorf("%s: scenario %q has no nodes", path, graph.ID)
	}

	// Checklist rules without an explicit type default to normal.
	for key, node := range graph.Nodes {
		for i, rule := range node.Checklist {
			if rule.Kind == "" {
				node.Checklist[i].Kind = domain.RuleNormal
			}
		}
		graph.Nodes[key] = node
	}

	return &graph, nil
}

package scenario

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Akhilesh30Jadhav/Shushrusha/internal/logging"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/ports"
)

// Store caches scenario graphs for the process lifetime and answers all
// read queries over them.
type Store struct {
	source ports.ScenarioSource
	logger *slog.Logger

	once    sync.Once
	graphs  map[string]*domain.ScenarioGraph
	loadErr error
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a structured logger for load events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store over the given content source. Nothing is
// loaded until the first accessor call.
func NewStore(source ports.ScenarioSource, opts ...Option) *Store {
	s := &Store{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load performs the one-time content load. Concurrent first callers are
// serialized by sync.Once; only the winner pays the load cost.
func (s *Store) load() error {
	s.once.Do(func() {
		graphs, err := s.source.LoadAll()
		if err != nil {
			s.loadErr = fmt.Errorf("failed to load scenarios: %w", err)
			return
		}
		s.graphs = graphs
		s.logger.Info("scenario content loaded", "scenarios", len(graphs))
	})
	return s.loadErr
}

// All returns every cached scenario graph keyed by ID. The map is shared;
// callers must treat it as read-only.
func (s *Store) All() (map[string]*domain.ScenarioGraph, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.graphs, nil
}

// ScenariosForLanguage returns one summary per scenario that supports the
// given language, with metadata resolved to that language (English
// fallback per field). Results are ordered by scenario ID.
func (s *Store) ScenariosForLanguage(lang string) ([]domain.ScenarioSummary, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summaries := make([]domain.ScenarioSummary, 0, len(ids))
	for _, id := range ids {
		g := s.graphs[id]
		if !g.Supports(lang) {
			continue
		}
		summaries = append(summaries, g.Summary(lang))
	}
	return summaries, nil
}

// Scenario returns the full graph for an ID.
func (s *Store) Scenario(id string) (*domain.ScenarioGraph, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	g, ok := s.graphs[id]
	if !ok {
		return nil, fmt.Errorf("scenario %q: %w", id, domain.ErrScenarioNotFound)
	}
	return g, nil
}

// Node returns a node with its patient text resolved to lang. Checklist
// and transitions are language-independent and returned unchanged.
func (s *Store) Node(scenarioID, nodeKey, lang string) (*domain.ResolvedNode, error) {
	g, err := s.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}
	node, ok := g.Nodes[nodeKey]
	if !ok {
		return nil, fmt.Errorf("scenario %q node %q: %w", scenarioID, nodeKey, domain.ErrNodeNotFound)
	}
	return &domain.ResolvedNode{
		NodeKey:     nodeKey,
		PatientText: node.PatientText.Resolve(lang),
		Checklist:   node.Checklist,
		Transitions: node.Transitions,
	}, nil
}

// NextNode resolves the transition out of the current node: the target of
// the first "default" transition, or the end sentinel when no default
// transition exists or the scenario/node is unknown.
//
// userText is accepted for future conditional transitions but does not
// currently influence the choice.
func (s *Store) NextNode(scenarioID, nodeKey, userText string) string {
	_ = userText

	g, err := s.Scenario(scenarioID)
	if err != nil {
		return domain.EndNode
	}
	node, ok := g.Nodes[nodeKey]
	if !ok {
		return domain.EndNode
	}
	for _, t := range node.Transitions {
		if t.IsDefault() {
			return t.Target
		}
	}
	return domain.EndNode
}

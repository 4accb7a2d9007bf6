package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/Akhilesh30Jadhav/Shushrusha/internal/logging"
	"github.com/Akhilesh30Jadhav/Shushrusha/internal/observability"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/evaluation"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/ports"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/scenario"
	"github.com/google/uuid"
)

const timeLayout = time.RFC3339

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent
// operations. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store     ports.SessionStore
	scenarios *scenario.Store

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
	newID  func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator overrides session ID generation (used by tests).
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a session Manager over a persistence store and the
// scenario graph store.
func NewManager(store ports.SessionStore, scenarios *scenario.Store, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		scenarios: scenarios,
		locks:     make(map[string]*lockEntry),
		logger:    logging.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID)
// after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it
// reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes fn while holding the lock for the session.
func (m *Manager) withLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn(ctx)
}

// StartResult is returned when a session begins: the created session, the
// scenario's entry node resolved to the session language, and the
// scenario metadata.
type StartResult struct {
	Session  *domain.Session
	Node     *domain.ResolvedNode
	Scenario domain.ScenarioSummary
}

// Start creates a new session for a scenario and returns its start node.
func (m *Manager) Start(ctx context.Context, scenarioID, lang, deviceID string) (*StartResult, error) {
	graph, err := m.scenarios.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}

	node, err := m.scenarios.Node(scenarioID, "start", lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoStartNode, scenarioID)
	}

	sess := domain.NewSession(m.newID(), scenarioID, lang, deviceID)
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	observability.SessionsStarted.WithLabelValues(scenarioID).Inc()
	m.logger.Info("session started",
		"session_id", sess.ID,
		"scenario_id", scenarioID,
		"lang", lang,
	)

	return &StartResult{
		Session:  sess,
		Node:     node,
		Scenario: graph.Summary(lang),
	}, nil
}

// TurnResult is the outcome of one submitted turn.
type TurnResult struct {
	Evaluation domain.TurnEvaluation
	// NextNode is nil when the session is complete (or the next node
	// could not be resolved).
	NextNode           *domain.ResolvedNode
	TurnIndex          int
	TotalTurnsEstimate int
	Complete           bool
}

// SubmitTurn evaluates one turn of worker text against the current node's
// checklist, appends it to the session, and resolves the next node.
func (m *Manager) SubmitTurn(ctx context.Context, sessionID, nodeKey, userText string) (*TurnResult, error) {
	var result *TurnResult
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.Completed() {
			return domain.ErrSessionCompleted
		}

		node, err := m.scenarios.Node(sess.ScenarioID, nodeKey, sess.Language)
		if err != nil {
			return err
		}

		eval := evaluation.EvaluateTurn(userText, node.Checklist)
		turn := domain.Turn{
			Index:          sess.NextTurnIndex(),
			NodeKey:        nodeKey,
			UserText:       userText,
			MatchedItems:   eval.MatchedItems,
			MissedItems:    eval.MissedItems,
			CriticalMissed: eval.CriticalMissed,
		}
		sess.Turns = append(sess.Turns, turn)

		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist turn: %w", err)
		}

		observability.TurnsEvaluated.WithLabelValues(sess.ScenarioID).Inc()

		nextKey := m.scenarios.NextNode(sess.ScenarioID, nodeKey, userText)
		result = &TurnResult{
			Evaluation: eval,
			TurnIndex:  turn.Index,
			Complete:   nextKey == domain.EndNode,
		}

		if graph, err := m.scenarios.Scenario(sess.ScenarioID); err == nil {
			result.TotalTurnsEstimate = graph.TotalTurnsEstimate
		}

		if !result.Complete {
			next, err := m.scenarios.Node(sess.ScenarioID, nextKey, sess.Language)
			if err != nil {
				m.logger.Warn("next node missing from scenario",
					"session_id", sessionID,
					"node_key", nextKey,
					"err", err,
				)
			} else {
				result.NextNode = next
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Complete folds the session's turns into the final report and marks the
// session finished. Completing an already-completed session recomputes
// the report from the same turns, which yields the same result.
func (m *Manager) Complete(ctx context.Context, sessionID string) (*domain.SessionReport, error) {
	var report *domain.SessionReport
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		graph, err := m.scenarios.Scenario(sess.ScenarioID)
		if err != nil {
			return err
		}

		r := evaluation.GenerateReport(sess.Turns, graph)
		now := time.Now().UTC()
		sess.CompletedAt = &now
		sess.Score = &r.Score
		sess.Report = &r

		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}

		observability.ReportsGenerated.Inc()
		m.logger.Info("session completed",
			"session_id", sessionID,
			"score", r.Score,
			"critical_misses", len(r.CriticalMisses),
		)

		report = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Summary is one history entry.
type Summary struct {
	SessionID     string
	ScenarioID    string
	ScenarioTitle string
	Language      string
	StartedAt     string
	CompletedAt   string
	Score         *float64
}

// History returns recent sessions, newest first, optionally filtered by
// device.
func (m *Manager) History(ctx context.Context, deviceID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	sessions, err := m.store.Recent(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, m.summarize(sess))
	}
	return summaries, nil
}

// ReportView pairs a session's metadata with its stored report (nil when
// the session has not been completed).
type ReportView struct {
	Summary Summary
	Report  *domain.SessionReport
}

// Report returns the stored report for a session.
func (m *Manager) Report(ctx context.Context, sessionID string) (*ReportView, error) {
	sess, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &ReportView{
		Summary: m.summarize(sess),
		Report:  sess.Report,
	}, nil
}

func (m *Manager) summarize(sess *domain.Session) Summary {
	title := ""
	if graph, err := m.scenarios.Scenario(sess.ScenarioID); err == nil {
		title = graph.Title.Resolve(sess.Language)
	}

	s := Summary{
		SessionID:     sess.ID,
		ScenarioID:    sess.ScenarioID,
		ScenarioTitle: title,
		Language:      sess.Language,
		StartedAt:     sess.StartedAt.Format(timeLayout),
		Score:         sess.Score,
	}
	if sess.CompletedAt != nil {
		s.CompletedAt = sess.CompletedAt.Format(timeLayout)
	}
	return s
}

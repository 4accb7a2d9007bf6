package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/memory"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/scenario"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *domain.ScenarioGraph {
	return &domain.ScenarioGraph{
		ID:                 "anc-visit",
		Title:              domain.LocalizedText{"en": "Antenatal Care Visit", "hi": "प्रसवपूर्व देखभाल"},
		Category:           domain.LocalizedText{"en": "Maternal Health"},
		Description:        domain.LocalizedText{"en": "A routine ANC home visit."},
		SupportedLanguages: []string{"en", "hi"},
		Difficulty:         "beginner",
		EstimatedMinutes:   10,
		TotalTurnsEstimate: 2,
		Nodes: map[string]domain.Node{
			"start": {
				PatientText: domain.LocalizedText{"en": "I have been feeling tired."},
				Checklist: []domain.ChecklistRule{
					{Item: "Ask danger signs", Kind: domain.RuleCritical, Keywords: []string{"danger", "bleeding"}},
					{Item: "Ask about fever", Kind: domain.RuleNormal, Keywords: []string{"fever"}},
				},
				Transitions: []domain.Transition{{Condition: "default", Target: "advice"}},
			},
			"advice": {
				PatientText: domain.LocalizedText{"en": "What should I eat?"},
				Checklist: []domain.ChecklistRule{
					{Item: "Counsel on nutrition", Kind: domain.RuleNormal, Keywords: []string{"iron", "diet", "nutrition"}},
				},
				Transitions: []domain.Transition{{Condition: "default", Target: domain.EndNode}},
			},
		},
	}
}

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	scenarios := scenario.NewStore(memory.NewSource(testGraph()))
	var n int
	return session.NewManager(memory.NewStore(), scenarios,
		session.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	)
}

func TestManager_StartToReport(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(t)

	start, err := mgr.Start(ctx, "anc-visit", "en", "device-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", start.Session.ID)
	assert.Equal(t, "start", start.Node.NodeKey)
	assert.Equal(t, "I have been feeling tired.", start.Node.PatientText)
	assert.Equal(t, "Antenatal Care Visit", start.Scenario.Title)

	// First turn misses the critical danger-sign question.
	turn1, err := mgr.SubmitTurn(ctx, "session-1", "start", "Do you have a fever?")
	require.NoError(t, err)
	assert.Equal(t, 1, turn1.TurnIndex)
	assert.Equal(t, 2, turn1.TotalTurnsEstimate)
	assert.False(t, turn1.Complete)
	require.NotNil(t, turn1.NextNode)
	assert.Equal(t, "advice", turn1.NextNode.NodeKey)
	assert.Equal(t, []string{"Ask about fever"}, turn1.Evaluation.MatchedItems)
	assert.Equal(t, []string{"Ask danger signs"}, turn1.Evaluation.CriticalMissed)

	// Second turn matches the nutrition item and ends the scenario.
	turn2, err := mgr.SubmitTurn(ctx, "session-1", "advice", "Eat iron rich food.")
	require.NoError(t, err)
	assert.Equal(t, 2, turn2.TurnIndex)
	assert.True(t, turn2.Complete)
	assert.Nil(t, turn2.NextNode)

	report, err := mgr.Complete(ctx, "session-1")
	require.NoError(t, err)
	// Weights: critical 2.0 missed, normal 1.0 + 1.0 matched.
	assert.Equal(t, 50.0, report.Score)
	assert.Equal(t, []string{"Ask danger signs"}, report.CriticalMisses)
	require.Len(t, report.Transcript, 2)
	assert.Equal(t, "I have been feeling tired.", report.Transcript[0].Patient)

	view, err := mgr.Report(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, view.Report)
	assert.Equal(t, report.Score, view.Report.Score)
	require.NotNil(t, view.Summary.Score)
	assert.Equal(t, 50.0, *view.Summary.Score)
	assert.NotEmpty(t, view.Summary.CompletedAt)
}

func TestManager_StartUnknownScenario(t *testing.T) {
	mgr := newTestManager(t)
	_, err := mgr.Start(context.Background(), "missing", "en", "")
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestManager_StartMissingStartNode(t *testing.T) {
	graph := testGraph()
	node := graph.Nodes["start"]
	delete(graph.Nodes, "start")
	graph.Nodes["intro"] = node

	scenarios := scenario.NewStore(memory.NewSource(graph))
	mgr := session.NewManager(memory.NewStore(), scenarios)

	_, err := mgr.Start(context.Background(), "anc-visit", "en", "")
	assert.ErrorIs(t, err, domain.ErrNoStartNode)
}

func TestManager_SubmitTurnUnknownSession(t *testing.T) {
	mgr := newTestManager(t)
	_, err := mgr.SubmitTurn(context.Background(), "ghost", "start", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_SubmitTurnUnknownNode(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(t)
	_, err := mgr.Start(ctx, "anc-visit", "en", "")
	require.NoError(t, err)

	_, err = mgr.SubmitTurn(ctx, "session-1", "nope", "hello")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestManager_SubmitTurnAfterComplete(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(t)
	_, err := mgr.Start(ctx, "anc-visit", "en", "")
	require.NoError(t, err)

	_, err = mgr.Complete(ctx, "session-1")
	require.NoError(t, err)

	_, err = mgr.SubmitTurn(ctx, "session-1", "start", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
}

func TestManager_CompleteUnknownSession(t *testing.T) {
	mgr := newTestManager(t)
	_, err := mgr.Complete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_History(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(t)

	_, err := mgr.Start(ctx, "anc-visit", "en", "device-a")
	require.NoError(t, err)
	_, err = mgr.Start(ctx, "anc-visit", "hi", "device-b")
	require.NoError(t, err)

	all, err := mgr.History(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forA, err := mgr.History(ctx, "device-a", 10)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, "session-1", forA[0].SessionID)
	assert.Equal(t, "Antenatal Care Visit", forA[0].ScenarioTitle)
	assert.Nil(t, forA[0].Score)

	// Titles resolve to the session language.
	forB, err := mgr.History(ctx, "device-b", 10)
	require.NoError(t, err)
	require.Len(t, forB, 1)
	assert.Equal(t, "प्रसवपूर्व देखभाल", forB[0].ScenarioTitle)
}

func TestManager_SessionLanguageDrivesNodeText(t *testing.T) {
	ctx := context.Background()
	mgr := newTestManager(t)

	start, err := mgr.Start(ctx, "anc-visit", "hi", "")
	require.NoError(t, err)
	// No Hindi translation for this node; falls back to English.
	assert.Equal(t, "I have been feeling tired.", start.Node.PatientText)
}

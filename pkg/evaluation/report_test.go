package evaluation

import (
	"testing"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportScenario() *domain.ScenarioGraph {
	return &domain.ScenarioGraph{
		ID:                 "anc-visit",
		SupportedLanguages: []string{"en", "hi"},
		Nodes: map[string]domain.Node{
			"start": {
				PatientText: domain.LocalizedText{"en": "I feel dizzy.", "hi": "मुझे चक्कर आ रहे हैं।"},
				Checklist: []domain.ChecklistRule{
					{Item: "Ask danger signs", Kind: domain.RuleCritical, Keywords: []string{"danger", "bleeding"}},
					{Item: "Ask about fever", Kind: domain.RuleNormal, Keywords: []string{"fever"}},
				},
				Transitions: []domain.Transition{{Condition: "default", Target: "advice"}},
			},
			"advice": {
				PatientText: domain.LocalizedText{"en": "What should I eat?"},
				Checklist: []domain.ChecklistRule{
					{Item: "Counsel on nutrition", Kind: domain.RuleNormal, Keywords: []string{"nutrition", "iron"}},
				},
				Transitions: []domain.Transition{{Condition: "default", Target: domain.EndNode}},
			},
		},
	}
}

func TestGenerateReport_FullMatchSingleNormalItem(t *testing.T) {
	scenario := &domain.ScenarioGraph{
		ID: "mini",
		Nodes: map[string]domain.Node{
			"start": {
				PatientText: domain.LocalizedText{"en": "Hello."},
				Checklist: []domain.ChecklistRule{
					{Item: "Greet the patient", Kind: domain.RuleNormal, Keywords: []string{"hello"}},
				},
			},
		},
	}
	turns := []domain.Turn{{
		Index:        1,
		NodeKey:      "start",
		UserText:     "Hello, how are you?",
		MatchedItems: []string{"Greet the patient"},
		MissedItems:  []string{},
	}}

	report := GenerateReport(turns, scenario)

	assert.Equal(t, 100.0, report.Score)
	require.Len(t, report.ChecklistResults, 1)
	assert.Equal(t, domain.StatusDone, report.ChecklistResults[0].Status)
	assert.Empty(t, report.CriticalMisses)
	assert.Equal(t, []string{suggestionAllGood}, report.Suggestions)
}

func TestGenerateReport_WeightsAndCriticalMisses(t *testing.T) {
	scenario := reportScenario()
	turns := []domain.Turn{
		{
			Index:        1,
			NodeKey:      "start",
			UserText:     "Do you have a fever?",
			MatchedItems: []string{"Ask about fever"},
			MissedItems:  []string{"Ask danger signs"},
		},
		{
			Index:        2,
			NodeKey:      "advice",
			UserText:     "Just rest.",
			MatchedItems: []string{},
			MissedItems:  []string{"Counsel on nutrition"},
		},
	}

	report := GenerateReport(turns, scenario)

	// Weights: critical 2.0 missed, normal 1.0 matched, normal 1.0 missed.
	assert.Equal(t, 25.0, report.Score)
	assert.Equal(t, []string{"Ask danger signs"}, report.CriticalMisses)

	require.Len(t, report.ChecklistResults, 3)
	assert.Equal(t, "Ask danger signs", report.ChecklistResults[0].Item)
	assert.True(t, report.ChecklistResults[0].IsCritical)
	assert.Equal(t, domain.StatusMissed, report.ChecklistResults[0].Status)
	assert.Equal(t, "Ask about fever", report.ChecklistResults[1].Item)
	assert.Equal(t, domain.StatusDone, report.ChecklistResults[1].Status)
	assert.Equal(t, "Counsel on nutrition", report.ChecklistResults[2].Item)

	// Critical warning first, then the nutrition tip for the missed
	// non-critical item name.
	require.NotEmpty(t, report.Suggestions)
	assert.Equal(t, suggestionCritical, report.Suggestions[0])
	assert.Contains(t, report.Suggestions[1], "nutrition")
}

func TestGenerateReport_StickyMatchAcrossTurns(t *testing.T) {
	scenario := reportScenario()
	turns := []domain.Turn{
		{
			Index:        1,
			NodeKey:      "start",
			UserText:     "hello",
			MatchedItems: []string{},
			MissedItems:  []string{"Ask danger signs", "Ask about fever"},
		},
		{
			// Same node revisited; matching now must stick.
			Index:        2,
			NodeKey:      "start",
			UserText:     "any bleeding or danger signs? any fever?",
			MatchedItems: []string{"Ask danger signs", "Ask about fever"},
			MissedItems:  []string{},
		},
	}

	report := GenerateReport(turns, scenario)

	assert.Equal(t, 100.0, report.Score)
	assert.Empty(t, report.CriticalMisses)
	for _, r := range report.ChecklistResults {
		assert.Equal(t, domain.StatusDone, r.Status, "item %s", r.Item)
	}
}

func TestGenerateReport_ScoreMonotonicInMatches(t *testing.T) {
	scenario := reportScenario()
	miss := domain.Turn{Index: 1, NodeKey: "start", MatchedItems: []string{}, MissedItems: []string{"Ask danger signs", "Ask about fever"}}
	matchNormal := domain.Turn{Index: 1, NodeKey: "start", MatchedItems: []string{"Ask about fever"}, MissedItems: []string{"Ask danger signs"}}
	matchCritical := domain.Turn{Index: 1, NodeKey: "start", MatchedItems: []string{"Ask danger signs"}, MissedItems: []string{"Ask about fever"}}
	matchBoth := domain.Turn{Index: 1, NodeKey: "start", MatchedItems: []string{"Ask danger signs", "Ask about fever"}, MissedItems: []string{}}

	none := GenerateReport([]domain.Turn{miss}, scenario).Score
	normal := GenerateReport([]domain.Turn{matchNormal}, scenario).Score
	critical := GenerateReport([]domain.Turn{matchCritical}, scenario).Score
	both := GenerateReport([]domain.Turn{matchBoth}, scenario).Score

	assert.Less(t, none, normal)
	assert.Less(t, normal, critical, "matching a critical item must be worth more than a normal one")
	assert.Less(t, critical, both)
	assert.GreaterOrEqual(t, none, 0.0)
	assert.LessOrEqual(t, both, 100.0)
}

func TestGenerateReport_NoTurnsScoresZero(t *testing.T) {
	report := GenerateReport(nil, reportScenario())
	assert.Equal(t, 0.0, report.Score)
	assert.Empty(t, report.ChecklistResults)
	assert.Empty(t, report.Transcript)
	assert.Equal(t, []string{suggestionAllGood}, report.Suggestions)
}

func TestGenerateReport_UnknownNodeContributesNothing(t *testing.T) {
	scenario := reportScenario()
	turns := []domain.Turn{
		{Index: 1, NodeKey: "no-such-node", UserText: "hi", MatchedItems: []string{}, MissedItems: []string{}},
	}

	report := GenerateReport(turns, scenario)

	assert.Equal(t, 0.0, report.Score)
	assert.Empty(t, report.ChecklistResults)
	// The transcript still carries the turn, with empty patient text.
	require.Len(t, report.Transcript, 1)
	assert.Equal(t, "", report.Transcript[0].Patient)
	assert.Equal(t, "hi", report.Transcript[0].Worker)
}

func TestGenerateReport_TranscriptOrderAndEnglishText(t *testing.T) {
	scenario := reportScenario()
	turns := []domain.Turn{
		{Index: 1, NodeKey: "start", UserText: "first answer", MatchedItems: []string{"Ask about fever"}, MissedItems: []string{"Ask danger signs"}},
		{Index: 2, NodeKey: "advice", UserText: "second answer", MatchedItems: []string{}, MissedItems: []string{"Counsel on nutrition"}},
	}

	report := GenerateReport(turns, scenario)

	require.Len(t, report.Transcript, 2)
	assert.Equal(t, 1, report.Transcript[0].Turn)
	assert.Equal(t, "I feel dizzy.", report.Transcript[0].Patient)
	assert.Equal(t, "first answer", report.Transcript[0].Worker)
	assert.Equal(t, 2, report.Transcript[1].Turn)
	assert.Equal(t, "What should I eat?", report.Transcript[1].Patient)
}

func TestGenerateReport_Deterministic(t *testing.T) {
	scenario := reportScenario()
	turns := []domain.Turn{
		{Index: 1, NodeKey: "start", UserText: "fever check", MatchedItems: []string{"Ask about fever"}, MissedItems: []string{"Ask danger signs"}},
		{Index: 2, NodeKey: "advice", UserText: "eat iron rich food", MatchedItems: []string{"Counsel on nutrition"}, MissedItems: []string{}},
	}

	first := GenerateReport(turns, scenario)
	second := GenerateReport(turns, scenario)
	assert.Equal(t, first, second)
}

func TestBuildSuggestions_CategoryTips(t *testing.T) {
	cases := []struct {
		item string
		want string
	}{
		{"Schedule follow-up visit", "follow-up"},
		{"Discuss diet plan", "nutrition"},
		{"Explain hygiene practices", "hygiene"},
		{"Counsel on breastfeeding", "breastfeeding"},
		{"Advise ORS and zinc", "ORS"},
	}

	for _, tc := range cases {
		t.Run(tc.item, func(t *testing.T) {
			results := []domain.ChecklistResult{
				{Item: tc.item, Status: domain.StatusMissed, IsCritical: false},
			}
			suggestions := buildSuggestions(results, nil)
			require.Len(t, suggestions, 1)
			assert.Contains(t, suggestions[0], tc.want)
		})
	}
}

func TestBuildSuggestions_CategoriesIndependent(t *testing.T) {
	results := []domain.ChecklistResult{
		{Item: "Schedule follow-up", Status: domain.StatusMissed},
		{Item: "Discuss nutrition", Status: domain.StatusMissed},
		{Item: "Explain hygiene", Status: domain.StatusMissed},
	}
	suggestions := buildSuggestions(results, nil)
	assert.Len(t, suggestions, 3)
}

func TestBuildSuggestions_DoneItemsDoNotTrigger(t *testing.T) {
	results := []domain.ChecklistResult{
		{Item: "Discuss nutrition", Status: domain.StatusDone},
	}
	suggestions := buildSuggestions(results, nil)
	assert.Equal(t, []string{suggestionAllGood}, suggestions)
}

package validator

import (
	"testing"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGraph() *domain.ScenarioGraph {
	return &domain.ScenarioGraph{
		ID:                 "anc-visit",
		Title:              domain.LocalizedText{"en": "ANC Visit"},
		Category:           domain.LocalizedText{"en": "Maternal Health"},
		SupportedLanguages: []string{"en"},
		Nodes: map[string]domain.Node{
			"start": {
				PatientText: domain.LocalizedText{"en": "I feel tired."},
				Checklist: []domain.ChecklistRule{
					{Item: "Ask danger signs", Kind: domain.RuleCritical, Keywords: []string{"danger"}},
				},
				Transitions: []domain.Transition{{Condition: "default", Target: "wrap_up"}},
			},
			"wrap_up": {
				PatientText: domain.LocalizedText{"en": "Thank you."},
				Transitions: []domain.Transition{{Condition: "default", Target: domain.EndNode}},
			},
		},
	}
}

func TestValidateGraph_Valid(t *testing.T) {
	assert.Empty(t, ValidateGraph(validGraph()))
}

func TestValidateGraph_MissingStart(t *testing.T) {
	g := validGraph()
	node := g.Nodes["start"]
	delete(g.Nodes, "start")
	g.Nodes["intro"] = node

	findings := ValidateGraph(g)
	require.NotEmpty(t, findings)
	assert.Contains(t, findings[0], "missing 'start' node")
}

func TestValidateGraph_DeadEnd(t *testing.T) {
	g := validGraph()
	node := g.Nodes["wrap_up"]
	node.Transitions = nil
	g.Nodes["wrap_up"] = node

	findings := ValidateGraph(g)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "dead-end")
}

func TestValidateGraph_UnknownTransitionTarget(t *testing.T) {
	g := validGraph()
	node := g.Nodes["start"]
	node.Transitions = []domain.Transition{{Condition: "default", Target: "ghost"}}
	g.Nodes["start"] = node

	findings := ValidateGraph(g)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], `unknown node "ghost"`)
}

func TestValidateGraph_EndSentinelIsNotUnknown(t *testing.T) {
	assert.Empty(t, ValidateGraph(validGraph()), "__end__ must not be reported as unknown")
}

func TestValidateGraph_ChecklistProblems(t *testing.T) {
	g := validGraph()
	node := g.Nodes["start"]
	node.Checklist = []domain.ChecklistRule{
		{Item: "", Keywords: []string{"x"}},
		{Item: "No keywords", Kind: domain.RuleNormal},
	}
	g.Nodes["start"] = node

	findings := ValidateGraph(g)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0], "without an item name")
	assert.Contains(t, findings[1], "has no keywords")
}

func TestValidateGraph_DuplicateItemAcrossNodes(t *testing.T) {
	g := validGraph()
	node := g.Nodes["wrap_up"]
	node.Checklist = []domain.ChecklistRule{
		{Item: "Ask danger signs", Kind: domain.RuleNormal, Keywords: []string{"danger"}},
	}
	g.Nodes["wrap_up"] = node

	findings := ValidateGraph(g)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "must be unique within a scenario")
}

func TestValidateGraph_MissingMetadata(t *testing.T) {
	g := validGraph()
	g.Title = nil
	g.SupportedLanguages = nil

	findings := ValidateGraph(g)
	assert.Len(t, findings, 2)
}

func TestValidateAll_AggregatesInIDOrder(t *testing.T) {
	bad := validGraph()
	bad.ID = "zzz-bad"
	node := bad.Nodes["wrap_up"]
	node.Transitions = nil
	bad.Nodes["wrap_up"] = node

	missing := &domain.ScenarioGraph{ID: "aaa-empty"}

	findings := ValidateAll(map[string]*domain.ScenarioGraph{
		bad.ID:     bad,
		missing.ID: missing,
	})

	require.NotEmpty(t, findings)
	assert.Contains(t, findings[0], "[aaa-empty]")
	assert.Contains(t, findings[len(findings)-1], "[zzz-bad]")
}

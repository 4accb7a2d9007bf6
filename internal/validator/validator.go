package validator

import (
	"fmt"
	"sort"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

// ValidateAll checks every scenario graph and returns all findings in
// aggregate. It is a pre-deployment content pass: none of these
// conditions fail a live session, but all of them should fail CI.
func ValidateAll(graphs map[string]*domain.ScenarioGraph) []string {
	ids := make([]string, 0, len(graphs))
	for id := range graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var findings []string
	for _, id := range ids {
		findings = append(findings, ValidateGraph(graphs[id])...)
	}
	return findings
}

// ValidateGraph checks one scenario for structural and authoring errors:
// missing metadata, a missing start node, dead-end nodes, transitions to
// unknown nodes, checklist rules without keywords, and checklist item
// names reused across nodes (item names are session-wide aggregation
// keys, so reuse bleeds matches between nodes).
func ValidateGraph(g *domain.ScenarioGraph) []string {
	var findings []string
	report := func(format string, args ...any) {
		findings = append(findings, fmt.Sprintf("[%s] %s", g.ID, fmt.Sprintf(format, args...)))
	}

	if len(g.Title) == 0 {
		report("missing title")
	}
	if len(g.Category) == 0 {
		report("missing category")
	}
	if len(g.SupportedLanguages) == 0 {
		report("missing supported_languages")
	}
	if len(g.Nodes) == 0 {
		report("scenario has no nodes")
		return findings
	}
	if _, ok := g.Nodes["start"]; !ok {
		report("missing 'start' node")
	}

	keys := make([]string, 0, len(g.Nodes))
	for key := range g.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	itemOwner := make(map[string]string) // item name -> node that introduced it

	for _, key := range keys {
		node := g.Nodes[key]

		if len(node.PatientText) == 0 {
			report("node %q missing patient_text", key)
		}

		if len(node.Transitions) == 0 {
			report("node %q has no transitions (dead-end)", key)
		}
		for _, t := range node.Transitions {
			if t.IsEnd() {
				continue
			}
			if _, ok := g.Nodes[t.Target]; !ok {
				report("node %q transitions to unknown node %q", key, t.Target)
			}
		}

		for _, rule := range node.Checklist {
			if rule.Item == "" {
				report("node %q has a checklist rule without an item name", key)
				continue
			}
			if len(rule.Keywords) == 0 {
				report("node %q checklist item %q has no keywords", key, rule.Item)
			}
			if owner, ok := itemOwner[rule.Item]; ok && owner != key {
				report("checklist item %q appears in nodes %q and %q; item names must be unique within a scenario", rule.Item, owner, key)
			} else {
				itemOwner[rule.Item] = key
			}
		}
	}

	return findings
}

package dsl

import "github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"

// NodeBuilder provides a fluent API for configuring a scenario node.
type NodeBuilder struct {
	key     string
	node    domain.Node
	builder *Builder
}

// Patient adds a localized patient line for the node.
func (n *NodeBuilder) Patient(lang, text string) *NodeBuilder {
	n.node.PatientText = setText(n.node.PatientText, lang, text)
	return n
}

// Expect adds a normal checklist item detected by any of the keywords.
func (n *NodeBuilder) Expect(item string, keywords ...string) *NodeBuilder {
	n.node.Checklist = append(n.node.Checklist, domain.ChecklistRule{
		Item:     item,
		Kind:     domain.RuleNormal,
		Keywords: keywords,
	})
	return n
}

// ExpectCritical adds a critical checklist item. Missing it carries double
// weight and a warning in the report.
func (n *NodeBuilder) ExpectCritical(item string, keywords ...string) *NodeBuilder {
	n.node.Checklist = append(n.node.Checklist, domain.ChecklistRule{
		Item:     item,
		Kind:     domain.RuleCritical,
		Keywords: keywords,
	})
	return n
}

// Go adds a default transition to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		Condition: domain.ConditionDefault,
		Target:    target,
	})
	return n
}

// End adds a default transition that completes the scenario.
func (n *NodeBuilder) End() *NodeBuilder {
	return n.Go(domain.EndNode)
}

// Done returns to the graph builder for chaining.
func (n *NodeBuilder) Done() *Builder {
	return n.builder
}

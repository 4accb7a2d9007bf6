package domain

// EndNode is the sentinel transition target that marks a scenario as complete.
const EndNode = "__end__"

// ConditionDefault is the only transition condition currently interpreted
// by the resolver. Any other condition string is ignored.
const ConditionDefault = "default"

// LocalizedText maps a language code (e.g. "en", "hi") to a translation.
type LocalizedText map[string]string

// Resolve returns the text for lang, falling back to English when the
// requested language is absent.
func (t LocalizedText) Resolve(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t[LangEnglish]
}

// ScenarioGraph is a complete branching dialogue definition. It is loaded
// once from static content and treated as immutable afterwards.
type ScenarioGraph struct {
	ID                 string          `json:"id"`
	Title              LocalizedText   `json:"title"`
	Category           LocalizedText   `json:"category"`
	Description        LocalizedText   `json:"description"`
	SupportedLanguages []string        `json:"supported_languages"`
	Difficulty         string          `json:"difficulty"`
	EstimatedMinutes   int             `json:"estimated_minutes"`
	TotalTurnsEstimate int             `json:"total_turns_estimate"`
	Nodes              map[string]Node `json:"nodes"`
}

// Supports reports whether the scenario is available in the given language.
func (g *ScenarioGraph) Supports(lang string) bool {
	for _, l := range g.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Summary resolves the scenario metadata to a single language.
func (g *ScenarioGraph) Summary(lang string) ScenarioSummary {
	return ScenarioSummary{
		ID:               g.ID,
		Title:            g.Title.Resolve(lang),
		Category:         g.Category.Resolve(lang),
		Description:      g.Description.Resolve(lang),
		Difficulty:       g.Difficulty,
		EstimatedMinutes: g.EstimatedMinutes,
	}
}

// Node is one step in a scenario graph. It carries the patient's dialogue,
// the checklist of expected worker actions and the outgoing transitions.
type Node struct {
	PatientText LocalizedText   `json:"patient_text"`
	Checklist   []ChecklistRule `json:"expected_checklist"`
	Transitions []Transition    `json:"transitions"`
}

// RuleKind classifies a checklist rule. Missing a critical rule is weighted
// twice as heavily and triggers an explicit warning in the report.
type RuleKind string

const (
	RuleNormal   RuleKind = "normal"
	RuleCritical RuleKind = "critical"
)

// ChecklistRule is one expected action or topic, detected in free text by
// keyword containment. Item names are used as aggregation keys across the
// whole session, so they must be unique within a scenario; the content
// validator enforces this, the evaluator does not.
type ChecklistRule struct {
	Item     string   `json:"item"`
	Kind     RuleKind `json:"type"`
	Keywords []string `json:"keywords"`
}

// Weight returns the scoring weight of the rule.
func (r ChecklistRule) Weight() float64 {
	if r.Kind == RuleCritical {
		return 2.0
	}
	return 1.0
}

// Transition is a rule for choosing the next node after a turn. Target is
// either a node key within the same graph or the EndNode sentinel.
type Transition struct {
	Condition string `json:"condition"`
	Target    string `json:"next_node_key"`
}

// IsDefault reports whether the resolver will honor this transition.
func (t Transition) IsDefault() bool { return t.Condition == ConditionDefault }

// IsEnd reports whether the transition ends the session.
func (t Transition) IsEnd() bool { return t.Target == EndNode }

// ScenarioSummary is the language-resolved metadata of a scenario, used by
// listing endpoints.
type ScenarioSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	Difficulty       string `json:"difficulty"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Description      string `json:"description"`
}

// ResolvedNode is a node with its patient text resolved to one language.
// Checklist and transitions are language-independent and passed through
// unchanged.
type ResolvedNode struct {
	NodeKey     string          `json:"node_key"`
	PatientText string          `json:"patient_text"`
	Checklist   []ChecklistRule `json:"expected_checklist"`
	Transitions []Transition    `json:"transitions"`
}

package evaluation

import (
	"math"
	"strings"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

// itemState is the aggregate state of one checklist item across a session.
// The critical flag is fixed by the first rule that introduces the item;
// matched is a sticky OR across all turns that touch it.
type itemState struct {
	matched  bool
	critical bool
}

const (
	suggestionCritical = "🚨 You missed critical danger signs. Always ask about danger signs early in the conversation and refer immediately if present."
	suggestionAllGood  = "👍 Great job! Review the protocol periodically to maintain your skills."
)

// suggestionTopics are checked independently, in this fixed order, against
// the names of missed non-critical items.
var suggestionTopics = []struct {
	needles []string
	tip     string
}{
	{[]string{"follow-up", "schedule"}, "📅 Remember to schedule a follow-up visit and confirm the date with the patient."},
	{[]string{"nutrition", "diet", "iron"}, "🥗 Counsel on nutrition, iron/folate supplementation, and dietary advice."},
	{[]string{"hygiene"}, "🧼 Advise on hygiene practices for mother and newborn."},
	{[]string{"breastfeed", "feeding"}, "🍼 Counsel on proper breastfeeding technique and feeding frequency."},
	{[]string{"ors", "zinc", "fluid"}, "💧 Always counsel on ORS + Zinc for diarrhea and ensure adequate fluid intake."},
}

// GenerateReport folds a session's full turn history into the final report.
// It is deterministic and side-effect free: the same turns and scenario
// always produce the same report. A turn referencing an unknown node
// contributes nothing rather than failing.
func GenerateReport(turns []domain.Turn, scenario *domain.ScenarioGraph) domain.SessionReport {
	// Registry of every checklist item on a visited node, in order of
	// first appearance.
	var order []string
	items := make(map[string]*itemState)

	for _, turn := range turns {
		node, ok := scenario.Nodes[turn.NodeKey]
		if !ok {
			continue
		}

		matchedThisTurn := make(map[string]bool, len(turn.MatchedItems))
		for _, name := range turn.MatchedItems {
			matchedThisTurn[name] = true
		}

		for _, rule := range node.Checklist {
			st, seen := items[rule.Item]
			if !seen {
				st = &itemState{critical: rule.Kind == domain.RuleCritical}
				items[rule.Item] = st
				order = append(order, rule.Item)
			}
			if matchedThisTurn[rule.Item] {
				st.matched = true
			}
		}
	}

	results := make([]domain.ChecklistResult, 0, len(order))
	criticalMisses := []string{}
	var totalWeight, earnedWeight float64

	for _, name := range order {
		st := items[name]
		weight := 1.0
		if st.critical {
			weight = 2.0
		}
		totalWeight += weight

		status := domain.StatusMissed
		if st.matched {
			status = domain.StatusDone
			earnedWeight += weight
		} else if st.critical {
			criticalMisses = append(criticalMisses, name)
		}

		results = append(results, domain.ChecklistResult{
			Item:       name,
			Status:     status,
			IsCritical: st.critical,
		})
	}

	var score float64
	if totalWeight > 0 {
		score = math.Round(earnedWeight/totalWeight*100*10) / 10
	}

	transcript := make([]domain.TranscriptEntry, 0, len(turns))
	for _, turn := range turns {
		node := scenario.Nodes[turn.NodeKey] // zero Node for unknown keys
		transcript = append(transcript, domain.TranscriptEntry{
			Turn:    turn.Index,
			Patient: node.PatientText.Resolve(domain.LangEnglish),
			Worker:  turn.UserText,
			Matched: turn.MatchedItems,
			Missed:  turn.MissedItems,
		})
	}

	return domain.SessionReport{
		Score:            score,
		ChecklistResults: results,
		CriticalMisses:   criticalMisses,
		Suggestions:      buildSuggestions(results, criticalMisses),
		Transcript:       transcript,
	}
}

func buildSuggestions(results []domain.ChecklistResult, criticalMisses []string) []string {
	suggestions := []string{}
	if len(criticalMisses) > 0 {
		suggestions = append(suggestions, suggestionCritical)
	}

	var missed []string
	for _, r := range results {
		if r.Status == domain.StatusMissed && !r.IsCritical {
			missed = append(missed, strings.ToLower(r.Item))
		}
	}

	for _, topic := range suggestionTopics {
		if anyNameContains(missed, topic.needles) {
			suggestions = append(suggestions, topic.tip)
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, suggestionAllGood)
	}
	return suggestions
}

func anyNameContains(names []string, needles []string) bool {
	for _, name := range names {
		for _, needle := range needles {
			if strings.Contains(name, needle) {
				return true
			}
		}
	}
	return false
}

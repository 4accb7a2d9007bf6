package evaluation

import (
	"fmt"
	"strings"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

const (
	notesMissed   = "Some items missed — review protocol guidelines."
	notesAllClear = "✅ All checklist items addressed!"
)

// EvaluateTurn matches one turn of worker text against a node's checklist.
// A rule is matched when any of its keywords (lower-cased) occurs as a
// contiguous substring of the normalized text. Output ordering follows
// checklist order. An empty checklist yields empty lists and the all-clear
// note.
func EvaluateTurn(userText string, checklist []domain.ChecklistRule) domain.TurnEvaluation {
	normalized := Normalize(userText)

	eval := domain.TurnEvaluation{
		MatchedItems:   []string{},
		MissedItems:    []string{},
		CriticalMissed: []string{},
	}

	for _, rule := range checklist {
		if anyKeywordMatches(normalized, rule.Keywords) {
			eval.MatchedItems = append(eval.MatchedItems, rule.Item)
			continue
		}
		eval.MissedItems = append(eval.MissedItems, rule.Item)
		if rule.Kind == domain.RuleCritical {
			eval.CriticalMissed = append(eval.CriticalMissed, rule.Item)
		}
	}

	switch {
	case len(eval.CriticalMissed) > 0:
		eval.Notes = fmt.Sprintf("⚠️ Critical protocol items missed: %s",
			strings.Join(eval.CriticalMissed, ", "))
	case len(eval.MissedItems) > 0:
		eval.Notes = notesMissed
	default:
		eval.Notes = notesAllClear
	}

	return eval
}

// anyKeywordMatches checks keyword containment against already-normalized
// text. Keywords are lower-cased individually but not punctuation-stripped,
// so authored keywords should be simple words or phrases.
func anyKeywordMatches(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

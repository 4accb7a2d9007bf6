package domain

// TurnEvaluation is the result of matching one turn of worker text against
// a node's checklist.
type TurnEvaluation struct {
	MatchedItems   []string `json:"matched_items"`
	MissedItems    []string `json:"missed_items"`
	CriticalMissed []string `json:"critical_missed"`
	Notes          string   `json:"notes"`
}

// Turn is one recorded exchange within a session: the node the worker was
// responding to, the raw text, and the evaluation outcome. Turns are
// append-only and owned by their session.
type Turn struct {
	Index          int      `json:"turn_index"`
	NodeKey        string   `json:"node_key"`
	UserText       string   `json:"user_text"`
	MatchedItems   []string `json:"matched_items"`
	MissedItems    []string `json:"missed_items"`
	CriticalMissed []string `json:"critical_missed"`
}

package domain

// ItemStatus is the final state of a checklist item in a session report.
type ItemStatus string

const (
	StatusDone   ItemStatus = "done"
	StatusMissed ItemStatus = "missed"
)

// ChecklistResult is the per-item outcome of a session.
type ChecklistResult struct {
	Item       string     `json:"item"`
	Status     ItemStatus `json:"status"`
	IsCritical bool       `json:"is_critical"`
}

// TranscriptEntry pairs a patient prompt with the worker's response and the
// evaluation of that turn.
type TranscriptEntry struct {
	Turn    int      `json:"turn"`
	Patient string   `json:"patient"`
	Worker  string   `json:"worker"`
	Matched []string `json:"matched"`
	Missed  []string `json:"missed"`
}

// SessionReport is the end-of-session summary. It is derived purely from
// the turn history and the scenario graph; generating it twice from the
// same inputs yields an identical report.
type SessionReport struct {
	Score            float64           `json:"score"`
	ChecklistResults []ChecklistResult `json:"checklist_results"`
	CriticalMisses   []string          `json:"critical_misses"`
	Suggestions      []string          `json:"suggestions"`
	Transcript       []TranscriptEntry `json:"transcript"`
}

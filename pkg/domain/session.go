package domain

import "time"

// Session is one training run of a scenario by a worker. The turn list is
// append-only; the report is filled in on completion.
type Session struct {
	ID          string         `json:"id"`
	DeviceID    string         `json:"device_id,omitempty"`
	ScenarioID  string         `json:"scenario_id"`
	Language    string         `json:"language"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Score       *float64       `json:"score,omitempty"`
	Turns       []Turn         `json:"turns"`
	Report      *SessionReport `json:"report,omitempty"`
}

// NewSession creates a fresh session for a scenario in the given language.
func NewSession(id, scenarioID, lang, deviceID string) *Session {
	return &Session{
		ID:         id,
		DeviceID:   deviceID,
		ScenarioID: scenarioID,
		Language:   lang,
		StartedAt:  time.Now().UTC(),
		Turns:      []Turn{},
	}
}

// Completed reports whether the session has been finalized.
func (s *Session) Completed() bool { return s.CompletedAt != nil }

// NextTurnIndex returns the 1-based index the next turn should carry.
func (s *Session) NextTurnIndex() int { return len(s.Turns) + 1 }

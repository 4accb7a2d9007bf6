package domain

import "errors"

// ErrScenarioNotFound is returned when a scenario ID is not in the store.
var ErrScenarioNotFound = errors.New("scenario not found")

// ErrNodeNotFound is returned when a node key does not exist in a scenario.
var ErrNodeNotFound = errors.New("node not found")

// ErrNoStartNode is returned when a scenario lacks its designated entry
// node. This is a content misconfiguration, not a client error.
var ErrNoStartNode = errors.New("scenario has no start node")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionCompleted is returned when a turn is submitted for a session
// that has already been completed.
var ErrSessionCompleted = errors.New("session already completed")

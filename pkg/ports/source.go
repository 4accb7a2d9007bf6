package ports

import "github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"

// ScenarioSource provides scenario definitions, keyed by scenario ID.
// It is consulted exactly once per process: the scenario store caches the
// result for the process lifetime.
type ScenarioSource interface {
	LoadAll() (map[string]*domain.ScenarioGraph, error)
}

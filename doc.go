/*
Package shushrusha is a protocol-practice dialogue simulator for community
health workers. A trainee converses with a scripted patient; each reply is
matched against a per-node checklist of expected actions, and completing a
session yields a weighted score with a per-item report.

The root package is a thin facade. The building blocks live below it:

  - pkg/domain: scenario graphs, sessions, turns and reports
  - pkg/evaluation: text normalization, keyword matching and scoring
  - pkg/scenario: the cached scenario store and transition resolver
  - pkg/session: the session manager
  - pkg/ports: the ScenarioSource and SessionStore interfaces
  - pkg/adapters: file content source, memory/redis/postgres session
    stores and the HTTP surface

Typical use:

	engine := shushrusha.New("data/scenarios")
	http.ListenAndServe(":8000", engine.Handler())
*/
package shushrusha

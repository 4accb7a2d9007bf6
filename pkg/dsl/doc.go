// Package dsl provides a fluent builder for constructing scenario graphs
// in code, mainly for tests and embedded demos. Production content lives
// in JSON files loaded through the file adapter.
package dsl

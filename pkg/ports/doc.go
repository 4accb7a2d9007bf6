/*
Package ports defines the boundary interfaces of the simulator core:
where scenario content comes from and where session records go.

Adapters under pkg/adapters implement these interfaces; the contract test
suites in this package verify that every implementation behaves the same.
*/
package ports

/*
Package evaluation implements the deterministic turn evaluator and the
end-of-session report aggregator.

Both entry points are pure functions over their arguments: no I/O, no
shared state, safe for concurrent use. Matching is plain keyword
containment over normalized text; there is no fuzzy or semantic matching.
*/
package evaluation

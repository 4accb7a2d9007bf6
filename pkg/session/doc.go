/*
Package session orchestrates training sessions: starting a scenario,
evaluating turns, completing a session into a report, and reading
history.

The Manager serializes access per session ID so concurrent turn
submissions for the same session cannot interleave, while different
sessions proceed independently.
*/
package session

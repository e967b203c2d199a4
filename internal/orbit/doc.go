// Package orbit lays out the subtasks of a task on concentric rings.
//
// Every subtask gets a permanent angle when it is created (largest-gap
// placement) and a radius derived from its position among the active
// subtasks. A priority belt optionally separates an inner, prioritized
// prefix of active subtasks from the rest; its position is tracked from
// the set of subtask ids it was captured with.
//
// All functions are pure: they never modify their inputs and they return
// freshly allocated slices. Callers own persistence and decide when to
// invoke each function (creation, completion toggle, deletion, belt move).
package orbit

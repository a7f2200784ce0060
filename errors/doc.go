// Package errors provides structured error types for the marshalling
// boundary.
//
// Every failure carries a Phase (where in the call path it happened)
// and a Kind (what went wrong). The kinds keep the three failure
// classes of the boundary separable for callers: shape/type errors
// (wrong kind of value), size/value errors (right kind of value, wrong
// length) and dispatch errors (no compiled variant matches).
package errors

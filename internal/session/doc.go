// Package session sequences a three-round training session.
//
// A Controller owns the single copy of a session's mutable state: the
// round number, the current deck and position, and the cumulative seen set.
// It moves through Idle, Configuring, RoundActive, Resting and Summary (or
// Halted for a single manual round) in response to discrete inputs, building
// each round's deck through the selection engine from a freshly loaded
// corpus.
//
// Controllers are not safe for concurrent use. The Registry serializes
// access for callers that share sessions across goroutines.
package session

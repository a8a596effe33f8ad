// Package session implements the state machine for one two-player match.
//
// A session moves through three states, never skipping or reversing:
//
//	Waiting  – created with a single participant, no puzzle yet
//	Active   – second participant joined, puzzle generated, countdown running
//	Finished – terminal; reached by timeout, completion, or departure
//
// Core Types:
//
// Session owns the puzzle, the found-word ledger, per-participant scores,
// and the remaining time. All mutating methods are serialized by an
// internal mutex, so operations on one session never interleave. Methods
// return result structs describing what happened; the caller (the session
// manager) performs all notification fan-out.
//
// Resolution:
//
// Ending a session freezes scores and resolves a winner purely by score:
// the strictly highest scorer among every participant ever in the session
// wins, regardless of the end reason. Equal top scores are a tie with no
// winner, even when an opponent left early.
package session

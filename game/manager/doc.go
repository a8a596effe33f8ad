// Package manager coordinates all sessions and participants.
//
// The manager is the single source of truth for:
//   - The session table (session ID → Session)
//   - The participant index (participant ID → session ID)
//   - The at-most-one open lobby invariant
//
// Requests routed by the transport adapter (create, join, submit, leave)
// go through the manager, which locates the right session, applies the
// operation, and fans out the resulting protocol events through a
// Notifier. Lobby availability changes are broadcast to every connected
// participant atomically with the state change that caused them.
//
// Concurrency:
//
// A manager-level RWMutex guards the registries and serializes create,
// join, and leave. Submissions and ticks only read the registries and are
// serialized per session by the Session's own mutex, so different sessions
// make progress independently. Each Active session gets one countdown
// goroutine driven by a clockwork ticker; it stops deterministically when
// the session's done channel closes. Finished sessions are removed after a
// grace delay so terminal messages can still be delivered.
package manager

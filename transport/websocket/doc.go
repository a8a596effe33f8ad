// Package websocket adapts the logical game protocol onto WebSocket
// connections.
//
// Each accepted connection becomes one participant: the hub assigns a
// participant ID, starts a read pump that decodes inbound command
// envelopes and dispatches them to the game, and a write pump that
// delivers outbound events with ping keepalives. Closing the connection
// is the participant's disconnect and is routed to the game as a leave.
//
// The hub implements the manager's Notifier interface. Deliveries are
// non-blocking: a participant whose send buffer is full drops the message
// rather than stalling the caller.
//
// Wire format:
//
// Every message is a JSON envelope {"type": "...", "data": {...}}.
// Inbound types are create_session, join_session, and submit_word;
// outbound types are the manager's event types.
package websocket

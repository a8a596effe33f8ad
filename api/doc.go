// Package api provides the HTTP surface of the coordinator.
//
// The gameplay protocol itself runs over the /ws WebSocket endpoint; this
// package only adds the small REST surface around it plus static file
// serving for the browser client:
//
//	GET /api/stats    - active session count, lobby availability, connections
//	GET /api/settings - valid categories and difficulty tiers
//	GET /api/health   - liveness probe
//	GET /ws           - WebSocket upgrade (see transport/websocket)
//	GET /*            - static files
package api

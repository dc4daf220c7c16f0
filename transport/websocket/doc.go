// Package websocket serves movement queries over a WebSocket connection.
//
// Each text frame is one JSON request; the answer to it is written back
// before the next frame is read, so responses arrive in request order.
//
//	→ {"id": 1, "op": "path", "start": {"x":0,"y":0}, "goal": {"x":4,"y":0}}
//	← {"id": 1, "op": "path", "result": {"found": true, "cost": 6, ...}}
//	→ {"id": 2, "op": "range", "origin": {"x":0,"y":0}, "budget": 3}
//	→ {"id": 3, "op": "cell", "at": {"x":1,"y":0}}
//	→ {"id": 4, "op": "info"}
//
// A request that fails carries "error" instead of "result" and leaves the
// connection open. The id is echoed back untouched.
//
// Usage:
//
//	router.Handle("/ws", websocket.NewHandler(svc, logger))
package websocket

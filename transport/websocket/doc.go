// Package websocket pushes mission results to WebSocket subscribers.
//
// Architecture:
//
// A central Hub owns every connection. Each client runs a read pump and a
// write pump; the hub goroutine is the only writer of the subscription map.
//
// Topics:
//
// Clients subscribe to one topic via query parameter when connecting
// (/ws?topic=kata). A mission run from a stored scenario is published on the
// scenario identifier; ad-hoc missions are published on "adhoc". Every
// result is also delivered to subscribers of "*".
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"topic":"kata","event":"mission_result","mission":{...MissionResult...}}
//
// Incoming messages are read only to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("topic"))
//	})
//
//	hub.BroadcastMission(result)
package websocket

// Package devtools serves a live view of a widget tree over HTTP.
//
// A Hub observes one or more documents and keeps a bounded history of
// mutation records. A Server exposes the hub together with the element
// registry and Prometheus metrics:
//
//	GET /registry   registered tags, flags and child strategies
//	GET /mutations  recent mutation records, oldest first
//	GET /metrics    Prometheus exposition
//	GET /ws         WebSocket stream of new records, one JSON object each
//
// Typical wiring:
//
//	hub := devtools.NewHub(256)
//	doc := dom.NewDocument(dom.WithObserver(hub))
//	srv := devtools.NewServer(":7070", hub, registry.Default)
//	go srv.Run(ctx)
package devtools

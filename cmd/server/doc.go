// Package main is the entry point for the canvas desktop engine.
//
// The server manages a virtual desktop of draggable, resizable windows on an
// unbounded canvas: lifecycle transitions, z-ordering, pan and scrollbars,
// cascade/tile/gather arrangements, chat panel docking, and named layout
// sessions. A browser shell connects over WebSocket for state streaming and
// gesture actions; a REST surface serves programmatic clients.
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML overlay file (-config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -storage /var/lib/canvas-desktop
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown with default-session save
package main

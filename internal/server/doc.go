// Package server wires the canvas engine into a running HTTP service.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, request IDs, rate limiting, metrics, recovery)
//   - Canvas store, reducer configuration and viewport tracker
//   - Session manager and kind registry
//   - WebSocket streaming of canvas state
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Build the canvas store and session manager
//  4. Setup HTTP routes and middleware
//  5. Start HTTP server
//  6. On shutdown: save the default session, drain requests
package server

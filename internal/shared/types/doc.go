// Package types defines the shared data model for the canvas desktop engine:
// window entities, canvas state, chat panel configuration, and the geometry
// primitives they are built from.
//
// All coordinates are virtual-canvas coordinates. The canvas is an unbounded
// plane; the visible viewport pans over it via CanvasState.Offset. Types here
// carry no behavior beyond small geometric helpers; every mutation flows
// through the reducer in internal/domain/canvas.
package types

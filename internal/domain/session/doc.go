// Package session is the persistence collaborator for canvas layouts.
//
// A session is a named snapshot of the canvas captured at save time. Only
// pinned windows are included: pinning flags intent to persist, and the
// decision of what to keep is this collaborator's, not the core's. Snapshots
// are stored on disk as gzipped JSON; loading one replaces the live canvas
// through the reducer's load-state action, which repairs any invariant
// violations a stale file may carry.
package session

// Package canvas implements the window-management core: the canonical
// CanvasState store and the lifecycle state machine that is the only way to
// mutate it.
//
// Every mutation, whether a user gesture, an arrangement, a chat docking
// switch or a loaded snapshot, is expressed as an Action and applied by the Reducer:
//
//	next, changed := reducer.Apply(state, action)
//
// Apply is total: invalid targets and illegal transitions return the input
// state unchanged instead of erroring, since such actions typically originate
// from stale UI references. Batch actions compute the full next state before
// swapping, so observers never see a partially-arranged layout.
//
// The Store serializes all Apply calls through one mutex and fans the
// resulting snapshots out to subscribers; there is no other write path.
package canvas

// Package editor holds the per-session image state and applies editing
// operations to it.
//
// A Store keeps the current image, the original captured at load time, and
// a bounded linear history of at most MaxHistory snapshots. Snapshots are
// immutable values: operations never modify a stored image, they produce a
// new one that is committed on success.
//
// # History
//
// Committing after one or more undos discards the redo tail before appending.
// When the history is full the oldest snapshot is evicted. Undo and Redo only
// move the index.
//
// # Errors
//
// Loads fail with *LoadError and leave the store untouched. Operations fail
// with ErrNoImage or *OperationError and never commit; panics raised inside
// an operation are recovered and reported as *OperationError.
//
// A Processor is owned by one session and is not safe for concurrent use.
package editor

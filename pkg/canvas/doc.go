// Package canvas implements the drag and resize state machine of the
// worksheet editor.
//
// # State Machine
//
// A [Controller] is either idle or dragging one block:
//
//	idle ──PointerDown(handle)──▶ dragging(kind) ──pointer up──▶ idle
//
// PointerDown captures a [DragState] (block id, kind, start pointer and a
// [Snapshot] of the block's pre-drag geometry) and subscribes to the event
// source's move and up streams. Every move recomputes the block geometry from
// the snapshot plus the pointer delta and writes it straight into the
// worksheet. Pointer up commits, unsubscribes unconditionally and notifies
// the change callback.
//
// # Delta Functions
//
// The geometry math is exposed as pure functions over a Snapshot value:
// [ResizeRight], [ResizeLeft], [ResizeBottom], [MoveColumns], [MoveFree] and
// [ResizeFree]. They clamp, never fail, except ResizeLeft which reports an
// invalid result so the caller can ignore it.
//
// # Variants
//
//   - Grid: move shifts the start column, resize left/right changes the span,
//     resize bottom changes the bottom margin.
//   - Masonry: move and resize left/right only.
//   - Freeform: pixel geometry; moves snap x to columns and y to a 16px grid
//     unless Alt is held.
package canvas

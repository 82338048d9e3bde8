// Package selection implements multi-select over canvas elements: a
// rubber-band lasso, Ctrl/Cmd-click toggling and the ordered selection set.
//
// A lasso starts only when the pointer goes down over empty canvas. On
// release the rectangle is compared against [DefaultThreshold]: a drag
// larger than the threshold on both axes replaces the selection with every
// element the rectangle touches, anything smaller is treated as a click on
// empty space and clears the selection.
//
// Hit testing is pure and deterministic. The same rectangle over the same
// elements always yields the same ids in the same (document) order.
package selection

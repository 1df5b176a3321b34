// Package element defines the tree of renderable elements that the
// compositor consumes.
//
// The variant set is closed: [Leaf], [Text], [Spacer], [Container], [Stack]
// and [Decorated] are the only implementations of [Element], and every
// consumer switches over them exhaustively. Elements are immutable after
// construction; constructors validate their configuration up front and
// rendering never mutates the tree, so a tree may be rendered repeatedly
// (and concurrently) with bit-identical results.
package element

import (
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Element is a node in a render tree. Its intrinsic size is its natural
// extent before any stretch adjustment, known before layout runs.
type Element interface {
	IntrinsicSize() layout.Size

	// sealed restricts implementations to this package, keeping the
	// variant set closed for exhaustive handling in layout and
	// compositing.
	sealed()
}

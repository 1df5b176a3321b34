package element

import (
	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Stack layers its children on top of each other: the first child is at the
// bottom, the last on top. Its size is the size of the largest child, and
// each child is positioned inside that region by the two per-axis
// alignments.
type Stack struct {
	children []Element
	hAlign   layout.Align
	vAlign   layout.Align
	mode     canvas.CompositeMode
}

// StackOption configures optional stack properties.
type StackOption func(*Stack)

// WithHorizontalAlign sets how children are placed along the x axis.
func WithHorizontalAlign(a layout.Align) StackOption {
	return func(s *Stack) { s.hAlign = a }
}

// WithVerticalAlign sets how children are placed along the y axis.
func WithVerticalAlign(a layout.Align) StackOption {
	return func(s *Stack) { s.vAlign = a }
}

// WithCompositeMode sets how children blend onto the layers below.
// The default is alpha-over.
func WithCompositeMode(m canvas.CompositeMode) StackOption {
	return func(s *Stack) { s.mode = m }
}

// NewStack creates a stack. Stretch alignment does not apply to stacking
// and is rejected.
func NewStack(children []Element, opts ...StackOption) (*Stack, error) {
	s := &Stack{
		children: copyChildren(children),
		hAlign:   layout.AlignStart,
		vAlign:   layout.AlignStart,
		mode:     canvas.Over,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, a := range []layout.Align{s.hAlign, s.vAlign} {
		if !a.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid align value %d", int(a))
		}
		if a == layout.AlignStretch {
			return nil, errors.New(errors.ErrCodeInvalidPolicy, "stack does not support stretch alignment")
		}
	}
	return s, nil
}

// IntrinsicSize returns the extent of the largest child on each axis.
func (s *Stack) IntrinsicSize() layout.Size {
	var sz layout.Size
	for _, child := range s.children {
		c := child.IntrinsicSize()
		sz.W = max(sz.W, c.W)
		sz.H = max(sz.H, c.H)
	}
	return sz
}

// HorizontalAlign returns the x-axis placement policy.
func (s *Stack) HorizontalAlign() layout.Align { return s.hAlign }

// VerticalAlign returns the y-axis placement policy.
func (s *Stack) VerticalAlign() layout.Align { return s.vAlign }

// CompositeMode returns how children blend onto the layers below.
func (s *Stack) CompositeMode() canvas.CompositeMode { return s.mode }

// Children returns the child sequence, bottom to top. The slice is a copy.
func (s *Stack) Children() []Element { return copyChildren(s.children) }

func (s *Stack) sealed() {}

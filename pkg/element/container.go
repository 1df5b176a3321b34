package element

import (
	"image/color"

	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Container arranges an ordered sequence of children along a main axis.
// The child order is both the distribution order and the paint order; the
// two never diverge.
//
// A container is either auto-sized (main extent is the sum of child main
// extents, cross extent the maximum child cross extent) or fixed. Only
// fixed containers have free space, so the justify policy applies to them
// alone. A fixed container's extents never change in response to its
// children; when children do not fit they overflow visibly.
type Container struct {
	axis       layout.Axis
	justify    layout.Justify
	align      layout.Align
	width      int
	height     int
	fixed      bool
	background color.NRGBA
	children   []Element
}

// ContainerOption configures optional container properties.
type ContainerOption func(*Container)

// WithBackground sets the fill color painted before children composite.
// The default background is fully transparent.
func WithBackground(col color.NRGBA) ContainerOption {
	return func(c *Container) { c.background = col }
}

// NewContainer creates an auto-sized container. Free space is always zero,
// so no justify policy applies.
func NewContainer(axis layout.Axis, align layout.Align, children []Element, opts ...ContainerOption) (*Container, error) {
	if !axis.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid axis value %d", int(axis))
	}
	if !align.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid align value %d", int(align))
	}
	c := &Container{
		axis:     axis,
		justify:  layout.JustifyStart,
		align:    align,
		children: copyChildren(children),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFixedContainer creates a container with fixed extents and a main-axis
// distribution policy. Non-positive dimensions and unknown policies are
// configuration errors. Children larger than the container are accepted;
// they overflow at composite time rather than failing here.
func NewFixedContainer(width, height int, axis layout.Axis, justify layout.Justify, align layout.Align, children []Element, opts ...ContainerOption) (*Container, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if !axis.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid axis value %d", int(axis))
	}
	if !justify.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid justify value %d", int(justify))
	}
	if !align.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid align value %d", int(align))
	}
	c := &Container{
		axis:     axis,
		justify:  justify,
		align:    align,
		width:    width,
		height:   height,
		fixed:    true,
		children: copyChildren(children),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func copyChildren(children []Element) []Element {
	out := make([]Element, len(children))
	copy(out, children)
	return out
}

// IntrinsicSize returns the fixed extents, or for auto-sized containers the
// content size: sum of child main extents by max child cross extent.
func (c *Container) IntrinsicSize() layout.Size {
	if c.fixed {
		return layout.Size{W: c.width, H: c.height}
	}
	main, cross := 0, 0
	for _, child := range c.children {
		sz := child.IntrinsicSize()
		main += sz.Main(c.axis)
		cross = max(cross, sz.Cross(c.axis))
	}
	if c.axis == layout.Horizontal {
		return layout.Size{W: main, H: cross}
	}
	return layout.Size{W: cross, H: main}
}

// Axis returns the main axis.
func (c *Container) Axis() layout.Axis { return c.axis }

// Justify returns the main-axis distribution policy.
func (c *Container) Justify() layout.Justify { return c.justify }

// Align returns the cross-axis alignment policy.
func (c *Container) Align() layout.Align { return c.align }

// Background returns the fill color.
func (c *Container) Background() color.NRGBA { return c.background }

// Fixed reports whether the container has fixed extents.
func (c *Container) Fixed() bool { return c.fixed }

// Children returns the child sequence. The slice is a copy; the children
// themselves are shared and immutable.
func (c *Container) Children() []Element { return copyChildren(c.children) }

// ChildSizes returns the intrinsic sizes of all children in order.
func (c *Container) ChildSizes() []layout.Size {
	sizes := make([]layout.Size, len(c.children))
	for i, child := range c.children {
		sizes[i] = child.IntrinsicSize()
	}
	return sizes
}

func (c *Container) sealed() {}

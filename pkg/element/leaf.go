package element

import (
	"image"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Leaf wraps a pre-rendered pixel buffer. It is immutable after
// construction: the input is copied in, and [Leaf.Canvas] copies out.
type Leaf struct {
	buf *canvas.Canvas
}

// NewLeaf creates a leaf from an image, copying its pixels.
func NewLeaf(img image.Image) (*Leaf, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "leaf image must not be nil")
	}
	return &Leaf{buf: canvas.FromImage(img)}, nil
}

// NewLeafFromCanvas creates a leaf from a canvas, copying its pixels.
func NewLeafFromCanvas(c *canvas.Canvas) (*Leaf, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "leaf canvas must not be nil")
	}
	return &Leaf{buf: c.Clone()}, nil
}

// IntrinsicSize returns the pixel buffer's dimensions.
func (l *Leaf) IntrinsicSize() layout.Size {
	return layout.Size{W: l.buf.Width(), H: l.buf.Height()}
}

// Canvas returns a copy of the leaf's pixel buffer.
func (l *Leaf) Canvas() *canvas.Canvas {
	return l.buf.Clone()
}

func (l *Leaf) sealed() {}

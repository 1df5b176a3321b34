package element

import (
	"github.com/matzehuels/pixelflex/pkg/decor"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Decorated wraps an element with post-render decorations. Decorations are
// applied in order to the wrapped element's rendered canvas before it is
// composited into the parent.
type Decorated struct {
	inner       Element
	decorations []decor.Decoration
}

// grower is implemented by decorations that change the canvas size.
type grower interface {
	Grow(w, h int) (int, int)
}

// NewDecorated wraps inner with decorations.
func NewDecorated(inner Element, decorations ...decor.Decoration) (*Decorated, error) {
	if inner == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "decorated element must not be nil")
	}
	if len(decorations) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one decoration is required")
	}
	decs := make([]decor.Decoration, len(decorations))
	copy(decs, decorations)
	return &Decorated{inner: inner, decorations: decs}, nil
}

// IntrinsicSize returns the wrapped element's size, adjusted for any
// decoration that grows the canvas.
func (d *Decorated) IntrinsicSize() layout.Size {
	sz := d.inner.IntrinsicSize()
	for _, dec := range d.decorations {
		if g, ok := dec.(grower); ok {
			sz.W, sz.H = g.Grow(sz.W, sz.H)
		}
	}
	return sz
}

// Inner returns the wrapped element.
func (d *Decorated) Inner() Element { return d.inner }

// Decorations returns the decoration chain in application order.
func (d *Decorated) Decorations() []decor.Decoration {
	out := make([]decor.Decoration, len(d.decorations))
	copy(out, d.decorations)
	return out
}

func (d *Decorated) sealed() {}

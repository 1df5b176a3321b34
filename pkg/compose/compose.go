// Package compose renders an element tree into a single canvas.
//
// Rendering is a strict post-order walk: every container first renders its
// children to their own canvases, runs the layout engine once over their
// effective sizes, and then blits the results back-to-front in child order.
// The element tree is never mutated, so rendering the same tree twice
// produces bit-identical canvases.
//
// Sibling subtrees share no state, which makes them safe to render on
// worker goroutines; [WithParallel] enables that. The blit phase stays
// ordered, so parallel rendering does not change the output.
package compose

import (
	"context"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/element"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
	"github.com/matzehuels/pixelflex/pkg/observability"
)

type renderer struct {
	parallel int
}

// Option configures a render call.
type Option func(*renderer)

// WithParallel renders sibling subtrees on up to workers goroutines.
// Values below two keep rendering sequential.
func WithParallel(workers int) Option {
	return func(r *renderer) { r.parallel = workers }
}

// Render composites the element tree rooted at root into a fresh canvas.
func Render(ctx context.Context, root element.Element, opts ...Option) (*canvas.Canvas, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root element must not be nil")
	}
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}

	hooks := observability.Render()
	start := time.Now()
	hooks.OnCompositeStart(ctx, countElements(root))

	c, err := r.render(ctx, root)

	w, h := 0, 0
	if c != nil {
		w, h = c.Width(), c.Height()
	}
	hooks.OnCompositeComplete(ctx, w, h, time.Since(start), err)
	return c, err
}

func (r *renderer) render(ctx context.Context, el element.Element) (*canvas.Canvas, error) {
	switch el := el.(type) {
	case *element.Leaf:
		return el.Canvas(), nil
	case *element.Text:
		return el.Canvas(), nil
	case *element.Spacer:
		sz := el.IntrinsicSize()
		return canvas.New(sz.W, sz.H, color.NRGBA{})
	case *element.Container:
		return r.renderContainer(ctx, el)
	case *element.Stack:
		return r.renderStack(ctx, el)
	case *element.Decorated:
		return r.renderDecorated(ctx, el)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "unhandled element variant %T", el)
	}
}

func (r *renderer) renderContainer(ctx context.Context, el *element.Container) (*canvas.Canvas, error) {
	sz := el.IntrinsicSize()
	children := el.Children()
	sizes := el.ChildSizes()

	geos, err := layout.Compute(sz.W, sz.H, el.Axis(), el.Justify(), el.Align(), sizes)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, csz := range sizes {
		total += csz.Main(el.Axis())
	}
	observability.Render().OnLayout(ctx, len(children), total > sz.Main(el.Axis()))

	out, err := canvas.New(sz.W, sz.H, el.Background())
	if err != nil {
		return nil, err
	}

	rendered, err := r.renderChildren(ctx, children)
	if err != nil {
		return nil, err
	}

	for i, cc := range rendered {
		geo := geos[i]
		if cc.Width() != geo.W || cc.Height() != geo.H {
			// Stretch alignment changed the effective extent.
			cc = canvas.FromImage(imaging.Resize(cc.Image(), geo.W, geo.H, imaging.Lanczos))
		}
		out.Draw(cc, geo.X, geo.Y, canvas.Over)
	}
	return out, nil
}

func (r *renderer) renderStack(ctx context.Context, el *element.Stack) (*canvas.Canvas, error) {
	sz := el.IntrinsicSize()
	out, err := canvas.New(sz.W, sz.H, color.NRGBA{})
	if err != nil {
		return nil, err
	}

	rendered, err := r.renderChildren(ctx, el.Children())
	if err != nil {
		return nil, err
	}

	for _, cc := range rendered {
		x := alignOffset(el.HorizontalAlign(), sz.W, cc.Width())
		y := alignOffset(el.VerticalAlign(), sz.H, cc.Height())
		out.Draw(cc, x, y, el.CompositeMode())
	}
	return out, nil
}

func (r *renderer) renderDecorated(ctx context.Context, el *element.Decorated) (*canvas.Canvas, error) {
	c, err := r.render(ctx, el.Inner())
	if err != nil {
		return nil, err
	}
	for _, dec := range el.Decorations() {
		c, err = dec.Apply(c)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// renderChildren renders sibling subtrees, optionally in parallel. Results
// come back in child order regardless of completion order.
func (r *renderer) renderChildren(ctx context.Context, children []element.Element) ([]*canvas.Canvas, error) {
	out := make([]*canvas.Canvas, len(children))

	if r.parallel < 2 || len(children) < 2 {
		for i, child := range children {
			c, err := r.render(ctx, child)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, child := range children {
		g.Go(func() error {
			c, err := r.render(gctx, child)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func alignOffset(a layout.Align, container, child int) int {
	switch a {
	case layout.AlignEnd:
		return container - child
	case layout.AlignCenter:
		return (container - child) / 2
	default:
		return 0
	}
}

func countElements(el element.Element) int {
	switch el := el.(type) {
	case *element.Container:
		n := 1
		for _, child := range el.Children() {
			n += countElements(child)
		}
		return n
	case *element.Stack:
		n := 1
		for _, child := range el.Children() {
			n += countElements(child)
		}
		return n
	case *element.Decorated:
		return 1 + countElements(el.Inner())
	default:
		return 1
	}
}

package compose

import (
	"context"
	"image/color"
	"testing"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/decor"
	"github.com/matzehuels/pixelflex/pkg/element"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func leaf(t *testing.T, w, h int, col color.NRGBA) *element.Leaf {
	t.Helper()
	c, err := canvas.New(w, h, col)
	if err != nil {
		t.Fatal(err)
	}
	l, err := element.NewLeafFromCanvas(c)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func render(t *testing.T, el element.Element, opts ...Option) *canvas.Canvas {
	t.Helper()
	c, err := Render(context.Background(), el, opts...)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return c
}

func pixel(t *testing.T, c *canvas.Canvas, x, y int) color.NRGBA {
	t.Helper()
	px, err := c.At(x, y)
	if err != nil {
		t.Fatalf("At(%d, %d) error: %v", x, y, err)
	}
	return px
}

func TestRenderNilRoot(t *testing.T) {
	if _, err := Render(context.Background(), nil); err == nil {
		t.Error("nil root accepted")
	}
}

func TestRenderLeafCopies(t *testing.T) {
	l := leaf(t, 3, 3, red)
	first := render(t, l)
	if err := first.Set(0, 0, blue); err != nil {
		t.Fatal(err)
	}

	second := render(t, l)
	if got := pixel(t, second, 0, 0); got != red {
		t.Errorf("render aliases the leaf buffer: %v", got)
	}
}

func TestRenderEmptyContainerUniformBackground(t *testing.T) {
	c, err := element.NewFixedContainer(40, 30, layout.Horizontal, layout.JustifyStart, layout.AlignStart, nil,
		element.WithBackground(blue))
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)
	if out.Width() != 40 || out.Height() != 30 {
		t.Fatalf("size = %dx%d, want 40x30", out.Width(), out.Height())
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if got := pixel(t, out, x, y); got != blue {
				t.Fatalf("At(%d, %d) = %v, want uniform background", x, y, got)
			}
		}
	}
}

// The reference scenario rendered end to end: children land at the
// positions the layout engine computed for space-around + center.
func TestRenderReferenceScenario(t *testing.T) {
	children := []element.Element{
		leaf(t, 100, 100, red),
		leaf(t, 50, 50, green),
		leaf(t, 200, 200, blue),
	}
	c, err := element.NewFixedContainer(500, 300, layout.Horizontal, layout.JustifySpaceAround, layout.AlignCenter,
		children, element.WithBackground(white))
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)

	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{x: 50, y: 100, want: red},    // first child top-left
		{x: 149, y: 199, want: red},   // first child bottom-right
		{x: 200, y: 125, want: green}, // second child top-left
		{x: 300, y: 50, want: blue},   // third child top-left
		{x: 499, y: 249, want: blue},  // third child bottom-right
		{x: 0, y: 0, want: white},     // background outside children
		{x: 175, y: 150, want: white}, // background in a gap
	}
	for _, ck := range checks {
		if got := pixel(t, out, ck.x, ck.y); got != ck.want {
			t.Errorf("At(%d, %d) = %v, want %v", ck.x, ck.y, got, ck.want)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	children := []element.Element{
		leaf(t, 20, 20, red),
		leaf(t, 10, 30, green),
	}
	c, err := element.NewFixedContainer(100, 50, layout.Horizontal, layout.JustifySpaceEvenly, layout.AlignCenter, children)
	if err != nil {
		t.Fatal(err)
	}

	first := render(t, c)
	second := render(t, c)
	if !first.Equal(second) {
		t.Error("repeated renders are not bit-identical")
	}
}

func TestRenderPaintOrderLaterChildWins(t *testing.T) {
	// Fully overlapping layers: the later child must dominate.
	stack, err := element.NewStack([]element.Element{
		leaf(t, 10, 10, red),
		leaf(t, 10, 10, green),
	})
	if err != nil {
		t.Fatal(err)
	}
	got := pixel(t, render(t, stack), 5, 5)
	if got != green {
		t.Errorf("top-of-stack pixel = %v, want later child %v", got, green)
	}
}

func TestRenderOverflowSequentialAndClipped(t *testing.T) {
	children := []element.Element{
		leaf(t, 30, 10, red),
		leaf(t, 30, 10, green),
	}
	c, err := element.NewFixedContainer(40, 10, layout.Horizontal, layout.JustifyCenter, layout.AlignStart, children,
		element.WithBackground(white))
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)
	if out.Width() != 40 {
		t.Fatalf("container must keep its fixed width, got %d", out.Width())
	}
	if got := pixel(t, out, 0, 0); got != red {
		t.Errorf("first child not at start: %v", got)
	}
	if got := pixel(t, out, 35, 5); got != green {
		t.Errorf("second child not placed sequentially: %v", got)
	}
}

func TestRenderStretchFillsCrossAxis(t *testing.T) {
	children := []element.Element{leaf(t, 10, 4, red)}
	c, err := element.NewFixedContainer(20, 40, layout.Horizontal, layout.JustifyStart, layout.AlignStretch, children)
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)
	if got := pixel(t, out, 5, 0); got.A == 0 {
		t.Error("stretched child missing at cross-axis start")
	}
	if got := pixel(t, out, 5, 39); got.A == 0 {
		t.Error("stretched child missing at cross-axis end")
	}

	// The element itself keeps its intrinsic size.
	if got := children[0].IntrinsicSize(); got != (layout.Size{W: 10, H: 4}) {
		t.Errorf("stretch mutated intrinsic size: %+v", got)
	}
}

func TestRenderNestedContainers(t *testing.T) {
	inner, err := element.NewFixedContainer(20, 20, layout.Vertical, layout.JustifyCenter, layout.AlignCenter,
		[]element.Element{leaf(t, 10, 10, green)}, element.WithBackground(red))
	if err != nil {
		t.Fatal(err)
	}
	outer, err := element.NewFixedContainer(40, 40, layout.Horizontal, layout.JustifyCenter, layout.AlignCenter,
		[]element.Element{inner}, element.WithBackground(white))
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, outer)
	if got := pixel(t, out, 20, 20); got != green {
		t.Errorf("center pixel = %v, want inner leaf %v", got, green)
	}
	if got := pixel(t, out, 12, 12); got != red {
		t.Errorf("inner background = %v, want %v", got, red)
	}
	if got := pixel(t, out, 2, 2); got != white {
		t.Errorf("outer background = %v, want %v", got, white)
	}
}

func TestRenderAutoContainerSizesToContent(t *testing.T) {
	c, err := element.NewContainer(layout.Vertical, layout.AlignStart, []element.Element{
		leaf(t, 10, 5, red),
		leaf(t, 20, 8, green),
	})
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)
	if out.Width() != 20 || out.Height() != 13 {
		t.Errorf("size = %dx%d, want 20x13", out.Width(), out.Height())
	}
	if got := pixel(t, out, 5, 2); got != red {
		t.Errorf("first child pixel = %v", got)
	}
	if got := pixel(t, out, 5, 7); got != green {
		t.Errorf("second child pixel = %v", got)
	}
}

func TestRenderSpacerHoldsSpace(t *testing.T) {
	spacer, err := element.NewSpacer(10, 1)
	if err != nil {
		t.Fatal(err)
	}
	c, err := element.NewContainer(layout.Horizontal, layout.AlignStart, []element.Element{
		leaf(t, 5, 5, red),
		spacer,
		leaf(t, 5, 5, green),
	})
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, c)
	if got := pixel(t, out, 17, 2); got != green {
		t.Errorf("pixel after spacer = %v, want %v", got, green)
	}
	if got := pixel(t, out, 10, 2); got.A != 0 {
		t.Errorf("spacer region should stay transparent, got %v", got)
	}
}

func TestRenderStackModes(t *testing.T) {
	bottom := leaf(t, 4, 4, red)
	top := leaf(t, 4, 4, color.NRGBA{}) // fully transparent

	over, err := element.NewStack([]element.Element{bottom, top})
	if err != nil {
		t.Fatal(err)
	}
	if got := pixel(t, render(t, over), 1, 1); got != red {
		t.Errorf("over mode: transparent top must not erase, got %v", got)
	}

	replace, err := element.NewStack([]element.Element{bottom, top},
		element.WithCompositeMode(canvas.Replace))
	if err != nil {
		t.Fatal(err)
	}
	if got := pixel(t, render(t, replace), 1, 1); got.A != 0 {
		t.Errorf("replace mode: transparent top must erase, got %v", got)
	}
}

func TestRenderStackAlignment(t *testing.T) {
	big := leaf(t, 10, 10, red)
	small := leaf(t, 4, 4, green)
	s, err := element.NewStack([]element.Element{big, small},
		element.WithHorizontalAlign(layout.AlignEnd),
		element.WithVerticalAlign(layout.AlignCenter))
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, s)
	if got := pixel(t, out, 8, 5); got != green {
		t.Errorf("small child not at end/center: %v", got)
	}
	if got := pixel(t, out, 1, 1); got != red {
		t.Errorf("big child visible elsewhere: %v", got)
	}
}

func TestRenderDecorated(t *testing.T) {
	inner := leaf(t, 10, 10, red)
	d, err := element.NewDecorated(inner, decor.Grayscale{Amount: 1})
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, d)
	got := pixel(t, out, 5, 5)
	if got.R != got.G || got.G != got.B {
		t.Errorf("grayscale decoration not applied: %v", got)
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	var children []element.Element
	cols := []color.NRGBA{red, green, blue, white}
	for i := 0; i < 8; i++ {
		inner, err := element.NewFixedContainer(25, 25, layout.Vertical, layout.JustifyCenter, layout.AlignCenter,
			[]element.Element{leaf(t, 10+i, 10, cols[i%len(cols)])})
		if err != nil {
			t.Fatal(err)
		}
		children = append(children, inner)
	}
	c, err := element.NewFixedContainer(300, 40, layout.Horizontal, layout.JustifySpaceBetween, layout.AlignCenter, children)
	if err != nil {
		t.Fatal(err)
	}

	sequential := render(t, c)
	parallel := render(t, c, WithParallel(4))
	if !sequential.Equal(parallel) {
		t.Error("parallel render output differs from sequential")
	}
}

func TestRenderDoesNotMutateTree(t *testing.T) {
	children := []element.Element{leaf(t, 10, 10, red), leaf(t, 20, 5, green)}
	c, err := element.NewFixedContainer(100, 30, layout.Horizontal, layout.JustifySpaceAround, layout.AlignStretch, children)
	if err != nil {
		t.Fatal(err)
	}

	before := c.ChildSizes()
	render(t, c)
	after := c.ChildSizes()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("child %d intrinsic size changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

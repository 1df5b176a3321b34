package treeviz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/element"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

func testTree(t *testing.T) element.Element {
	t.Helper()
	buf, err := canvas.New(10, 10, color.NRGBA{A: 255})
	if err != nil {
		t.Fatal(err)
	}
	l, err := element.NewLeafFromCanvas(buf)
	if err != nil {
		t.Fatal(err)
	}
	sp, err := element.NewSpacer(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	c, err := element.NewFixedContainer(100, 50, layout.Horizontal, layout.JustifySpaceBetween, layout.AlignCenter,
		[]element.Element{l, sp})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("missing closing brace")
	}
	for _, want := range []string{`label="container"`, `label="leaf"`, `label="spacer"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 2 {
		t.Errorf("edge count = %d, want 2", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testTree(t), Options{Detailed: true})

	for _, want := range []string{"100x50", "justify: space-between", "align: center", "axis: horizontal"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTNestedEdges(t *testing.T) {
	inner := testTree(t)
	outer, err := element.NewContainer(layout.Vertical, layout.AlignStart, []element.Element{inner})
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(outer, Options{})
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	if !strings.Contains(dot, `label="container (auto)"`) {
		t.Error("auto container not labeled")
	}
}

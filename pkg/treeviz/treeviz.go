// Package treeviz draws an element tree as a node-link diagram.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pixelflex/pkg/element"
	"github.com/matzehuels/pixelflex/pkg/errors"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes intrinsic sizes and layout policies in node labels.
	// When false, only the variant name is shown.
	Detailed bool
}

// ToDOT converts an element tree to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(root element.Element, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf, detailed: opts.Detailed}
	w.walk(root)

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf      *bytes.Buffer
	detailed bool
	next     int
}

// walk emits the node for el and its subtree, returning el's node id.
func (w *dotWriter) walk(el element.Element) string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++

	fmt.Fprintf(w.buf, "  %q [label=%q];\n", id, w.label(el))

	for _, child := range childrenOf(el) {
		childID := w.walk(child)
		fmt.Fprintf(w.buf, "  %q -> %q;\n", id, childID)
	}
	return id
}

func (w *dotWriter) label(el element.Element) string {
	name := variantName(el)
	if !w.detailed {
		return name
	}

	sz := el.IntrinsicSize()
	parts := []string{fmt.Sprintf("%dx%d", sz.W, sz.H)}
	switch el := el.(type) {
	case *element.Container:
		parts = append(parts,
			fmt.Sprintf("axis: %s", el.Axis()),
			fmt.Sprintf("justify: %s", el.Justify()),
			fmt.Sprintf("align: %s", el.Align()))
	case *element.Stack:
		parts = append(parts,
			fmt.Sprintf("halign: %s", el.HorizontalAlign()),
			fmt.Sprintf("valign: %s", el.VerticalAlign()))
	case *element.Text:
		parts = append(parts, fmt.Sprintf("content: %s", el.Content()))
	case *element.Decorated:
		parts = append(parts, fmt.Sprintf("decorations: %d", len(el.Decorations())))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func variantName(el element.Element) string {
	switch el := el.(type) {
	case *element.Leaf:
		return "leaf"
	case *element.Text:
		return "text"
	case *element.Spacer:
		return "spacer"
	case *element.Container:
		if el.Fixed() {
			return "container"
		}
		return "container (auto)"
	case *element.Stack:
		return "stack"
	case *element.Decorated:
		return "decorated"
	default:
		return fmt.Sprintf("%T", el)
	}
}

func childrenOf(el element.Element) []element.Element {
	switch el := el.(type) {
	case *element.Container:
		return el.Children()
	case *element.Stack:
		return el.Children()
	case *element.Decorated:
		return []element.Element{el.Inner()}
	default:
		return nil
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render diagram")
	}
	return buf.Bytes(), nil
}

// Package scene loads TOML manifests describing an element tree.
//
// A manifest declares a root node plus nested children, with layout
// policies as lowercase strings and colors as names or hex values.
// Relative image paths resolve against the manifest's directory.
package scene

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/pixelflex/pkg/element"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Node is one element declaration in a manifest. Which fields apply
// depends on Kind; unknown kinds and missing required fields fail Build.
type Node struct {
	Kind string `toml:"kind"`

	// container / stack
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Axis       string `toml:"axis"`
	Justify    string `toml:"justify"`
	Align      string `toml:"align"`
	HAlign     string `toml:"halign"`
	VAlign     string `toml:"valign"`
	Background string `toml:"background"`
	Children   []Node `toml:"children"`

	// image
	Path string `toml:"path"`

	// text
	Content  string  `toml:"content"`
	Font     string  `toml:"font"`
	FontSize float64 `toml:"font_size"`
	Color    string  `toml:"color"`
}

// Manifest is a parsed scene document.
type Manifest struct {
	Root Node `toml:"root"`

	// dir anchors relative image paths.
	dir string
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes manifest bytes. Relative image paths resolve against the
// current working directory; use Load for file-anchored resolution.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if m.Root.Kind == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest has no root node")
	}
	return &m, nil
}

// Build converts the manifest into an element tree.
func (m *Manifest) Build() (element.Element, error) {
	return m.build(m.Root)
}

func (m *Manifest) build(n Node) (element.Element, error) {
	switch n.Kind {
	case "container":
		return m.buildContainer(n)
	case "stack":
		return m.buildStack(n)
	case "image":
		return m.buildImage(n)
	case "text":
		return m.buildText(n)
	case "spacer":
		return element.NewSpacer(n.Width, n.Height)
	case "":
		return nil, errors.New(errors.ErrCodeInvalidManifest, "node is missing a kind")
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown node kind %q", n.Kind)
	}
}

func (m *Manifest) buildContainer(n Node) (element.Element, error) {
	axis, err := layout.ParseAxis(n.Axis)
	if err != nil {
		return nil, err
	}
	justify, err := layout.ParseJustify(n.Justify)
	if err != nil {
		return nil, err
	}
	align, err := layout.ParseAlign(n.Align)
	if err != nil {
		return nil, err
	}

	children, err := m.buildChildren(n.Children)
	if err != nil {
		return nil, err
	}

	var opts []element.ContainerOption
	if n.Background != "" {
		bg, err := ParseColor(n.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, element.WithBackground(bg))
	}

	if n.Width > 0 || n.Height > 0 {
		return element.NewFixedContainer(n.Width, n.Height, axis, justify, align, children, opts...)
	}
	return element.NewContainer(axis, align, children, opts...)
}

func (m *Manifest) buildStack(n Node) (element.Element, error) {
	children, err := m.buildChildren(n.Children)
	if err != nil {
		return nil, err
	}

	var opts []element.StackOption
	if n.HAlign != "" {
		a, err := layout.ParseAlign(n.HAlign)
		if err != nil {
			return nil, err
		}
		opts = append(opts, element.WithHorizontalAlign(a))
	}
	if n.VAlign != "" {
		a, err := layout.ParseAlign(n.VAlign)
		if err != nil {
			return nil, err
		}
		opts = append(opts, element.WithVerticalAlign(a))
	}
	return element.NewStack(children, opts...)
}

func (m *Manifest) buildImage(n Node) (element.Element, error) {
	if n.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "image node requires a path")
	}
	path := n.Path
	if !filepath.IsAbs(path) && m.dir != "" {
		path = filepath.Join(m.dir, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open image %s", path)
	}
	return element.NewLeaf(img)
}

func (m *Manifest) buildText(n Node) (element.Element, error) {
	if n.Content == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "text node requires content")
	}
	var opts []element.TextOption
	if n.Font != "" {
		opts = append(opts, element.WithFont(n.Font))
	}
	if n.FontSize > 0 {
		opts = append(opts, element.WithFontSize(n.FontSize))
	}
	if n.Color != "" {
		col, err := ParseColor(n.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, element.WithColor(col))
	}
	return element.NewText(n.Content, opts...)
}

func (m *Manifest) buildChildren(nodes []Node) ([]element.Element, error) {
	children := make([]element.Element, 0, len(nodes))
	for _, child := range nodes {
		el, err := m.build(child)
		if err != nil {
			return nil, err
		}
		children = append(children, el)
	}
	return children, nil
}

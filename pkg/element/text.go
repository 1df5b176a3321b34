package element

import (
	"image/color"
	"math"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// defaultFonts are tried in order when no font is requested explicitly.
var defaultFonts = []string{
	"DejaVuSans.ttf",
	"Arial.ttf",
	"LiberationSans-Regular.ttf",
	"FreeSans.ttf",
}

const defaultFontSize = 16

// Text is a leaf that rasterizes a single line of text at construction
// time. Its intrinsic size is the measured extent of the string; afterwards
// it behaves exactly like a pre-rendered leaf.
type Text struct {
	content string
	buf     *canvas.Canvas
}

type textConfig struct {
	font  string
	size  float64
	color color.NRGBA
}

// TextOption configures text rasterization.
type TextOption func(*textConfig)

// WithFont selects a font by file name (e.g. "DejaVuSans.ttf"), located via
// the system font directories.
func WithFont(name string) TextOption {
	return func(c *textConfig) { c.font = name }
}

// WithFontSize sets the point size.
func WithFontSize(points float64) TextOption {
	return func(c *textConfig) { c.size = points }
}

// WithColor sets the text color. The default is opaque black.
func WithColor(col color.NRGBA) TextOption {
	return func(c *textConfig) { c.color = col }
}

// NewText rasterizes content into a leaf buffer. It fails with a
// FONT_NOT_FOUND error when no usable font face can be located.
func NewText(content string, opts ...TextOption) (*Text, error) {
	cfg := textConfig{
		size:  defaultFontSize,
		color: color.NRGBA{A: 255},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %v", cfg.size)
	}

	path, err := findFontFile(cfg.font)
	if err != nil {
		return nil, err
	}

	// Measure with a throwaway context, then draw at the measured size.
	probe := gg.NewContext(1, 1)
	if err := probe.LoadFontFace(path, cfg.size); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "cannot load font face %s", path)
	}
	w, h := probe.MeasureString(content)
	width := int(math.Ceil(w))
	height := int(math.Ceil(h * 1.2)) // headroom for ascenders and descenders

	if width == 0 || height == 0 {
		empty, err := canvas.New(0, 0, color.NRGBA{})
		if err != nil {
			return nil, err
		}
		return &Text{content: content, buf: empty}, nil
	}

	dc := gg.NewContext(width, height)
	if err := dc.LoadFontFace(path, cfg.size); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "cannot load font face %s", path)
	}
	dc.SetColor(cfg.color)
	dc.DrawStringAnchored(content, float64(width)/2, float64(height)/2, 0.5, 0.5)

	return &Text{content: content, buf: canvas.FromImage(dc.Image())}, nil
}

// findFontFile resolves a font file path, falling back through the default
// candidates when name is empty.
func findFontFile(name string) (string, error) {
	if name != "" {
		path, err := findfont.Find(name)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFontNotFound, err, "font %q not found", name)
		}
		return path, nil
	}
	for _, candidate := range defaultFonts {
		if path, err := findfont.Find(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeFontNotFound, "no default font available (tried %v)", defaultFonts)
}

// Content returns the rasterized string.
func (t *Text) Content() string { return t.content }

// IntrinsicSize returns the measured text extent.
func (t *Text) IntrinsicSize() layout.Size {
	return layout.Size{W: t.buf.Width(), H: t.buf.Height()}
}

// Canvas returns a copy of the rasterized text buffer.
func (t *Text) Canvas() *canvas.Canvas { return t.buf.Clone() }

func (t *Text) sealed() {}

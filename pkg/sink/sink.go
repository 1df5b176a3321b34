// Package sink encodes composed canvases into image artifacts.
package sink

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/pixelflex/pkg/canvas"
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/observability"
)

const defaultJPEGQuality = 90

type config struct {
	jpegQuality int
	matte       color.NRGBA
}

// Option configures encoding.
type Option func(*config)

// WithJPEGQuality sets the JPEG quality (1..100). The default is 90.
func WithJPEGQuality(q int) Option {
	return func(c *config) { c.jpegQuality = q }
}

// WithMatte sets the background color transparent pixels are flattened
// onto for formats without an alpha channel. The default is white.
func WithMatte(col color.NRGBA) Option {
	return func(c *config) { c.matte = col }
}

func newConfig(opts []Option) config {
	cfg := config{
		jpegQuality: defaultJPEGQuality,
		matte:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// EncodePNG returns the canvas as PNG bytes.
func EncodePNG(ctx context.Context, c *canvas.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(ctx, &buf, c, "png", newConfig(nil)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG encodes the canvas as PNG to w.
func WritePNG(ctx context.Context, w io.Writer, c *canvas.Canvas) error {
	return encode(ctx, w, c, "png", newConfig(nil))
}

// WriteJPEG encodes the canvas as JPEG to w, flattening alpha onto the
// configured matte.
func WriteJPEG(ctx context.Context, w io.Writer, c *canvas.Canvas, opts ...Option) error {
	return encode(ctx, w, c, "jpeg", newConfig(opts))
}

// WriteFile encodes the canvas to path, choosing the format from the
// file extension (.png, .jpg, .jpeg).
func WriteFile(ctx context.Context, path string, c *canvas.Canvas, opts ...Option) error {
	format, err := formatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()

	if err := encode(ctx, f, c, format, newConfig(opts)); err != nil {
		return err
	}
	return f.Close()
}

func formatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output extension %q", filepath.Ext(path))
	}
}

func encode(ctx context.Context, w io.Writer, c *canvas.Canvas, format string, cfg config) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must not be nil")
	}

	start := time.Now()
	counter := &countingWriter{w: w}
	err := encodeTo(counter, c, format, cfg)
	observability.Sink().OnEncode(ctx, format, counter.n, time.Since(start), err)
	return err
}

func encodeTo(w io.Writer, c *canvas.Canvas, format string, cfg config) error {
	switch format {
	case "png":
		if err := imaging.Encode(w, c.Image(), imaging.PNG); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
		return nil
	case "jpeg":
		flat, err := flatten(c, cfg.matte)
		if err != nil {
			return err
		}
		if err := imaging.Encode(w, flat.Image(), imaging.JPEG, imaging.JPEGQuality(cfg.jpegQuality)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// flatten composites the canvas over an opaque matte.
func flatten(c *canvas.Canvas, matte color.NRGBA) (*canvas.Canvas, error) {
	matte.A = 255
	out, err := canvas.New(c.Width(), c.Height(), matte)
	if err != nil {
		return nil, err
	}
	out.Draw(c, 0, 0, canvas.Over)
	return out, nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

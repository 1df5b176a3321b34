// Package decor provides post-render decorations applied to a composed
// canvas: gaussian blur, grayscale, circular and rounded-corner crops, and
// drop shadows.
//
// Decorations run after an element has rendered and before its canvas is
// blitted into the parent, so they never participate in layout. A
// decoration returns a new canvas and leaves its input untouched; most keep
// the canvas size, [Shadow] grows it.
package decor

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/pixelflex/pkg/canvas"
)

// Decoration transforms a rendered canvas.
type Decoration interface {
	Apply(c *canvas.Canvas) (*canvas.Canvas, error)
}

// Blur applies a gaussian blur with the given sigma.
type Blur struct {
	Sigma float64
}

// Apply blurs the canvas. A non-positive sigma is a no-op.
func (b Blur) Apply(c *canvas.Canvas) (*canvas.Canvas, error) {
	if b.Sigma <= 0 {
		return c.Clone(), nil
	}
	return canvas.FromImage(imaging.Blur(c.Image(), b.Sigma)), nil
}

// Grayscale desaturates the canvas by Amount in [0, 1]; 1 is fully gray.
type Grayscale struct {
	Amount float64
}

// Apply blends the desaturated canvas back over the original by Amount.
func (g Grayscale) Apply(c *canvas.Canvas) (*canvas.Canvas, error) {
	amount := math.Min(1, math.Max(0, g.Amount))
	if amount == 0 {
		return c.Clone(), nil
	}

	gray := imaging.Grayscale(c.Image())
	out := c.Clone()
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			orig, err := out.At(x, y)
			if err != nil {
				return nil, err
			}
			gp := gray.NRGBAAt(x, y)
			mixed := color.NRGBA{
				R: lerp(orig.R, gp.R, amount),
				G: lerp(orig.G, gp.G, amount),
				B: lerp(orig.B, gp.B, amount),
				A: orig.A,
			}
			if err := out.Set(x, y, mixed); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
}

// CircleCrop masks the canvas to a centered circle. A zero Radius uses the
// largest circle that fits.
type CircleCrop struct {
	Radius int
}

// Apply zeroes the alpha of every pixel outside the circle.
func (cc CircleCrop) Apply(c *canvas.Canvas) (*canvas.Canvas, error) {
	r := cc.Radius
	if r <= 0 {
		r = min(c.Width(), c.Height()) / 2
	}
	cx := float64(c.Width())/2 - 0.5
	cy := float64(c.Height())/2 - 0.5
	rr := float64(r) * float64(r)

	out := c.Clone()
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy > rr {
				px, err := out.At(x, y)
				if err != nil {
					return nil, err
				}
				px.A = 0
				if err := out.Set(x, y, px); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

// RoundedCrop masks the canvas to a rectangle with rounded corners of the
// given radius.
type RoundedCrop struct {
	Radius int
}

// Apply zeroes the alpha of pixels outside the rounded rectangle.
func (rc RoundedCrop) Apply(c *canvas.Canvas) (*canvas.Canvas, error) {
	r := rc.Radius
	if r <= 0 {
		return c.Clone(), nil
	}
	r = min(r, min(c.Width(), c.Height())/2)
	w, h := c.Width(), c.Height()
	rr := float64(r) * float64(r)

	out := c.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Distance to the nearest corner circle center, corners only.
			var dx, dy float64
			switch {
			case x < r && y < r:
				dx, dy = float64(x-r)+0.5, float64(y-r)+0.5
			case x >= w-r && y < r:
				dx, dy = float64(x-(w-r-1))-0.5, float64(y-r)+0.5
			case x < r && y >= h-r:
				dx, dy = float64(x-r)+0.5, float64(y-(h-r-1))-0.5
			case x >= w-r && y >= h-r:
				dx, dy = float64(x-(w-r-1))-0.5, float64(y-(h-r-1))-0.5
			default:
				continue
			}
			if dx*dx+dy*dy > rr {
				px, err := out.At(x, y)
				if err != nil {
					return nil, err
				}
				px.A = 0
				if err := out.Set(x, y, px); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

// Shadow draws a blurred silhouette of the canvas behind it at the given
// offset. The resulting canvas grows to hold both content and shadow.
type Shadow struct {
	OffsetX int
	OffsetY int
	Sigma   float64
	Color   color.NRGBA
}

// Apply returns a larger canvas with the shadow beneath the original
// content. The content keeps its top-left alignment when the offset is
// positive; negative offsets shift the content instead.
func (s Shadow) Apply(c *canvas.Canvas) (*canvas.Canvas, error) {
	pad := int(math.Ceil(s.Sigma * 3))

	growX := abs(s.OffsetX) + 2*pad
	growY := abs(s.OffsetY) + 2*pad
	out, err := canvas.New(c.Width()+growX, c.Height()+growY, color.NRGBA{})
	if err != nil {
		return nil, err
	}

	contentX, contentY := pad, pad
	shadowX, shadowY := pad+s.OffsetX, pad+s.OffsetY
	if s.OffsetX < 0 {
		contentX = pad - s.OffsetX
		shadowX = pad
	}
	if s.OffsetY < 0 {
		contentY = pad - s.OffsetY
		shadowY = pad
	}

	sil := silhouette(c, s.Color)
	if s.Sigma > 0 {
		sil = canvas.FromImage(imaging.Blur(sil.Image(), s.Sigma))
	}
	out.Draw(sil, shadowX, shadowY, canvas.Over)
	out.Draw(c, contentX, contentY, canvas.Over)
	return out, nil
}

// Grow reports the size Apply will produce for a w x h input, letting
// layout account for the shadow's footprint before rendering.
func (s Shadow) Grow(w, h int) (int, int) {
	pad := int(math.Ceil(s.Sigma * 3))
	return w + abs(s.OffsetX) + 2*pad, h + abs(s.OffsetY) + 2*pad
}

// silhouette builds a canvas of the shadow color shaped by src's alpha.
func silhouette(src *canvas.Canvas, col color.NRGBA) *canvas.Canvas {
	out, _ := canvas.New(src.Width(), src.Height(), color.NRGBA{})
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			px, err := src.At(x, y)
			if err != nil || px.A == 0 {
				continue
			}
			shade := col
			shade.A = uint8(uint32(px.A) * uint32(col.A) / 255)
			_ = out.Set(x, y, shade)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

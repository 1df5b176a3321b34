// Package canvas implements the mutable RGBA pixel buffer that composed
// elements are rendered into.
//
// A Canvas stores non-premultiplied RGBA pixels in row-major order, top to
// bottom, matching the stdlib [image.NRGBA] layout so that canvases can be
// handed to image encoders and manipulation libraries without conversion.
//
// Direct pixel access with [Canvas.At] and [Canvas.Set] is bounds-checked and
// fails fast with an OUT_OF_BOUNDS error. Region compositing with
// [Canvas.Draw] silently clips the source against the destination instead:
// clipping is the intended path for deliberate layout overflow.
package canvas

import (
	"image"
	"image/color"

	"github.com/matzehuels/pixelflex/pkg/errors"
)

// CompositeMode selects how source pixels are combined with destination
// pixels during [Canvas.Draw].
type CompositeMode int

const (
	// Over alpha-blends the source onto the destination. A fully opaque
	// source pixel replaces the destination pixel.
	Over CompositeMode = iota

	// Replace copies source pixels verbatim, including their alpha.
	Replace

	// Under blends the destination over the source: the source only shows
	// through where the destination is transparent.
	Under
)

// Canvas is a 2-D RGBA pixel buffer with explicit width and height.
// A Canvas is owned exclusively by the render call that created it and must
// not be shared across concurrent renders.
type Canvas struct {
	width  int
	height int
	pix    []uint8 // NRGBA, 4 bytes per pixel, row-major
}

// New creates a canvas of the given size filled with the fill color.
// Zero extents are valid and produce an empty canvas; negative extents are a
// configuration error.
func New(width, height int, fill color.NRGBA) (*Canvas, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
	c.Fill(fill)
	return c, nil
}

// FromImage copies an arbitrary image into a new canvas.
func FromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := &Canvas{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]uint8, b.Dx()*b.Dy()*4),
	}
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*4 {
		copy(c.pix, n.Pix[n.PixOffset(b.Min.X, b.Min.Y):])
		return c
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.pix[i] = n.R
			c.pix[i+1] = n.G
			c.pix[i+2] = n.B
			c.pix[i+3] = n.A
			i += 4
		}
	}
	return c
}

// Width returns the horizontal extent in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the vertical extent in pixels.
func (c *Canvas) Height() int { return c.height }

// At returns the pixel at (x, y).
// Out-of-bounds access fails with an OUT_OF_BOUNDS error; it never clamps.
func (c *Canvas) At(x, y int) (color.NRGBA, error) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.NRGBA{}, errors.New(errors.ErrCodeOutOfBounds,
			"pixel (%d, %d) outside %dx%d canvas", x, y, c.width, c.height)
	}
	i := (y*c.width + x) * 4
	return color.NRGBA{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2], A: c.pix[i+3]}, nil
}

// Set writes the pixel at (x, y).
// Out-of-bounds access fails with an OUT_OF_BOUNDS error; it never clamps.
func (c *Canvas) Set(x, y int, col color.NRGBA) error {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return errors.New(errors.ErrCodeOutOfBounds,
			"pixel (%d, %d) outside %dx%d canvas", x, y, c.width, c.height)
	}
	i := (y*c.width + x) * 4
	c.pix[i] = col.R
	c.pix[i+1] = col.G
	c.pix[i+2] = col.B
	c.pix[i+3] = col.A
	return nil
}

// Fill overwrites every pixel with col.
func (c *Canvas) Fill(col color.NRGBA) {
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i] = col.R
		c.pix[i+1] = col.G
		c.pix[i+2] = col.B
		c.pix[i+3] = col.A
	}
}

// Draw composites src onto c with its top-left corner at (x, y).
// Portions of src falling outside c are silently clipped; negative offsets
// are valid. The destination is modified in place, src is left untouched.
func (c *Canvas) Draw(src *Canvas, x, y int, mode CompositeMode) {
	x0, y0 := max(x, 0), max(y, 0)
	x1 := min(x+src.width, c.width)
	y1 := min(y+src.height, c.height)

	for dy := y0; dy < y1; dy++ {
		sy := dy - y
		for dx := x0; dx < x1; dx++ {
			sx := dx - x
			si := (sy*src.width + sx) * 4
			di := (dy*c.width + dx) * 4

			switch mode {
			case Replace:
				copy(c.pix[di:di+4], src.pix[si:si+4])
			case Under:
				// Destination acts as the top layer.
				blendOver(c.pix[di:di+4], src.pix[si:si+4], c.pix[di:di+4])
			default:
				blendOver(c.pix[di:di+4], c.pix[di:di+4], src.pix[si:si+4])
			}
		}
	}
}

// blendOver writes src-over-dst into out using straight (non-premultiplied)
// alpha. out may alias either input. Integer arithmetic keeps repeated
// renders bit-identical.
func blendOver(out, dst, src []uint8) {
	sa := uint32(src[3])
	if sa == 255 {
		copy(out, src)
		return
	}
	da := uint32(dst[3])
	if sa == 0 {
		copy(out, dst)
		return
	}

	// outA = srcA + dstA*(1-srcA)
	outA := sa*255 + da*(255-sa) // scaled by 255
	var res [4]uint8
	for i := 0; i < 3; i++ {
		sc := uint32(src[i])
		dc := uint32(dst[i])
		// outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA
		num := sc*sa*255 + dc*da*(255-sa)
		res[i] = uint8((num + outA/2) / outA)
	}
	res[3] = uint8((outA + 127) / 255)
	copy(out, res[:])
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	pix := make([]uint8, len(c.pix))
	copy(pix, c.pix)
	return &Canvas{width: c.width, height: c.height, pix: pix}
}

// Image returns the canvas contents as a stdlib NRGBA image.
// The returned image shares no memory with the canvas.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.pix)
	return img
}

// Equal reports whether two canvases have identical dimensions and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

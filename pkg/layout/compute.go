package layout

import (
	"github.com/matzehuels/pixelflex/pkg/errors"
)

// Compute lays out children inside a container of the given extents.
//
// It returns one Geometry per entry in sizes, in the same order. Positions
// are relative to the container's top-left corner. Under AlignStretch the
// returned geometry carries the stretched cross extent; the input sizes are
// effective extents only and are never modified.
//
// When the children's total main extent exceeds the container's, the
// children keep their natural extents and are placed sequentially from the
// start, allowed to exceed the container bounds. Overflow is a defined
// degraded layout, not an error; clipping happens later, at composite time.
//
// Zero children yields an empty result and no error.
func Compute(width, height int, axis Axis, justify Justify, align Align, sizes []Size) ([]Geometry, error) {
	if !axis.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid axis value %d", int(axis))
	}
	if !justify.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid justify value %d", int(justify))
	}
	if !align.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "invalid align value %d", int(align))
	}

	n := len(sizes)
	if n == 0 {
		return []Geometry{}, nil
	}

	mainExtent := Size{W: width, H: height}.Main(axis)
	crossExtent := Size{W: width, H: height}.Cross(axis)

	total := 0
	for _, sz := range sizes {
		total += sz.Main(axis)
	}

	lead, gaps := distribute(justify, mainExtent-total, n)

	geos := make([]Geometry, n)
	pos := lead
	for i, sz := range sizes {
		cross := sz.Cross(axis)
		crossPos := 0
		switch align {
		case AlignEnd:
			crossPos = crossExtent - cross
		case AlignCenter:
			crossPos = (crossExtent - cross) / 2
		case AlignStretch:
			cross = crossExtent
		}

		if axis == Horizontal {
			geos[i] = Geometry{X: pos, Y: crossPos, W: sz.W, H: cross}
		} else {
			geos[i] = Geometry{X: crossPos, Y: pos, W: cross, H: sz.H}
		}

		pos += sz.Main(axis)
		if i < n-1 {
			pos += gaps[i]
		}
	}
	return geos, nil
}

// distribute turns free main-axis space into a leading offset plus n-1
// inter-child gaps. Negative free space means overflow: everything collapses
// to sequential placement from the start.
func distribute(justify Justify, free, n int) (lead int, gaps []int) {
	gaps = make([]int, n-1)
	if free < 0 {
		return 0, gaps
	}

	switch justify {
	case JustifyEnd:
		lead = free
	case JustifyCenter:
		lead = free / 2
	case JustifySpaceBetween:
		if n == 1 {
			lead = free / 2
			break
		}
		split(free, gaps)
	case JustifySpaceAround:
		// The leading edge and every inter-child gap get one unit of
		// free/n each; leftover pixels go one per gap from the front.
		units := make([]int, n)
		split(free, units)
		lead = units[0]
		copy(gaps, units[1:])
	case JustifySpaceEvenly:
		units := make([]int, n+1)
		split(free, units)
		lead = units[0]
		copy(gaps, units[1:n])
	}
	return lead, gaps
}

// split divides total into len(out) near-equal integer parts. The remainder
// is assigned one pixel per part starting from the first, which keeps the
// parts equal within one pixel and the result reproducible.
func split(total int, out []int) {
	k := len(out)
	if k == 0 {
		return
	}
	base, rem := total/k, total%k
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
}

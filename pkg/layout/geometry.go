package layout

// Size is an element's extent in integer pixels.
type Size struct {
	W, H int
}

// Main returns the extent along the given main axis.
func (s Size) Main(a Axis) int {
	if a == Horizontal {
		return s.W
	}
	return s.H
}

// Cross returns the extent across the given main axis.
func (s Size) Cross(a Axis) int {
	if a == Horizontal {
		return s.H
	}
	return s.W
}

// Geometry is the computed rectangle for a single element: its position
// relative to the parent container plus its effective size. It is produced
// fresh on every layout pass and never stored on the element.
type Geometry struct {
	X, Y int
	W, H int
}

// Right returns the x coordinate one past the right edge.
func (g Geometry) Right() int { return g.X + g.W }

// Bottom returns the y coordinate one past the bottom edge.
func (g Geometry) Bottom() int { return g.Y + g.H }

// Size returns the effective size of the rectangle.
func (g Geometry) Size() Size { return Size{W: g.W, H: g.H} }

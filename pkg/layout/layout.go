// Package layout computes flexbox-style positions for the children of a
// container.
//
// The engine is a pure function over integer pixel units: given a container's
// extents, its main axis, a main-axis distribution policy (justify) and a
// cross-axis alignment policy, [Compute] assigns one [Geometry] per child.
// Nothing is cached and no element state is touched, so identical inputs
// always produce identical output.
//
// Fractional free space is distributed deterministically: when a gap count
// does not divide the free space evenly, the leftover pixels are handed out
// one per gap starting from the first gap.
package layout

import (
	"fmt"

	"github.com/matzehuels/pixelflex/pkg/errors"
)

// Axis is the direction along which a container distributes its children.
type Axis int

const (
	// Horizontal distributes children left to right; width is the main extent.
	Horizontal Axis = iota
	// Vertical distributes children top to bottom; height is the main extent.
	Vertical
)

// String returns the lowercase name of the axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether the axis is a known value.
func (a Axis) Valid() bool { return a == Horizontal || a == Vertical }

// ParseAxis converts a policy string from a scene manifest to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "row", "":
		return Horizontal, nil
	case "vertical", "column":
		return Vertical, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidPolicy, "unknown axis %q", s)
	}
}

// Justify is the main-axis free-space distribution policy.
type Justify int

const (
	// JustifyStart packs children at the start; free space trails.
	JustifyStart Justify = iota
	// JustifyEnd packs children at the end; free space leads.
	JustifyEnd
	// JustifyCenter splits free space evenly before and after the children.
	JustifyCenter
	// JustifySpaceBetween puts equal gaps between children and none at the
	// edges. A single child behaves as JustifyCenter.
	JustifySpaceBetween
	// JustifySpaceAround gives the leading edge and each inter-child gap one
	// unit of free_space/n.
	JustifySpaceAround
	// JustifySpaceEvenly puts free_space/(n+1) gaps everywhere, edges included.
	JustifySpaceEvenly
)

var justifyNames = map[Justify]string{
	JustifyStart:        "start",
	JustifyEnd:          "end",
	JustifyCenter:       "center",
	JustifySpaceBetween: "space-between",
	JustifySpaceAround:  "space-around",
	JustifySpaceEvenly:  "space-evenly",
}

// String returns the kebab-case name of the policy.
func (j Justify) String() string {
	if s, ok := justifyNames[j]; ok {
		return s
	}
	return fmt.Sprintf("Justify(%d)", int(j))
}

// Valid reports whether the policy is a known value.
func (j Justify) Valid() bool {
	_, ok := justifyNames[j]
	return ok
}

// ParseJustify converts a policy string from a scene manifest to a Justify.
func ParseJustify(s string) (Justify, error) {
	switch s {
	case "start", "":
		return JustifyStart, nil
	case "end":
		return JustifyEnd, nil
	case "center":
		return JustifyCenter, nil
	case "space-between":
		return JustifySpaceBetween, nil
	case "space-around":
		return JustifySpaceAround, nil
	case "space-evenly":
		return JustifySpaceEvenly, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidPolicy, "unknown justify policy %q", s)
	}
}

// Align is the cross-axis per-child positioning policy.
type Align int

const (
	// AlignStart places children at the cross-axis start.
	AlignStart Align = iota
	// AlignEnd places children at the cross-axis end.
	AlignEnd
	// AlignCenter centers children on the cross axis.
	AlignCenter
	// AlignStretch forces each child's effective cross extent to the
	// container's cross extent. Intrinsic element sizes are never modified.
	AlignStretch
)

var alignNames = map[Align]string{
	AlignStart:   "start",
	AlignEnd:     "end",
	AlignCenter:  "center",
	AlignStretch: "stretch",
}

// String returns the lowercase name of the policy.
func (a Align) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// Valid reports whether the policy is a known value.
func (a Align) Valid() bool {
	_, ok := alignNames[a]
	return ok
}

// ParseAlign converts a policy string from a scene manifest to an Align.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "start", "":
		return AlignStart, nil
	case "end":
		return AlignEnd, nil
	case "center":
		return AlignCenter, nil
	case "stretch":
		return AlignStretch, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidPolicy, "unknown align policy %q", s)
	}
}

package element

import (
	"github.com/matzehuels/pixelflex/pkg/errors"
	"github.com/matzehuels/pixelflex/pkg/layout"
)

// Spacer is a fully transparent element used to hold space in containers.
// Either extent may be zero.
type Spacer struct {
	size layout.Size
}

// NewSpacer creates a spacer of the given size.
func NewSpacer(width, height int) (*Spacer, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	return &Spacer{size: layout.Size{W: width, H: height}}, nil
}

// IntrinsicSize returns the spacer's extent.
func (s *Spacer) IntrinsicSize() layout.Size { return s.size }

func (s *Spacer) sealed() {}

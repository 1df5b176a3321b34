package errors

// ValidateDimensions checks that a container's fixed width and height are
// both positive. Zero or negative dimensions are a configuration error and
// are rejected at construction time, never silently defaulted.
func ValidateDimensions(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidDimensions, "height must be positive, got %d", height)
	}
	return nil
}

// ValidateSize checks that an intrinsic element size is non-negative.
// Zero extents are valid: a zero-sized element participates normally in
// layout and contributes nothing to the main-axis total.
func ValidateSize(width, height int) error {
	if width < 0 {
		return New(ErrCodeInvalidDimensions, "width must be non-negative, got %d", width)
	}
	if height < 0 {
		return New(ErrCodeInvalidDimensions, "height must be non-negative, got %d", height)
	}
	return nil
}

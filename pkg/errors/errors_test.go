package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidDimensions, "width must be positive, got %d", -5),
			want: "INVALID_DIMENSIONS: width must be positive, got -5",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidManifest, fmt.Errorf("unexpected token"), "failed to parse scene"),
			want: "INVALID_MANIFEST: failed to parse scene: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeOutOfBounds, "pixel (10, 20) outside 5x5 canvas")

	if !Is(err, ErrCodeOutOfBounds) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInvalidPolicy) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeOutOfBounds) {
		t.Error("Is() = true for plain error")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeFontNotFound, "no face for %q", "Comic Sans")
	outer := fmt.Errorf("building text leaf: %w", inner)

	if !Is(outer, ErrCodeFontNotFound) {
		t.Error("Is() did not unwrap the error chain")
	}
	if got := GetCode(outer); got != ErrCodeFontNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeFontNotFound)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidColor, "unknown color name %q", "mauve-ish")
	if got, want := UserMessage(err), `unknown color name "mauve-ish"`; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{name: "valid", w: 100, h: 50},
		{name: "zero width", w: 0, h: 50, wantErr: true},
		{name: "negative height", w: 100, h: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("error code = %q, want INVALID_DIMENSIONS", GetCode(err))
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(0, 0); err != nil {
		t.Errorf("zero size should be valid, got %v", err)
	}
	if err := ValidateSize(-1, 10); err == nil {
		t.Error("negative width should be rejected")
	}
}

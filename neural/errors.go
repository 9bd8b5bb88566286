package neural

import "errors"

var (
	// ErrDimensionMismatch is returned when an input vector does not match a
	// layer's expected input width.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrModelShapeMismatch is returned by SetModel when the model's parameter
	// counts disagree with the network shape.
	ErrModelShapeMismatch = errors.New("model shape mismatch")

	// ErrInvalidShape is returned for network shapes with fewer than two
	// widths or a non-positive width.
	ErrInvalidShape = errors.New("invalid network shape")

	// ErrInvalidOption is returned for out-of-range layer options.
	ErrInvalidOption = errors.New("invalid network option")
)

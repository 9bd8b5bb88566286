package neural

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the elementwise function applied to a layer's values.
type Activation uint8

const (
	Linear Activation = iota
	ReLU
	LeakyReLU
	ELU
	Sigmoid
	Tanh
)

// DefaultAlpha is the leak used by LeakyReLU and ELU when none is configured.
const DefaultAlpha = 0.01

var activationNames = [...]string{
	Linear:    "linear",
	ReLU:      "relu",
	LeakyReLU: "leaky-relu",
	ELU:       "elu",
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
}

// String returns the configuration name of the activation.
func (a Activation) String() string {
	if int(a) < len(activationNames) {
		return activationNames[a]
	}
	return fmt.Sprintf("activation(%d)", uint8(a))
}

// ParseActivation maps a configuration name to an Activation.
// Underscores are accepted in place of hyphens ("leaky_relu").
func ParseActivation(name string) (Activation, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, s := range activationNames {
		if s == n {
			return Activation(i), nil
		}
	}
	return Linear, fmt.Errorf("%w: unknown activation %q", ErrInvalidOption, name)
}

// Apply evaluates the activation at x. alpha is only read by LeakyReLU and ELU.
func (a Activation) Apply(x, alpha float64) float64 {
	switch a {
	case ReLU:
		return math.Max(0, x)
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return alpha * x
	case ELU:
		if x >= 0 {
			return x
		}
		return alpha * (math.Exp(x) - 1)
	case Sigmoid:
		// Split on sign so Exp never overflows.
		if x >= 0 {
			return 1 / (1 + math.Exp(-x))
		}
		e := math.Exp(x)
		return e / (1 + e)
	case Tanh:
		return math.Tanh(x)
	default:
		return x
	}
}

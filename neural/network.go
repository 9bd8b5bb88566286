// Package neural provides the feedforward networks used as creature brains.
package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// Options configures the hidden layers of a Network. The output layer is
// always Linear with no dropout.
type Options struct {
	Activation Activation
	Dropout    float64
	Alpha      float64
}

// DefaultOptions returns ReLU hidden layers without dropout.
func DefaultOptions() Options {
	return Options{Activation: ReLU, Alpha: DefaultAlpha}
}

// Network is a stack of fully connected layers whose widths follow Shape.
type Network struct {
	Shape  []int
	Layers []*Layer

	rng *rand.Rand // dropout source; shared with the owning simulation
}

// NewNetwork creates a zero-initialized network. rng may be nil only when
// opts.Dropout is zero.
func NewNetwork(shape []int, opts Options, rng *rand.Rand) (*Network, error) {
	if len(shape) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 widths, got %d", ErrInvalidShape, len(shape))
	}
	for i, w := range shape {
		if w < 1 {
			return nil, fmt.Errorf("%w: width %d at index %d", ErrInvalidShape, w, i)
		}
	}
	if opts.Dropout < 0 || opts.Dropout >= 1 {
		return nil, fmt.Errorf("%w: dropout %v not in [0,1)", ErrInvalidOption, opts.Dropout)
	}
	if opts.Dropout > 0 && rng == nil {
		return nil, fmt.Errorf("%w: dropout requires a random source", ErrInvalidOption)
	}

	n := &Network{
		Shape:  append([]int(nil), shape...),
		Layers: make([]*Layer, len(shape)-1),
		rng:    rng,
	}
	for i := range n.Layers {
		act, dropout := opts.Activation, opts.Dropout
		if i == len(n.Layers)-1 {
			act, dropout = Linear, 0
		}
		n.Layers[i] = NewLayer(shape[i], shape[i+1], act, dropout, opts.Alpha)
	}
	return n, nil
}

// Infer runs a forward pass and returns a copy of the output layer's values.
func (n *Network) Infer(inputs []float64) ([]float64, error) {
	in := inputs
	last := len(n.Layers) - 1
	for i, l := range n.Layers {
		if err := l.Forward(in); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if i != last {
			l.Activate()
			l.ApplyDropout(n.rng)
		}
		in = l.Values
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out, nil
}

// Clone returns an independent copy with identical parameters.
// The copy shares the random source.
func (n *Network) Clone() *Network {
	c := &Network{
		Shape:  append([]int(nil), n.Shape...),
		Layers: make([]*Layer, len(n.Layers)),
		rng:    n.rng,
	}
	for i, l := range n.Layers {
		c.Layers[i] = l.Clone()
	}
	return c
}

// Mutate adds U(-scale, scale) to every weight and bias independently with
// probability rate. A non-positive rate leaves the network untouched.
func (n *Network) Mutate(rng *rand.Rand, rate, scale float64) {
	if rate <= 0 {
		return
	}
	for _, l := range n.Layers {
		l.mutate(rng, rate, scale)
	}
}

// Randomize replaces all weights with He-scaled normal samples and zeroes the biases.
func (n *Network) Randomize(rng *rand.Rand) {
	for _, l := range n.Layers {
		std := math.Sqrt(2.0 / float64(l.Inputs))
		for i := range l.Weights.data {
			l.Weights.data[i] = rng.NormFloat64() * std
		}
		for i := range l.Biases {
			l.Biases[i] = 0
		}
	}
}

// ParamCount returns the number of weights and biases.
func (n *Network) ParamCount() int {
	total := 0
	for _, l := range n.Layers {
		total += l.Inputs*l.Nodes + l.Nodes
	}
	return total
}

package neural

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Layer is one affine transform followed by an activation and optional dropout.
type Layer struct {
	Inputs int
	Nodes  int

	Weights *Matrix   // Nodes x Inputs
	Biases  []float64 // len Nodes
	Values  []float64 // len Nodes, overwritten by Forward

	Activation Activation
	Dropout    float64 // probability in [0, 1)
	Alpha      float64 // leak for LeakyReLU / ELU

	out *mat.VecDense // view over Values
}

// NewLayer creates a zero-initialized layer.
func NewLayer(inputs, nodes int, act Activation, dropout, alpha float64) *Layer {
	l := &Layer{
		Inputs:     inputs,
		Nodes:      nodes,
		Weights:    NewMatrix(nodes, inputs),
		Biases:     make([]float64, nodes),
		Values:     make([]float64, nodes),
		Activation: act,
		Dropout:    dropout,
		Alpha:      alpha,
	}
	l.out = mat.NewVecDense(nodes, l.Values)
	return l
}

// Forward computes Values = Weights * inputs + Biases.
func (l *Layer) Forward(inputs []float64) error {
	if len(inputs) != l.Inputs {
		return fmt.Errorf("%w: layer expects %d inputs, got %d", ErrDimensionMismatch, l.Inputs, len(inputs))
	}
	l.out.MulVec(l.Weights.dense, mat.NewVecDense(l.Inputs, inputs))
	floats.Add(l.Values, l.Biases)
	return nil
}

// Activate applies the configured activation to Values in place.
func (l *Layer) Activate() {
	if l.Activation == Linear {
		return
	}
	for i, v := range l.Values {
		l.Values[i] = l.Activation.Apply(v, l.Alpha)
	}
}

// ApplyDropout zeroes each value with probability Dropout and scales the
// survivors by 1/(1-Dropout).
func (l *Layer) ApplyDropout(rng *rand.Rand) {
	if l.Dropout <= 0 {
		return
	}
	scale := 1 / (1 - l.Dropout)
	for i := range l.Values {
		if rng.Float64() < l.Dropout {
			l.Values[i] = 0
		} else {
			l.Values[i] *= scale
		}
	}
}

// Clone deep-copies the parameters and configuration. Values are transient
// and start zeroed in the copy.
func (l *Layer) Clone() *Layer {
	c := NewLayer(l.Inputs, l.Nodes, l.Activation, l.Dropout, l.Alpha)
	copy(c.Weights.data, l.Weights.data)
	copy(c.Biases, l.Biases)
	return c
}

// mutate perturbs each weight and bias with probability rate by U(-scale, scale).
func (l *Layer) mutate(rng *rand.Rand, rate, scale float64) {
	for i := range l.Weights.data {
		if rng.Float64() < rate {
			l.Weights.data[i] += scale * (rng.Float64()*2 - 1)
		}
	}
	for i := range l.Biases {
		if rng.Float64() < rate {
			l.Biases[i] += scale * (rng.Float64()*2 - 1)
		}
	}
}

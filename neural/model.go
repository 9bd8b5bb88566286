package neural

import "fmt"

// LayerParams holds one layer's flattened parameters.
// Weights are row-major, Nodes rows by Inputs columns.
type LayerParams struct {
	Inputs  int       `json:"inputs"`
	Nodes   int       `json:"nodes"`
	Weights []float64 `json:"weights"`
	Biases  []float64 `json:"biases"`
}

// Model is the serializable parameter set of a Network.
type Model struct {
	Shape  []int         `json:"shape"`
	Layers []LayerParams `json:"layers"`
}

// ParamCount returns the number of weights and biases in m.
func (m Model) ParamCount() int {
	n := 0
	for _, l := range m.Layers {
		n += len(l.Weights) + len(l.Biases)
	}
	return n
}

// Model returns a copy of the network's weights and biases in layer order.
func (n *Network) Model() Model {
	m := Model{
		Shape:  append([]int(nil), n.Shape...),
		Layers: make([]LayerParams, len(n.Layers)),
	}
	for i, l := range n.Layers {
		m.Layers[i] = LayerParams{
			Inputs:  l.Inputs,
			Nodes:   l.Nodes,
			Weights: append([]float64(nil), l.Weights.data...),
			Biases:  append([]float64(nil), l.Biases...),
		}
	}
	return m
}

// SetModel loads parameters from m. The whole model is validated first, so
// on error the network is left unchanged.
func (n *Network) SetModel(m Model) error {
	if err := n.checkModel(m); err != nil {
		return err
	}
	for i, lp := range m.Layers {
		copy(n.Layers[i].Weights.data, lp.Weights)
		copy(n.Layers[i].Biases, lp.Biases)
	}
	return nil
}

func (n *Network) checkModel(m Model) error {
	if len(m.Shape) > 0 {
		if len(m.Shape) != len(n.Shape) {
			return fmt.Errorf("%w: shape %v, network %v", ErrModelShapeMismatch, m.Shape, n.Shape)
		}
		for i := range m.Shape {
			if m.Shape[i] != n.Shape[i] {
				return fmt.Errorf("%w: shape %v, network %v", ErrModelShapeMismatch, m.Shape, n.Shape)
			}
		}
	}
	if len(m.Layers) != len(n.Layers) {
		return fmt.Errorf("%w: %d layers, network has %d", ErrModelShapeMismatch, len(m.Layers), len(n.Layers))
	}
	for i, lp := range m.Layers {
		l := n.Layers[i]
		if (lp.Inputs != 0 && lp.Inputs != l.Inputs) || (lp.Nodes != 0 && lp.Nodes != l.Nodes) {
			return fmt.Errorf("%w: layer %d is %dx%d, network has %dx%d",
				ErrModelShapeMismatch, i, lp.Nodes, lp.Inputs, l.Nodes, l.Inputs)
		}
		if len(lp.Weights) != l.Nodes*l.Inputs {
			return fmt.Errorf("%w: layer %d has %d weights, want %d",
				ErrModelShapeMismatch, i, len(lp.Weights), l.Nodes*l.Inputs)
		}
		if len(lp.Biases) != l.Nodes {
			return fmt.Errorf("%w: layer %d has %d biases, want %d",
				ErrModelShapeMismatch, i, len(lp.Biases), l.Nodes)
		}
	}
	return nil
}

package graph

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// Activation is applied to a layer's pre-activation output.
type Activation func(g *Graph, x *Tensor) (*Tensor, error)

// Dense adds a fully connected layer: y = activation(x @ W + b).
//
// x must be a vector [in]. The layer registers the variables "<name>-w"
// [in, units] (Xavier initialized) and, when useBias is set, "<name>-b"
// [units] (zeros). A nil activation leaves the output linear.
//
// Dense is composed from catalog operations only, so encoded documents of
// graphs using it decode without extra node kinds.
func (g *Graph) Dense(name string, x *Tensor, units int, activation Activation, useBias bool) (*Tensor, error) {
	if err := checkInputs("Dense", x); err != nil {
		return nil, err
	}
	if len(x.Shape()) != 1 {
		return nil, shapeErr("Dense", "x must be rank 1, got %v", x.Shape())
	}
	if units <= 0 {
		return nil, fmt.Errorf("dense %q: %w: units=%d", name, ErrInvalidArgument, units)
	}
	in := x.Shape()[0]

	w, err := g.Variable(name+"-w", Literal(xavier(in, units, tensor.Shape{in, units})))
	if err != nil {
		return nil, err
	}
	out, err := g.MatMul(x, w)
	if err != nil {
		return nil, fmt.Errorf("dense %q: %w", name, err)
	}

	if useBias {
		zeros, err := tensor.NewRaw(tensor.Shape{units}, tensor.Float32)
		if err != nil {
			return nil, err
		}
		b, err := g.Variable(name+"-b", Literal(zeros))
		if err != nil {
			return nil, err
		}
		if out, err = g.Add(out, b); err != nil {
			return nil, fmt.Errorf("dense %q: %w", name, err)
		}
	}

	if activation == nil {
		return out, nil
	}
	return activation(g, out)
}

// xavier draws weights from U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))).
func xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.RawTensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	raw, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		panic(err)
	}
	data := raw.AsFloat32()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}
	return raw
}

// Activations usable with Dense.
var (
	ReLUActivation    Activation = (*Graph).ReLU
	SigmoidActivation Activation = (*Graph).Sigmoid
	TanHActivation    Activation = (*Graph).TanH
	EluActivation     Activation = (*Graph).Elu
)

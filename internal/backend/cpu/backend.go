// Package cpu implements the reference CPU kernels used to evaluate graphs.
//
// Kernels compute in float32. Integer and bool inputs are widened to float32
// before computing, so every kernel except Argmax and Equal returns a
// float32 tensor. Shape errors are programming errors at this level (graph
// construction validates shapes first) and panic, like the rest of the
// backend.
package cpu

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition. Either operand may be a single-element
// tensor, in which case it is broadcast over the other.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with scalar broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with scalar broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with scalar broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("div", a, b, func(x, y float32) float32 { return x / y })
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 { return v * s })
}

// binaryShape returns the result shape of a binary element-wise op.
func binaryShape(op string, a, b tensor.Shape) tensor.Shape {
	switch {
	case a.NumElements() == 1:
		return b
	case b.NumElements() == 1:
		return a
	case a.Equal(b):
		return a
	default:
		panic(fmt.Sprintf("%s: shapes not compatible: %v vs %v", op, a, b))
	}
}

func binaryOp(op string, a, b *tensor.RawTensor, fn func(x, y float32) float32) *tensor.RawTensor {
	outShape := binaryShape(op, a.Shape(), b.Shape())
	result := newFloat32(op, outShape)

	av := a.Float32s()
	bv := b.Float32s()
	dst := result.AsFloat32()

	switch {
	case len(av) == 1 && len(bv) != 1:
		for i := range dst {
			dst[i] = fn(av[0], bv[i])
		}
	case len(bv) == 1 && len(av) != 1:
		for i := range dst {
			dst[i] = fn(av[i], bv[0])
		}
	default:
		for i := range dst {
			dst[i] = fn(av[i], bv[i])
		}
	}
	return result
}

func unaryOp(x *tensor.RawTensor, fn func(v float32) float32) *tensor.RawTensor {
	result := newFloat32("unary", x.Shape())
	dst := result.AsFloat32()
	for i, v := range x.Float32s() {
		dst[i] = fn(v)
	}
	return result
}

func newFloat32(op string, shape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

// Log computes the natural logarithm element-wise.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 { return float32(math.Log(float64(v))) })
}

// Square computes x*x element-wise.
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 { return v * v })
}

// ReLU computes max(0, x).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Elu computes x for x > 0 and e^x - 1 otherwise.
func (cpu *CPUBackend) Elu(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return float32(math.Exp(float64(v)) - 1)
	})
}

// LeakyReLU computes x for x > 0 and alpha*x otherwise.
func (cpu *CPUBackend) LeakyReLU(x *tensor.RawTensor, alpha float32) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return alpha * v
	})
}

// PReLU is LeakyReLU with a per-element slope tensor of the same shape as x.
func (cpu *CPUBackend) PReLU(x, alpha *tensor.RawTensor) *tensor.RawTensor {
	if !x.Shape().Equal(alpha.Shape()) {
		panic(fmt.Sprintf("prelu: alpha shape %v does not match input shape %v", alpha.Shape(), x.Shape()))
	}
	result := newFloat32("prelu", x.Shape())
	dst := result.AsFloat32()
	a := alpha.Float32s()
	for i, v := range x.Float32s() {
		if v > 0 {
			dst[i] = v
		} else {
			dst[i] = a[i] * v
		}
	}
	return result
}

// Sigmoid computes 1 / (1 + e^-x).
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 {
		return float32(1 / (1 + math.Exp(-float64(v))))
	})
}

// Tanh computes the hyperbolic tangent.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, func(v float32) float32 { return float32(math.Tanh(float64(v))) })
}

// Softmax computes exp(x_i) / sum(exp(x_j)) over all elements.
// The maximum is subtracted first for numerical stability.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor) *tensor.RawTensor {
	src := x.Float32s()
	result := newFloat32("softmax", x.Shape())
	dst := result.AsFloat32()

	maxVal := src[0]
	for _, v := range src[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	var sum float64
	for i, v := range src {
		e := math.Exp(float64(v - maxVal))
		dst[i] = float32(e)
		sum += e
	}
	for i := range dst {
		dst[i] = float32(float64(dst[i]) / sum)
	}
	return result
}

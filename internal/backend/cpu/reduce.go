package cpu

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// Sum returns the sum of all elements as a float32 scalar.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	var sum float32
	for _, v := range x.Float32s() {
		sum += v
	}
	return tensor.Scalar(sum)
}

// Argmax returns the flat index of the maximum element as an int32 scalar.
// Ties resolve to the first occurrence.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor) *tensor.RawTensor {
	src := x.Float32s()
	best := 0
	for i := 1; i < len(src); i++ {
		if src[i] > src[best] {
			best = i
		}
	}

	//nolint:gosec // G115: tensor sizes are bounded by memory, index fits int32
	result, err := tensor.FromInt32(tensor.Shape{}, []int32{int32(best)})
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}
	return result
}

// Equal compares a and b element-wise and returns a bool tensor.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape := binaryShape("equal", a.Shape(), b.Shape())
	result, err := tensor.NewRaw(outShape, tensor.Bool)
	if err != nil {
		panic(fmt.Sprintf("equal: %v", err))
	}

	av := a.Float32s()
	bv := b.Float32s()
	dst := result.AsBool()
	for i := range dst {
		x := av[0]
		if len(av) > 1 {
			x = av[i]
		}
		y := bv[0]
		if len(bv) > 1 {
			y = bv[i]
		}
		if x == y {
			dst[i] = 1
		}
	}
	return result
}

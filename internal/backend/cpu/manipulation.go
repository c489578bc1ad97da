package cpu

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// ConcatShape returns the shape of a and b joined along axis.
// All other dimensions must agree.
func ConcatShape(a, b tensor.Shape, axis int) (tensor.Shape, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("concat: rank mismatch %v vs %v", a, b)
	}
	if axis < 0 || axis >= len(a) {
		return nil, fmt.Errorf("concat: axis %d out of range for rank %d", axis, len(a))
	}
	out := a.Clone()
	for i := range a {
		if i == axis {
			out[i] = a[i] + b[i]
			continue
		}
		if a[i] != b[i] {
			return nil, fmt.Errorf("concat: dimension %d differs: %v vs %v", i, a, b)
		}
	}
	return out, nil
}

// Concat joins a and b along axis. The result keeps a's dtype when both
// operands share it, otherwise it is float32.
func (cpu *CPUBackend) Concat(a, b *tensor.RawTensor, axis int) *tensor.RawTensor {
	outShape, err := ConcatShape(a.Shape(), b.Shape(), axis)
	if err != nil {
		panic(err.Error())
	}

	dtype := a.DType()
	if dtype != b.DType() {
		a = cpu.Cast(a, tensor.Float32)
		b = cpu.Cast(b, tensor.Float32)
		dtype = tensor.Float32
	}
	result, err := tensor.NewRaw(outShape, dtype)
	if err != nil {
		panic(fmt.Sprintf("concat: %v", err))
	}

	// Copy contiguous blocks: everything after axis is one block per outer index.
	elemSize := dtype.Size()
	inner := 1
	for _, d := range outShape[axis+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range outShape[:axis] {
		outer *= d
	}
	aBlock := a.Shape()[axis] * inner * elemSize
	bBlock := b.Shape()[axis] * inner * elemSize

	src1, src2, dst := a.Data(), b.Data(), result.Data()
	off := 0
	for o := 0; o < outer; o++ {
		off += copy(dst[off:], src1[o*aBlock:(o+1)*aBlock])
		off += copy(dst[off:], src2[o*bBlock:(o+1)*bBlock])
	}
	return result
}

// Reshape returns a copy of x with a new shape holding the same number of elements.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if shape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v to %v", x.Shape(), shape))
	}
	result, err := tensor.NewRaw(shape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), x.Data())
	return result
}

// Cast converts x to dtype.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	result, err := tensor.FromValues(x.Shape(), dtype, x.Values())
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}
	return result
}

package tensor

import "fmt"

// FromFloat32 creates a float32 tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromFloat32(shape Shape, data []float32) (*RawTensor, error) {
	raw, err := newChecked(shape, Float32, len(data))
	if err != nil {
		return nil, err
	}
	copy(raw.AsFloat32(), data)
	return raw, nil
}

// FromInt32 creates an int32 tensor from a Go slice.
func FromInt32(shape Shape, data []int32) (*RawTensor, error) {
	raw, err := newChecked(shape, Int32, len(data))
	if err != nil {
		return nil, err
	}
	copy(raw.AsInt32(), data)
	return raw, nil
}

// FromBool creates a bool tensor from a Go slice.
func FromBool(shape Shape, data []bool) (*RawTensor, error) {
	raw, err := newChecked(shape, Bool, len(data))
	if err != nil {
		return nil, err
	}
	dst := raw.AsBool()
	for i, v := range data {
		if v {
			dst[i] = 1
		}
	}
	return raw, nil
}

// FromValues creates a tensor of the given dtype from a flat float64
// sequence, converting each value to the element type: float32 uses IEEE-754
// single precision, int32 truncates toward zero, bool maps non-zero to 1.
func FromValues(shape Shape, dtype DataType, values []float64) (*RawTensor, error) {
	raw, err := newChecked(shape, dtype, len(values))
	if err != nil {
		return nil, err
	}

	switch dtype {
	case Float32:
		dst := raw.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case Int32:
		dst := raw.AsInt32()
		for i, v := range values {
			dst[i] = int32(v)
		}
	case Bool:
		dst := raw.AsBool()
		for i, v := range values {
			if v != 0 {
				dst[i] = 1
			}
		}
	default:
		return nil, fmt.Errorf("unsupported dtype %s", dtype)
	}
	return raw, nil
}

// Scalar creates a 0-D float32 tensor.
func Scalar(v float32) *RawTensor {
	raw, _ := FromFloat32(Shape{}, []float32{v}) // empty shape is always valid
	return raw
}

// Values returns a copy of the elements as float64. Every supported dtype
// converts to float64 exactly.
func (r *RawTensor) Values() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float64(v)
		}
	case Bool:
		for i, v := range r.AsBool() {
			out[i] = float64(v)
		}
	}
	return out
}

// Float32s returns a float32 copy of the elements regardless of dtype.
func (r *RawTensor) Float32s() []float32 {
	out := make([]float32, r.NumElements())
	switch r.dtype {
	case Float32:
		copy(out, r.AsFloat32())
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float32(v)
		}
	case Bool:
		for i, v := range r.AsBool() {
			out[i] = float32(v)
		}
	}
	return out
}

// Item returns the single element of a one-element tensor as float64.
// Panics if the tensor holds more than one element.
func (r *RawTensor) Item() float64 {
	if r.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", r.shape))
	}
	return r.Values()[0]
}

func newChecked(shape Shape, dtype DataType, n int) (*RawTensor, error) {
	if shape.NumElements() != n {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), n)
	}
	return NewRaw(shape, dtype)
}

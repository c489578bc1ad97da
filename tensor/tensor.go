// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/graphcodec/internal/tensor"
)

// Type aliases for public API

// RawTensor is a concrete tensor value: a row-major buffer with a shape and
// a data type.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), NumElements()
//   - Type-safe data access via AsFloat32(), AsInt32(), AsBool()
//   - Conversion to float64 via Values() and Item()
//   - Deep copies via Clone()
type RawTensor = tensor.RawTensor

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Int32   DataType = tensor.Int32
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
// An empty shape is a scalar.
type Shape = tensor.Shape

// NewRaw creates a zero-initialized tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromFloat32 creates a float32 tensor, copying data.
func FromFloat32(shape Shape, data []float32) (*RawTensor, error) {
	return tensor.FromFloat32(shape, data)
}

// FromInt32 creates an int32 tensor, copying data.
func FromInt32(shape Shape, data []int32) (*RawTensor, error) {
	return tensor.FromInt32(shape, data)
}

// FromBool creates a bool tensor, copying data.
func FromBool(shape Shape, data []bool) (*RawTensor, error) {
	return tensor.FromBool(shape, data)
}

// FromValues creates a tensor of dtype from float64 values.
func FromValues(shape Shape, dtype DataType, values []float64) (*RawTensor, error) {
	return tensor.FromValues(shape, dtype, values)
}

// Scalar creates a 0-D float32 tensor.
func Scalar(v float32) *RawTensor {
	return tensor.Scalar(v)
}

// ParseDataType converts a dtype name ("float32", "int32", "bool").
func ParseDataType(s string) (DataType, bool) {
	return tensor.ParseDataType(s)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the concrete tensor values used by graphcodec.
//
// Values appear in two places: as literal payloads inside graph documents
// and as the results of evaluating a graph. A value is a flat row-major
// buffer with a shape and one of three element types:
//   - float32 (IEEE-754 single precision)
//   - int32
//   - bool (stored as 0/1 bytes)
//
// # Basic Usage
//
//	x, err := tensor.FromFloat32(tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(x.Shape(), x.DType(), x.Values())
//
// An empty Shape denotes a scalar:
//
//	s := tensor.Scalar(2.5) // shape [], one element
//
// # Conversions
//
// FromValues builds a tensor of any supported dtype from float64 values, the
// representation used by documents. Values returns the elements as float64
// again; every supported dtype converts exactly.
package tensor

package cpu

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// ConvOutputShape computes the [rows, cols, depth] output of a square-field
// convolution or pooling window over a [rows, cols, channels] input.
//
//	out = (in - fieldSize + 2*zeroPad) / stride + 1
func ConvOutputShape(input tensor.Shape, fieldSize, depth, stride, zeroPad int) (tensor.Shape, error) {
	if len(input) != 3 {
		return nil, fmt.Errorf("input must be rank 3 [rows,cols,depth], got %v", input)
	}
	if fieldSize <= 0 || stride <= 0 || zeroPad < 0 {
		return nil, fmt.Errorf("invalid window: fieldSize=%d stride=%d zeroPad=%d", fieldSize, stride, zeroPad)
	}
	rows := (input[0]-fieldSize+2*zeroPad)/stride + 1
	cols := (input[1]-fieldSize+2*zeroPad)/stride + 1
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid output dimensions: rows=%d, cols=%d (check fieldSize/stride/zeroPad)", rows, cols)
	}
	return tensor.Shape{rows, cols, depth}, nil
}

// DefaultPad returns the zero padding that keeps the output the same size as
// the input for stride 1.
func DefaultPad(input tensor.Shape, fieldSize, stride int) int {
	return ((input[0]-1)*stride - input[0] + fieldSize) / 2
}

// Conv2D performs a 2D convolution.
//
// Input shape:  [rows, cols, inDepth]
// Weight shape: [fieldSize, fieldSize, inDepth, outDepth]
// Bias shape:   [outDepth]
// Output shape: [outRows, outCols, outDepth]
//
// Positions outside the input (zero padding) contribute zero.
func (cpu *CPUBackend) Conv2D(x, w, b *tensor.RawTensor, stride, zeroPad int) *tensor.RawTensor {
	xs := x.Shape()
	ws := w.Shape()
	if len(ws) != 4 {
		panic(fmt.Sprintf("conv2d: weights must be rank 4, got %v", ws))
	}
	fieldSize := ws[0]
	inDepth := ws[2]
	outDepth := ws[3]
	if xs[2] != inDepth {
		panic(fmt.Sprintf("conv2d: input depth %d != weight depth %d", xs[2], inDepth))
	}
	if b.NumElements() != outDepth {
		panic(fmt.Sprintf("conv2d: bias has %d elements, want %d", b.NumElements(), outDepth))
	}

	outShape, err := ConvOutputShape(xs, fieldSize, outDepth, stride, zeroPad)
	if err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	xv := x.Float32s()
	wv := w.Float32s()
	bv := b.Float32s()
	result := newFloat32("conv2d", outShape)
	dst := result.AsFloat32()

	rows, cols := xs[0], xs[1]
	outRows, outCols := outShape[0], outShape[1]

	for d2 := 0; d2 < outDepth; d2++ {
		for yR := 0; yR < outRows; yR++ {
			xRCorner := yR*stride - zeroPad
			for yC := 0; yC < outCols; yC++ {
				xCCorner := yC*stride - zeroPad

				var sum float32
				for wR := 0; wR < fieldSize; wR++ {
					xR := xRCorner + wR
					if xR < 0 || xR >= rows {
						continue
					}
					for wC := 0; wC < fieldSize; wC++ {
						xC := xCCorner + wC
						if xC < 0 || xC >= cols {
							continue
						}
						for d1 := 0; d1 < inDepth; d1++ {
							xIdx := (xR*cols+xC)*inDepth + d1
							wIdx := ((wR*fieldSize+wC)*inDepth+d1)*outDepth + d2
							sum += xv[xIdx] * wv[wIdx]
						}
					}
				}
				dst[(yR*outCols+yC)*outDepth+d2] = sum + bv[d2]
			}
		}
	}
	return result
}

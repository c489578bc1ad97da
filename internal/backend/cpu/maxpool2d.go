package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// MaxPool2D performs 2D max pooling over a [rows, cols, depth] input.
//
// Each output element is the maximum of a fieldSize x fieldSize window,
// computed per depth slice. Padded positions are ignored.
//
// Example (2x2 pool, stride=2, depth 1):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(x *tensor.RawTensor, fieldSize, stride, zeroPad int) *tensor.RawTensor {
	xs := x.Shape()
	if len(xs) != 3 {
		panic(fmt.Sprintf("maxpool2d: expected rank 3 input [rows,cols,depth], got %v", xs))
	}
	outShape, err := ConvOutputShape(xs, fieldSize, xs[2], stride, zeroPad)
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: %v", err))
	}

	xv := x.Float32s()
	result := newFloat32("maxpool2d", outShape)
	dst := result.AsFloat32()

	rows, cols, depth := xs[0], xs[1], xs[2]
	outRows, outCols := outShape[0], outShape[1]

	for d := 0; d < depth; d++ {
		for yR := 0; yR < outRows; yR++ {
			xRCorner := yR*stride - zeroPad
			for yC := 0; yC < outCols; yC++ {
				xCCorner := yC*stride - zeroPad

				maxVal := float32(math.Inf(-1))
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
						if v := xv[(xR*cols+xC)*depth+d]; v > maxVal {
							maxVal = v
						}
					}
				}
				dst[(yR*outCols+yC)*depth+d] = maxVal
			}
		}
	}
	return result
}

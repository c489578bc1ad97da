package cpu

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// MatMulShape returns the output shape of a matrix product of rank-1/rank-2
// operands, or an error if the inner dimensions disagree.
//
//	[m,k] x [k,n] -> [m,n]
//	[m,k] x [k]   -> [m]
//	[k]   x [k,n] -> [n]
//	[k]   x [k]   -> [1]
func MatMulShape(a, b tensor.Shape) (tensor.Shape, error) {
	if len(a) < 1 || len(a) > 2 || len(b) < 1 || len(b) > 2 {
		return nil, fmt.Errorf("matmul: operands must be rank 1 or 2, got %v and %v", a, b)
	}
	inner := a[len(a)-1]
	if b[0] != inner {
		return nil, fmt.Errorf("matmul: inner dimensions differ: %v x %v", a, b)
	}

	switch {
	case len(a) == 2 && len(b) == 2:
		return tensor.Shape{a[0], b[1]}, nil
	case len(a) == 2:
		return tensor.Shape{a[0]}, nil
	case len(b) == 2:
		return tensor.Shape{b[1]}, nil
	default:
		return tensor.Shape{1}, nil
	}
}

// MatMul performs matrix multiplication of rank-1/rank-2 operands.
// Rank-1 left operands are treated as row vectors, rank-1 right operands as
// column vectors.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, err := MatMulShape(a.Shape(), b.Shape())
	if err != nil {
		panic(err.Error())
	}

	m := 1
	if len(a.Shape()) == 2 {
		m = a.Shape()[0]
	}
	k := b.Shape()[0]
	n := 1
	if len(b.Shape()) == 2 {
		n = b.Shape()[1]
	}

	av := a.Float32s()
	bv := b.Float32s()
	result := newFloat32("matmul", outShape)
	dst := result.AsFloat32()

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += av[i*k+p] * bv[p*n+j]
			}
			dst[i*n+j] = sum
		}
	}
	return result
}

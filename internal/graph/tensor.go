package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// nextID hands out tensor identifiers. Ids are process-unique and strictly
// increasing in creation order; 0 is never assigned.
var nextID atomic.Int64

// Tensor is a reference to a tensor value inside a graph.
//
// A symbolic tensor is the output of a Node: it has an id and a shape but no
// value until evaluated. A literal tensor wraps a concrete RawTensor, has no
// id and no producing node. Operations accept both.
type Tensor struct {
	id    int64
	shape tensor.Shape
	node  Node
	value *tensor.RawTensor
}

// Literal wraps a concrete value so it can be passed to graph operations.
func Literal(value *tensor.RawTensor) *Tensor {
	return &Tensor{
		shape: value.Shape().Clone(),
		value: value,
	}
}

func newSymbolic(shape tensor.Shape) *Tensor {
	return &Tensor{
		id:    nextID.Add(1),
		shape: shape.Clone(),
	}
}

// ID returns the tensor identifier. Literal tensors return 0.
func (t *Tensor) ID() int64 {
	return t.id
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() tensor.Shape {
	return t.shape
}

// IsLiteral reports whether the tensor carries its own value.
func (t *Tensor) IsLiteral() bool {
	return t.value != nil
}

// Value returns the literal payload, or nil for symbolic tensors.
func (t *Tensor) Value() *tensor.RawTensor {
	return t.value
}

// Node returns the node that produced the tensor, or nil for literals.
func (t *Tensor) Node() Node {
	return t.node
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	if t.IsLiteral() {
		return fmt.Sprintf("Literal[%s]%v", t.value.DType(), t.shape)
	}
	return fmt.Sprintf("Tensor#%d%v", t.id, t.shape)
}

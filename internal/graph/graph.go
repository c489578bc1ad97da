// Package graph implements the computation graph: an ordered list of
// operation nodes plus registries of named placeholders and variables.
//
// Nodes are appended in construction order. Every operation may only
// reference tensors that already exist, so construction order is also a
// topological order.
package graph

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// Graph is an ordered, append-only collection of nodes.
// A Graph is not safe for concurrent mutation.
type Graph struct {
	nodes        []Node
	placeholders map[string]*Tensor
	variables    map[string]*Tensor
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		placeholders: make(map[string]*Tensor),
		variables:    make(map[string]*Tensor),
	}
}

// Nodes returns the nodes in construction order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// PlaceholderByName returns the placeholder registered under name.
func (g *Graph) PlaceholderByName(name string) (*Tensor, bool) {
	t, ok := g.placeholders[name]
	return t, ok
}

// VariableByName returns the variable registered under name.
func (g *Graph) VariableByName(name string) (*Tensor, bool) {
	t, ok := g.variables[name]
	return t, ok
}

// append binds a fresh output tensor of the given shape to n and records n.
func (g *Graph) append(n Node, shape tensor.Shape) *Tensor {
	out := newSymbolic(shape)
	out.node = n
	n.bind(out)
	g.nodes = append(g.nodes, n)
	return out
}

// Assign replaces the value of the variable that produced v.
func Assign(v *Tensor, value *tensor.RawTensor) error {
	if v == nil || value == nil {
		return ErrNilInput
	}
	vn, ok := v.Node().(*VariableNode)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotVariable, v)
	}
	return vn.Assign(value)
}

func checkInputs(op string, inputs ...*Tensor) error {
	for i, t := range inputs {
		if t == nil {
			return fmt.Errorf("%s: input %d: %w", op, i, ErrNilInput)
		}
	}
	return nil
}

func shapeErr(op string, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrShapeMismatch, fmt.Sprintf(format, args...))
}

package graph

// Node is one operation in a Graph. The set of implementations is closed:
// every Node is one of the variant types declared in this package.
type Node interface {
	// Kind returns the operation kind.
	Kind() Kind
	// Inputs returns the named tensor inputs in a fixed per-kind order.
	Inputs() []Input
	// Output returns the tensor produced by the node.
	Output() *Tensor

	bind(out *Tensor)
}

// Input is a named tensor argument of a node.
type Input struct {
	Name   string
	Tensor *Tensor
}

// base holds the output shared by all node variants.
type base struct {
	output *Tensor
}

// Output returns the tensor produced by the node.
func (b *base) Output() *Tensor {
	return b.output
}

func (b *base) bind(out *Tensor) {
	b.output = out
}

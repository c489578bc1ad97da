// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/tensor"
)

// Graph is an append-only sequence of nodes plus name registries for
// placeholders and variables.
type Graph = graph.Graph

// Tensor is a symbolic node output or a literal value.
type Tensor = graph.Tensor

// Node is one operation in a Graph.
type Node = graph.Node

// Input is a named tensor argument of a node.
type Input = graph.Input

// Activation is applied by Dense after the affine transform.
type Activation = graph.Activation

// Node variants.
type (
	ArithmeticNode              = graph.ArithmeticNode
	UnaryNode                   = graph.UnaryNode
	ArgMaxEqualsNode            = graph.ArgMaxEqualsNode
	ConcatNode                  = graph.ConcatNode
	ConstantNode                = graph.ConstantNode
	Convolution2DNode           = graph.Convolution2DNode
	FusedLinearCombinationNode  = graph.FusedLinearCombinationNode
	LeakyReLUNode               = graph.LeakyReLUNode
	MatMulNode                  = graph.MatMulNode
	MaxPoolNode                 = graph.MaxPoolNode
	MeanSquaredCostNode         = graph.MeanSquaredCostNode
	PlaceholderNode             = graph.PlaceholderNode
	PReLUNode                   = graph.PReLUNode
	ReshapeNode                 = graph.ReshapeNode
	SoftmaxCrossEntropyCostNode = graph.SoftmaxCrossEntropyCostNode
	VariableNode                = graph.VariableNode
)

// AutoPad asks Conv2D and MaxPool to choose the padding that preserves the
// spatial size at stride 1.
const AutoPad = graph.AutoPad

// Construction errors.
var (
	ErrNilInput        = graph.ErrNilInput
	ErrShapeMismatch   = graph.ErrShapeMismatch
	ErrInvalidArgument = graph.ErrInvalidArgument
	ErrNotVariable     = graph.ErrNotVariable
)

// Activations usable with Dense.
var (
	ReLUActivation    = graph.ReLUActivation
	SigmoidActivation = graph.SigmoidActivation
	TanHActivation    = graph.TanHActivation
	EluActivation     = graph.EluActivation
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}

// Literal wraps a concrete value so it can be passed to graph operations.
func Literal(value *tensor.RawTensor) *Tensor {
	return graph.Literal(value)
}

// Assign replaces the stored value of the variable that produced v.
// The new value must have the variable's shape.
func Assign(v *Tensor, value *tensor.RawTensor) error {
	return graph.Assign(v, value)
}

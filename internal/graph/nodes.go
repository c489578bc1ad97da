package graph

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/tensor"
)

// ArithmeticNode is an element-wise binary operation: Add, Subtract,
// Multiply or Divide. Either operand may be a single-element tensor.
type ArithmeticNode struct {
	base
	op     Kind
	T1, T2 *Tensor
}

// Kind returns the operation kind.
func (n *ArithmeticNode) Kind() Kind { return n.op }

// Inputs returns t1 and t2.
func (n *ArithmeticNode) Inputs() []Input {
	return []Input{{"t1", n.T1}, {"t2", n.T2}}
}

// UnaryNode is a single-input operation without parameters: ArgMax, Elu,
// Exp, Log, ReduceSum, ReLU, Sigmoid, Softmax, Square or TanH.
type UnaryNode struct {
	base
	op Kind
	X  *Tensor
}

// Kind returns the operation kind.
func (n *UnaryNode) Kind() Kind { return n.op }

// Inputs returns x.
func (n *UnaryNode) Inputs() []Input {
	return []Input{{"x", n.X}}
}

// ArgMaxEqualsNode tests whether the argmax of two tensors coincide.
type ArgMaxEqualsNode struct {
	base
	X1, X2 *Tensor
}

// Kind returns KindArgMaxEquals.
func (n *ArgMaxEqualsNode) Kind() Kind { return KindArgMaxEquals }

// Inputs returns x1 and x2.
func (n *ArgMaxEqualsNode) Inputs() []Input {
	return []Input{{"x1", n.X1}, {"x2", n.X2}}
}

// ConcatNode joins two tensors of rank Rank along Axis.
// Rank 1 concatenation always uses axis 0 and carries no axis parameter.
type ConcatNode struct {
	base
	Rank   int
	Axis   int
	X1, X2 *Tensor
}

// Kind returns the Concat kind matching the node's rank.
func (n *ConcatNode) Kind() Kind {
	switch n.Rank {
	case 1:
		return KindConcat1D
	case 2:
		return KindConcat2D
	case 3:
		return KindConcat3D
	default:
		return KindConcat4D
	}
}

// Inputs returns x1 and x2.
func (n *ConcatNode) Inputs() []Input {
	return []Input{{"x1", n.X1}, {"x2", n.X2}}
}

// ConstantNode emits a fixed literal value.
type ConstantNode struct {
	base
	Data *Tensor
}

// Kind returns KindConstant.
func (n *ConstantNode) Kind() Kind { return KindConstant }

// Inputs returns nil: the payload is carried as data.
func (n *ConstantNode) Inputs() []Input { return nil }

// Convolution2DNode convolves x [rows,cols,inDepth] with weights
// w [fieldSize,fieldSize,inDepth,outputDepth] and adds bias b [outputDepth].
type Convolution2DNode struct {
	base
	X, W, B     *Tensor
	FieldSize   int
	OutputDepth int
	Stride      int
	ZeroPad     int
}

// Kind returns KindConvolution2D.
func (n *Convolution2DNode) Kind() Kind { return KindConvolution2D }

// Inputs returns x, w and b.
func (n *Convolution2DNode) Inputs() []Input {
	return []Input{{"x", n.X}, {"w", n.W}, {"b", n.B}}
}

// FusedLinearCombinationNode computes c1*t1 + c2*t2 for scalar c1, c2.
type FusedLinearCombinationNode struct {
	base
	T1, T2, C1, C2 *Tensor
}

// Kind returns KindFusedLinearCombination.
func (n *FusedLinearCombinationNode) Kind() Kind { return KindFusedLinearCombination }

// Inputs returns t1, t2, c1 and c2.
func (n *FusedLinearCombinationNode) Inputs() []Input {
	return []Input{{"t1", n.T1}, {"t2", n.T2}, {"c1", n.C1}, {"c2", n.C2}}
}

// LeakyReLUNode applies x for x > 0 and Alpha*x otherwise.
type LeakyReLUNode struct {
	base
	X     *Tensor
	Alpha float64
}

// Kind returns KindLeakyReLU.
func (n *LeakyReLUNode) Kind() Kind { return KindLeakyReLU }

// Inputs returns x.
func (n *LeakyReLUNode) Inputs() []Input {
	return []Input{{"x", n.X}}
}

// MatMulNode multiplies rank-1/rank-2 tensors.
type MatMulNode struct {
	base
	X1, X2 *Tensor
}

// Kind returns KindMatMul.
func (n *MatMulNode) Kind() Kind { return KindMatMul }

// Inputs returns x1 and x2.
func (n *MatMulNode) Inputs() []Input {
	return []Input{{"x1", n.X1}, {"x2", n.X2}}
}

// MaxPoolNode max-pools x [rows,cols,depth] over square windows.
type MaxPoolNode struct {
	base
	X         *Tensor
	FieldSize int
	Stride    int
	ZeroPad   int
}

// Kind returns KindMaxPool.
func (n *MaxPoolNode) Kind() Kind { return KindMaxPool }

// Inputs returns x.
func (n *MaxPoolNode) Inputs() []Input {
	return []Input{{"x", n.X}}
}

// MeanSquaredCostNode computes mean((label - prediction)^2).
type MeanSquaredCostNode struct {
	base
	Label, Prediction *Tensor
}

// Kind returns KindMeanSquaredCost.
func (n *MeanSquaredCostNode) Kind() Kind { return KindMeanSquaredCost }

// Inputs returns label and prediction.
func (n *MeanSquaredCostNode) Inputs() []Input {
	return []Input{{"label", n.Label}, {"prediction", n.Prediction}}
}

// PlaceholderNode is a named input slot fed at evaluation time.
type PlaceholderNode struct {
	base
	Name string
}

// Kind returns KindPlaceholder.
func (n *PlaceholderNode) Kind() Kind { return KindPlaceholder }

// Inputs returns nil.
func (n *PlaceholderNode) Inputs() []Input { return nil }

// PReLUNode applies x for x > 0 and alpha*x otherwise, with a per-element
// alpha tensor shaped like x.
type PReLUNode struct {
	base
	X, Alpha *Tensor
}

// Kind returns KindPReLU.
func (n *PReLUNode) Kind() Kind { return KindPReLU }

// Inputs returns x and alpha.
func (n *PReLUNode) Inputs() []Input {
	return []Input{{"x", n.X}, {"alpha", n.Alpha}}
}

// ReshapeNode gives x a new shape with the same number of elements. The
// target shape is the shape of the node's output.
type ReshapeNode struct {
	base
	X *Tensor
}

// Kind returns KindReshape.
func (n *ReshapeNode) Kind() Kind { return KindReshape }

// Inputs returns x.
func (n *ReshapeNode) Inputs() []Input {
	return []Input{{"x", n.X}}
}

// SoftmaxCrossEntropyCostNode computes the cross entropy between
// softmax(x) and target.
type SoftmaxCrossEntropyCostNode struct {
	base
	X, Target *Tensor
}

// Kind returns KindSoftmaxCrossEntropyCost.
func (n *SoftmaxCrossEntropyCostNode) Kind() Kind { return KindSoftmaxCrossEntropyCost }

// Inputs returns x and target.
func (n *SoftmaxCrossEntropyCostNode) Inputs() []Input {
	return []Input{{"x", n.X}, {"target", n.Target}}
}

// VariableNode is a named, assignable tensor. Data is either a literal
// holding the current value or a symbolic tensor the variable mirrors.
type VariableNode struct {
	base
	Name string
	Data *Tensor
}

// Kind returns KindVariable.
func (n *VariableNode) Kind() Kind { return KindVariable }

// Inputs returns nil: the value is carried as data.
func (n *VariableNode) Inputs() []Input { return nil }

// Assign replaces the variable's literal value. The new value must have the
// variable's shape. Variables that mirror a symbolic tensor cannot be assigned.
func (n *VariableNode) Assign(value *tensor.RawTensor) error {
	if !n.Data.IsLiteral() {
		return fmt.Errorf("variable %q: %w: value is computed from tensor #%d", n.Name, ErrInvalidArgument, n.Data.ID())
	}
	if !value.Shape().Equal(n.output.Shape()) {
		return fmt.Errorf("variable %q: %w: got %v, want %v", n.Name, ErrShapeMismatch, value.Shape(), n.output.Shape())
	}
	n.Data = Literal(value.Clone())
	return nil
}

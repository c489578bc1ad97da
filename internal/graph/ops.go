package graph

import (
	"fmt"

	"github.com/born-ml/graphcodec/internal/backend/cpu"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// AutoPad asks Convolution2D and MaxPool to compute the zero padding that
// preserves spatial size at stride 1.
const AutoPad = -1

// Placeholder registers a named input slot of the given shape.
func (g *Graph) Placeholder(name string, shape tensor.Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("placeholder %q: %w: %w", name, ErrInvalidArgument, err)
	}
	out := g.append(&PlaceholderNode{Name: name}, shape)
	g.placeholders[name] = out
	return out, nil
}

// Variable registers a named variable initialised from data. data is
// usually a literal; a symbolic tensor makes the variable mirror it.
func (g *Graph) Variable(name string, data *Tensor) (*Tensor, error) {
	if err := checkInputs("variable", data); err != nil {
		return nil, err
	}
	out := g.append(&VariableNode{Name: name, Data: data}, data.Shape())
	g.variables[name] = out
	return out, nil
}

// Constant adds a node emitting the literal data.
func (g *Graph) Constant(data *Tensor) (*Tensor, error) {
	if err := checkInputs("constant", data); err != nil {
		return nil, err
	}
	if !data.IsLiteral() {
		return nil, fmt.Errorf("constant: %w: data must be a literal tensor", ErrInvalidArgument)
	}
	return g.append(&ConstantNode{Data: data}, data.Shape()), nil
}

// Add computes t1 + t2.
func (g *Graph) Add(t1, t2 *Tensor) (*Tensor, error) {
	return g.arithmetic(KindAdd, t1, t2)
}

// Subtract computes t1 - t2.
func (g *Graph) Subtract(t1, t2 *Tensor) (*Tensor, error) {
	return g.arithmetic(KindSubtract, t1, t2)
}

// Multiply computes t1 * t2 element-wise.
func (g *Graph) Multiply(t1, t2 *Tensor) (*Tensor, error) {
	return g.arithmetic(KindMultiply, t1, t2)
}

// Divide computes t1 / t2 element-wise.
func (g *Graph) Divide(t1, t2 *Tensor) (*Tensor, error) {
	return g.arithmetic(KindDivide, t1, t2)
}

func (g *Graph) arithmetic(op Kind, t1, t2 *Tensor) (*Tensor, error) {
	if err := checkInputs(op.String(), t1, t2); err != nil {
		return nil, err
	}
	var shape tensor.Shape
	switch {
	case t1.Shape().NumElements() == 1:
		shape = t2.Shape()
	case t2.Shape().NumElements() == 1:
		shape = t1.Shape()
	case t1.Shape().Equal(t2.Shape()):
		shape = t1.Shape()
	default:
		return nil, shapeErr(op.String(), "%v vs %v", t1.Shape(), t2.Shape())
	}
	return g.append(&ArithmeticNode{op: op, T1: t1, T2: t2}, shape), nil
}

// ArgMax returns the flat index of the maximum element of x.
func (g *Graph) ArgMax(x *Tensor) (*Tensor, error) {
	return g.unary(KindArgMax, x, tensor.Shape{})
}

// ArgMaxEquals reports whether x1 and x2 have the same argmax.
func (g *Graph) ArgMaxEquals(x1, x2 *Tensor) (*Tensor, error) {
	if err := checkInputs("ArgMaxEquals", x1, x2); err != nil {
		return nil, err
	}
	if !x1.Shape().Equal(x2.Shape()) {
		return nil, shapeErr("ArgMaxEquals", "%v vs %v", x1.Shape(), x2.Shape())
	}
	return g.append(&ArgMaxEqualsNode{X1: x1, X2: x2}, tensor.Shape{}), nil
}

// Concat1D joins two vectors.
func (g *Graph) Concat1D(x1, x2 *Tensor) (*Tensor, error) {
	return g.concat(1, x1, x2, 0)
}

// Concat2D joins two matrices along axis.
func (g *Graph) Concat2D(x1, x2 *Tensor, axis int) (*Tensor, error) {
	return g.concat(2, x1, x2, axis)
}

// Concat3D joins two rank-3 tensors along axis.
func (g *Graph) Concat3D(x1, x2 *Tensor, axis int) (*Tensor, error) {
	return g.concat(3, x1, x2, axis)
}

// Concat4D joins two rank-4 tensors along axis.
func (g *Graph) Concat4D(x1, x2 *Tensor, axis int) (*Tensor, error) {
	return g.concat(4, x1, x2, axis)
}

func (g *Graph) concat(rank int, x1, x2 *Tensor, axis int) (*Tensor, error) {
	op := fmt.Sprintf("Concat%dD", rank)
	if err := checkInputs(op, x1, x2); err != nil {
		return nil, err
	}
	if len(x1.Shape()) != rank {
		return nil, shapeErr(op, "x1 must be rank %d, got %v", rank, x1.Shape())
	}
	shape, err := cpu.ConcatShape(x1.Shape(), x2.Shape(), axis)
	if err != nil {
		return nil, shapeErr(op, "%v", err)
	}
	return g.append(&ConcatNode{Rank: rank, Axis: axis, X1: x1, X2: x2}, shape), nil
}

// Conv2D convolves x [rows,cols,inDepth] with w [fieldSize,fieldSize,inDepth,outputDepth]
// and adds b [outputDepth]. Pass AutoPad as zeroPad to use the default padding.
func (g *Graph) Conv2D(x, w, b *Tensor, fieldSize, outputDepth, stride, zeroPad int) (*Tensor, error) {
	const op = "Convolution2D"
	if err := checkInputs(op, x, w, b); err != nil {
		return nil, err
	}
	xs, ws, bs := x.Shape(), w.Shape(), b.Shape()
	switch {
	case len(xs) != 3:
		return nil, shapeErr(op, "x must be rank 3, got %v", xs)
	case len(ws) != 4:
		return nil, shapeErr(op, "w must be rank 4, got %v", ws)
	case len(bs) != 1:
		return nil, shapeErr(op, "b must be rank 1, got %v", bs)
	case xs[2] != ws[2]:
		return nil, shapeErr(op, "x depth %d does not match w depth %d", xs[2], ws[2])
	case ws[0] != fieldSize || ws[1] != fieldSize || ws[3] != outputDepth:
		return nil, shapeErr(op, "w %v does not match fieldSize=%d outputDepth=%d", ws, fieldSize, outputDepth)
	case bs[0] != outputDepth:
		return nil, shapeErr(op, "b %v does not match outputDepth=%d", bs, outputDepth)
	}
	if zeroPad == AutoPad {
		zeroPad = cpu.DefaultPad(xs, fieldSize, stride)
	}
	shape, err := cpu.ConvOutputShape(xs, fieldSize, outputDepth, stride, zeroPad)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}
	n := &Convolution2DNode{
		X: x, W: w, B: b,
		FieldSize:   fieldSize,
		OutputDepth: outputDepth,
		Stride:      stride,
		ZeroPad:     zeroPad,
	}
	return g.append(n, shape), nil
}

// Elu applies the exponential linear unit.
func (g *Graph) Elu(x *Tensor) (*Tensor, error) {
	return g.unary(KindElu, x, nil)
}

// Exp computes e^x.
func (g *Graph) Exp(x *Tensor) (*Tensor, error) {
	return g.unary(KindExp, x, nil)
}

// FusedLinearCombination computes c1*t1 + c2*t2 where c1 and c2 hold a
// single element.
func (g *Graph) FusedLinearCombination(t1, t2, c1, c2 *Tensor) (*Tensor, error) {
	const op = "FusedLinearCombination"
	if err := checkInputs(op, t1, t2, c1, c2); err != nil {
		return nil, err
	}
	if !t1.Shape().Equal(t2.Shape()) {
		return nil, shapeErr(op, "t1 %v vs t2 %v", t1.Shape(), t2.Shape())
	}
	if c1.Shape().NumElements() != 1 || c2.Shape().NumElements() != 1 {
		return nil, shapeErr(op, "c1 %v and c2 %v must hold one element", c1.Shape(), c2.Shape())
	}
	return g.append(&FusedLinearCombinationNode{T1: t1, T2: t2, C1: c1, C2: c2}, t1.Shape()), nil
}

// LeakyReLU applies x for x > 0 and alpha*x otherwise.
func (g *Graph) LeakyReLU(x *Tensor, alpha float64) (*Tensor, error) {
	if err := checkInputs("LeakyReLU", x); err != nil {
		return nil, err
	}
	return g.append(&LeakyReLUNode{X: x, Alpha: alpha}, x.Shape()), nil
}

// Log computes the natural logarithm.
func (g *Graph) Log(x *Tensor) (*Tensor, error) {
	return g.unary(KindLog, x, nil)
}

// MatMul multiplies rank-1/rank-2 tensors.
func (g *Graph) MatMul(x1, x2 *Tensor) (*Tensor, error) {
	if err := checkInputs("MatMul", x1, x2); err != nil {
		return nil, err
	}
	shape, err := cpu.MatMulShape(x1.Shape(), x2.Shape())
	if err != nil {
		return nil, shapeErr("MatMul", "%v", err)
	}
	return g.append(&MatMulNode{X1: x1, X2: x2}, shape), nil
}

// MaxPool max-pools x [rows,cols,depth]. Pass AutoPad as zeroPad to use the
// default padding.
func (g *Graph) MaxPool(x *Tensor, fieldSize, stride, zeroPad int) (*Tensor, error) {
	const op = "MaxPool"
	if err := checkInputs(op, x); err != nil {
		return nil, err
	}
	xs := x.Shape()
	if len(xs) != 3 {
		return nil, shapeErr(op, "x must be rank 3, got %v", xs)
	}
	if zeroPad == AutoPad {
		zeroPad = cpu.DefaultPad(xs, fieldSize, stride)
	}
	shape, err := cpu.ConvOutputShape(xs, fieldSize, xs[2], stride, zeroPad)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}
	n := &MaxPoolNode{X: x, FieldSize: fieldSize, Stride: stride, ZeroPad: zeroPad}
	return g.append(n, shape), nil
}

// MeanSquaredCost computes mean((label - prediction)^2).
func (g *Graph) MeanSquaredCost(label, prediction *Tensor) (*Tensor, error) {
	if err := checkInputs("MeanSquaredCost", label, prediction); err != nil {
		return nil, err
	}
	if !label.Shape().Equal(prediction.Shape()) {
		return nil, shapeErr("MeanSquaredCost", "label %v vs prediction %v", label.Shape(), prediction.Shape())
	}
	return g.append(&MeanSquaredCostNode{Label: label, Prediction: prediction}, tensor.Shape{}), nil
}

// PReLU applies x for x > 0 and alpha*x otherwise, element by element.
func (g *Graph) PReLU(x, alpha *Tensor) (*Tensor, error) {
	if err := checkInputs("PReLU", x, alpha); err != nil {
		return nil, err
	}
	if !x.Shape().Equal(alpha.Shape()) {
		return nil, shapeErr("PReLU", "x %v vs alpha %v", x.Shape(), alpha.Shape())
	}
	return g.append(&PReLUNode{X: x, Alpha: alpha}, x.Shape()), nil
}

// ReduceSum sums all elements of x into a scalar.
func (g *Graph) ReduceSum(x *Tensor) (*Tensor, error) {
	return g.unary(KindReduceSum, x, tensor.Shape{})
}

// ReLU computes max(0, x).
func (g *Graph) ReLU(x *Tensor) (*Tensor, error) {
	return g.unary(KindReLU, x, nil)
}

// Reshape gives x a new shape holding the same number of elements.
func (g *Graph) Reshape(x *Tensor, shape tensor.Shape) (*Tensor, error) {
	if err := checkInputs("Reshape", x); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("Reshape: %w: %w", ErrInvalidArgument, err)
	}
	if shape.NumElements() != x.Shape().NumElements() {
		return nil, shapeErr("Reshape", "cannot reshape %v to %v", x.Shape(), shape)
	}
	return g.append(&ReshapeNode{X: x}, shape), nil
}

// Sigmoid computes 1 / (1 + e^-x).
func (g *Graph) Sigmoid(x *Tensor) (*Tensor, error) {
	return g.unary(KindSigmoid, x, nil)
}

// Softmax normalises a vector into a probability distribution.
func (g *Graph) Softmax(x *Tensor) (*Tensor, error) {
	if x != nil && len(x.Shape()) != 1 {
		return nil, shapeErr("Softmax", "x must be rank 1, got %v", x.Shape())
	}
	return g.unary(KindSoftmax, x, nil)
}

// SoftmaxCrossEntropyCost computes the cross entropy between softmax(x) and target.
func (g *Graph) SoftmaxCrossEntropyCost(x, target *Tensor) (*Tensor, error) {
	const op = "SoftmaxCrossEntropyCost"
	if err := checkInputs(op, x, target); err != nil {
		return nil, err
	}
	if !x.Shape().Equal(target.Shape()) {
		return nil, shapeErr(op, "x %v vs target %v", x.Shape(), target.Shape())
	}
	return g.append(&SoftmaxCrossEntropyCostNode{X: x, Target: target}, tensor.Shape{}), nil
}

// Square computes x*x.
func (g *Graph) Square(x *Tensor) (*Tensor, error) {
	return g.unary(KindSquare, x, nil)
}

// TanH computes the hyperbolic tangent.
func (g *Graph) TanH(x *Tensor) (*Tensor, error) {
	return g.unary(KindTanH, x, nil)
}

// unary adds a parameterless single-input node. A nil shape keeps x's shape.
func (g *Graph) unary(op Kind, x *Tensor, shape tensor.Shape) (*Tensor, error) {
	if err := checkInputs(op.String(), x); err != nil {
		return nil, err
	}
	if shape == nil {
		shape = x.Shape()
	}
	return g.append(&UnaryNode{op: op, X: x}, shape), nil
}

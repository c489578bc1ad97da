// Package eval runs forward evaluation of graph tensors on the CPU backend.
//
// Evaluation follows tensor references to their producing nodes, so a tensor
// whose inputs live in another graph (cross-graph variable sharing) is
// evaluated through both graphs transparently.
package eval

import (
	"errors"
	"fmt"

	"github.com/born-ml/graphcodec/internal/backend/cpu"
	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// Evaluation errors.
var (
	ErrMissingFeed = errors.New("placeholder not fed")
	ErrFeedShape   = errors.New("feed shape does not match placeholder")
	ErrKernel      = errors.New("kernel failure")
)

// crossEntropyEpsilon keeps log() finite for zero probabilities.
const crossEntropyEpsilon = 1e-5

// Feeds maps placeholder tensors to the values they take for one evaluation.
type Feeds map[*graph.Tensor]*tensor.RawTensor

// Session evaluates tensors. Results are memoised per Eval call only, so
// variable assignments between calls are always observed.
type Session struct {
	backend *cpu.CPUBackend
}

// NewSession creates a session backed by the CPU kernels.
func NewSession() *Session {
	return &Session{backend: cpu.New()}
}

// Eval computes the value of t given the placeholder feeds.
func (s *Session) Eval(t *graph.Tensor, feeds Feeds) (result *tensor.RawTensor, err error) {
	if t == nil {
		return nil, graph.ErrNilInput
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrKernel, r)
		}
	}()

	run := &evaluation{
		backend: s.backend,
		feeds:   feeds,
		memo:    make(map[*graph.Tensor]*tensor.RawTensor),
	}
	return run.value(t)
}

// EvalScalar evaluates a single-element tensor and returns its value.
func (s *Session) EvalScalar(t *graph.Tensor, feeds Feeds) (float64, error) {
	raw, err := s.Eval(t, feeds)
	if err != nil {
		return 0, err
	}
	if raw.NumElements() != 1 {
		return 0, fmt.Errorf("tensor %s has %d elements, want 1", t, raw.NumElements())
	}
	return raw.Item(), nil
}

type evaluation struct {
	backend *cpu.CPUBackend
	feeds   Feeds
	memo    map[*graph.Tensor]*tensor.RawTensor
}

func (e *evaluation) value(t *graph.Tensor) (*tensor.RawTensor, error) {
	if t.IsLiteral() {
		return t.Value(), nil
	}
	if v, ok := e.memo[t]; ok {
		return v, nil
	}
	v, err := e.compute(t.Node())
	if err != nil {
		return nil, err
	}
	e.memo[t] = v
	return v, nil
}

func (e *evaluation) inputs(n graph.Node) ([]*tensor.RawTensor, error) {
	in := n.Inputs()
	values := make([]*tensor.RawTensor, len(in))
	for i, input := range in {
		v, err := e.value(input.Tensor)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

//nolint:gocyclo,cyclop // One case per node kind.
func (e *evaluation) compute(n graph.Node) (*tensor.RawTensor, error) {
	switch node := n.(type) {
	case *graph.PlaceholderNode:
		feed, ok := e.feeds[node.Output()]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFeed, node.Name)
		}
		if !feed.Shape().Equal(node.Output().Shape()) {
			return nil, fmt.Errorf("%w: %q: got %v, want %v", ErrFeedShape, node.Name, feed.Shape(), node.Output().Shape())
		}
		return feed, nil
	case *graph.VariableNode:
		return e.value(node.Data)
	case *graph.ConstantNode:
		return node.Data.Value(), nil
	}

	in, err := e.inputs(n)
	if err != nil {
		return nil, err
	}
	b := e.backend

	switch node := n.(type) {
	case *graph.ArithmeticNode:
		switch node.Kind() {
		case graph.KindAdd:
			return b.Add(in[0], in[1]), nil
		case graph.KindSubtract:
			return b.Sub(in[0], in[1]), nil
		case graph.KindMultiply:
			return b.Mul(in[0], in[1]), nil
		default:
			return b.Div(in[0], in[1]), nil
		}
	case *graph.UnaryNode:
		return e.unary(node.Kind(), in[0])
	case *graph.ArgMaxEqualsNode:
		return b.Equal(b.Argmax(in[0]), b.Argmax(in[1])), nil
	case *graph.ConcatNode:
		return b.Concat(in[0], in[1], node.Axis), nil
	case *graph.Convolution2DNode:
		return b.Conv2D(in[0], in[1], in[2], node.Stride, node.ZeroPad), nil
	case *graph.FusedLinearCombinationNode:
		return b.Add(b.Mul(in[2], in[0]), b.Mul(in[3], in[1])), nil
	case *graph.LeakyReLUNode:
		return b.LeakyReLU(in[0], float32(node.Alpha)), nil
	case *graph.MatMulNode:
		return b.MatMul(in[0], in[1]), nil
	case *graph.MaxPoolNode:
		return b.MaxPool2D(in[0], node.FieldSize, node.Stride, node.ZeroPad), nil
	case *graph.MeanSquaredCostNode:
		diff := b.Sub(in[0], in[1])
		return b.MulScalar(b.Sum(b.Square(diff)), 1/float32(diff.NumElements())), nil
	case *graph.PReLUNode:
		return b.PReLU(in[0], in[1]), nil
	case *graph.ReshapeNode:
		return b.Reshape(in[0], node.Output().Shape()), nil
	case *graph.SoftmaxCrossEntropyCostNode:
		probs := b.Softmax(in[0])
		logs := b.Log(b.Add(probs, tensor.Scalar(crossEntropyEpsilon)))
		return b.MulScalar(b.Sum(b.Mul(in[1], logs)), -1), nil
	default:
		return nil, fmt.Errorf("cannot evaluate %s", n.Kind())
	}
}

func (e *evaluation) unary(kind graph.Kind, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	b := e.backend
	switch kind {
	case graph.KindArgMax:
		return b.Argmax(x), nil
	case graph.KindElu:
		return b.Elu(x), nil
	case graph.KindExp:
		return b.Exp(x), nil
	case graph.KindLog:
		return b.Log(x), nil
	case graph.KindReduceSum:
		return b.Sum(x), nil
	case graph.KindReLU:
		return b.ReLU(x), nil
	case graph.KindSigmoid:
		return b.Sigmoid(x), nil
	case graph.KindSoftmax:
		return b.Softmax(x), nil
	case graph.KindSquare:
		return b.Square(x), nil
	case graph.KindTanH:
		return b.Tanh(x), nil
	default:
		return nil, fmt.Errorf("cannot evaluate unary %s", kind)
	}
}

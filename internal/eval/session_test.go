package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

func vec(t *testing.T, data ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat32(tensor.Shape{len(data)}, data)
	require.NoError(t, err)
	return raw
}

func TestEvalArithmetic(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{3})
	require.NoError(t, err)
	two := graph.Literal(tensor.Scalar(2))

	y, err := g.Multiply(x, two)
	require.NoError(t, err)
	y, err = g.Subtract(y, graph.Literal(vec(t, 1, 1, 1)))
	require.NoError(t, err)
	sum, err := g.ReduceSum(y)
	require.NoError(t, err)

	s := NewSession()
	feeds := Feeds{x: vec(t, 1, 2, 3)}

	got, err := s.Eval(y, feeds)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 5}, got.AsFloat32())

	total, err := s.EvalScalar(sum, feeds)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, total, 1e-6)
}

func TestEvalFeedErrors(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{3})
	require.NoError(t, err)
	y, err := g.Exp(x)
	require.NoError(t, err)

	s := NewSession()
	_, err = s.Eval(y, nil)
	assert.ErrorIs(t, err, ErrMissingFeed)

	_, err = s.Eval(y, Feeds{x: vec(t, 1, 2)})
	assert.ErrorIs(t, err, ErrFeedShape)
}

func TestEvalCosts(t *testing.T) {
	g := graph.New()
	label := graph.Literal(vec(t, 1, 0, 0))
	pred, err := g.Variable("pred", graph.Literal(vec(t, 0.5, 0.5, 0)))
	require.NoError(t, err)

	mse, err := g.MeanSquaredCost(label, pred)
	require.NoError(t, err)
	ce, err := g.SoftmaxCrossEntropyCost(pred, label)
	require.NoError(t, err)
	hit, err := g.ArgMaxEquals(label, pred)
	require.NoError(t, err)

	s := NewSession()
	got, err := s.EvalScalar(mse, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5/3, got, 1e-6)

	e := math.Exp(0.5)
	p0 := e / (e + e + 1)
	got, err = s.EvalScalar(ce, nil)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(p0+1e-5), got, 1e-5)

	raw, err := s.Eval(hit, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Bool, raw.DType())
	assert.Equal(t, []uint8{1}, raw.AsBool())
}

func TestEvalCrossGraph(t *testing.T) {
	g1 := graph.New()
	v, err := g1.Variable("v", graph.Literal(tensor.Scalar(2)))
	require.NoError(t, err)

	g2 := graph.New()
	sq, err := g2.Multiply(v, v)
	require.NoError(t, err)
	result, err := g2.Variable("result", sq)
	require.NoError(t, err)

	s := NewSession()
	got, err := s.EvalScalar(result, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 0)

	require.NoError(t, graph.Assign(v, tensor.Scalar(3)))
	got, err = s.EvalScalar(result, nil)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, got, 0)
}

func TestEvalConvPool(t *testing.T) {
	g := graph.New()
	img := make([]float32, 4*4)
	for i := range img {
		img[i] = float32(i)
	}
	x, err := tensor.FromFloat32(tensor.Shape{4, 4, 1}, img)
	require.NoError(t, err)
	w, err := tensor.FromFloat32(tensor.Shape{1, 1, 1, 1}, []float32{2})
	require.NoError(t, err)

	conv, err := g.Conv2D(graph.Literal(x), graph.Literal(w), graph.Literal(vec(t, 1)), 1, 1, 1, 0)
	require.NoError(t, err)
	pool, err := g.MaxPool(conv, 2, 2, 0)
	require.NoError(t, err)

	got, err := NewSession().Eval(pool, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 1}, got.Shape())
	// Max of each 2x2 block is its bottom-right element, doubled plus bias.
	assert.Equal(t, []float32{11, 15, 27, 31}, got.AsFloat32())
}

func TestEvalDense(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{2})
	require.NoError(t, err)
	y, err := g.Dense("fc", x, 3, nil, true)
	require.NoError(t, err)

	w, ok := g.VariableByName("fc-w")
	require.True(t, ok)
	weights, err := tensor.FromFloat32(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.NoError(t, graph.Assign(w, weights))

	b, ok := g.VariableByName("fc-b")
	require.True(t, ok)
	require.NoError(t, graph.Assign(b, vec(t, 1, 1, 1)))

	got, err := NewSession().Eval(y, Feeds{x: vec(t, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 8, 10}, got.AsFloat32())
}

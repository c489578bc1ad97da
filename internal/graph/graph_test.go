package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphcodec/internal/tensor"
)

func lit(t *testing.T, shape tensor.Shape, data ...float32) *Tensor {
	t.Helper()
	raw, err := tensor.FromFloat32(shape, data)
	require.NoError(t, err)
	return Literal(raw)
}

func TestKindNames(t *testing.T) {
	assert.Len(t, AllKinds(), 31)
	for _, k := range AllKinds() {
		got, ok := ParseKind(k.TypeName())
		require.True(t, ok, k.TypeName())
		assert.Equal(t, k, got)

		got, ok = ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	assert.Equal(t, "Convolution2DNode", KindConvolution2D.TypeName())
	_, ok := ParseKind("UnknownNode")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", Kind(-1).String())
}

func TestIDsIncrease(t *testing.T) {
	g := New()
	a, err := g.Placeholder("a", tensor.Shape{2})
	require.NoError(t, err)
	b, err := g.Square(a)
	require.NoError(t, err)

	assert.Positive(t, a.ID())
	assert.Greater(t, b.ID(), a.ID())
	assert.Same(t, b, g.Nodes()[1].Output())

	l := lit(t, tensor.Shape{1}, 1)
	assert.True(t, l.IsLiteral())
	assert.Zero(t, l.ID())
	assert.Nil(t, l.Node())
}

func TestFailedConstructionAddsNothing(t *testing.T) {
	g := New()
	a, err := g.Placeholder("a", tensor.Shape{2})
	require.NoError(t, err)

	_, err = g.Add(a, lit(t, tensor.Shape{3}, 1, 2, 3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = g.Add(a, nil)
	assert.ErrorIs(t, err, ErrNilInput)
	assert.Equal(t, 1, g.Len())
}

func TestShapeInference(t *testing.T) {
	g := New()
	vec, err := g.Placeholder("vec", tensor.Shape{4})
	require.NoError(t, err)
	mat, err := g.Placeholder("mat", tensor.Shape{3, 4})
	require.NoError(t, err)
	img, err := g.Placeholder("img", tensor.Shape{5, 5, 2})
	require.NoError(t, err)

	tests := []struct {
		name  string
		build func() (*Tensor, error)
		want  tensor.Shape
	}{
		{"broadcast scalar", func() (*Tensor, error) { return g.Multiply(lit(t, tensor.Shape{}, 2), vec) }, tensor.Shape{4}},
		{"matvec", func() (*Tensor, error) { return g.MatMul(mat, vec) }, tensor.Shape{3}},
		{"vecvec", func() (*Tensor, error) { return g.MatMul(vec, vec) }, tensor.Shape{1}},
		{"argmax", func() (*Tensor, error) { return g.ArgMax(vec) }, tensor.Shape{}},
		{"reduce sum", func() (*Tensor, error) { return g.ReduceSum(mat) }, tensor.Shape{}},
		{"concat1d", func() (*Tensor, error) { return g.Concat1D(vec, vec) }, tensor.Shape{8}},
		{"concat2d", func() (*Tensor, error) { return g.Concat2D(mat, mat, 1) }, tensor.Shape{3, 8}},
		{"reshape", func() (*Tensor, error) { return g.Reshape(mat, tensor.Shape{2, 6}) }, tensor.Shape{2, 6}},
		{"maxpool", func() (*Tensor, error) { return g.MaxPool(img, 2, 1, 0) }, tensor.Shape{4, 4, 2}},
		{"maxpool autopad", func() (*Tensor, error) { return g.MaxPool(img, 3, 1, AutoPad) }, tensor.Shape{5, 5, 2}},
		{"mse", func() (*Tensor, error) { return g.MeanSquaredCost(vec, vec) }, tensor.Shape{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Shape())
		})
	}
}

func TestShapeErrors(t *testing.T) {
	g := New()
	vec, err := g.Placeholder("vec", tensor.Shape{4})
	require.NoError(t, err)
	mat, err := g.Placeholder("mat", tensor.Shape{3, 4})
	require.NoError(t, err)

	tests := []struct {
		name  string
		build func() (*Tensor, error)
	}{
		{"matmul inner", func() (*Tensor, error) { return g.MatMul(vec, mat) }},
		{"concat rank", func() (*Tensor, error) { return g.Concat2D(vec, vec, 0) }},
		{"reshape size", func() (*Tensor, error) { return g.Reshape(vec, tensor.Shape{3}) }},
		{"softmax rank", func() (*Tensor, error) { return g.Softmax(mat) }},
		{"prelu alpha", func() (*Tensor, error) { return g.PReLU(vec, lit(t, tensor.Shape{1}, 0.1)) }},
		{"flc coefficient", func() (*Tensor, error) { return g.FusedLinearCombination(vec, vec, vec, vec) }},
		{"conv rank", func() (*Tensor, error) { return g.Conv2D(vec, vec, vec, 1, 1, 1, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestConv2DShape(t *testing.T) {
	g := New()
	x, err := g.Placeholder("x", tensor.Shape{8, 8, 3})
	require.NoError(t, err)
	w, err := g.Variable("w", Literal(mustRaw(t, tensor.Shape{5, 5, 3, 4})))
	require.NoError(t, err)
	b, err := g.Variable("b", Literal(mustRaw(t, tensor.Shape{4})))
	require.NoError(t, err)

	out, err := g.Conv2D(x, w, b, 5, 4, 1, AutoPad)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{8, 8, 4}, out.Shape())

	conv := out.Node().(*Convolution2DNode)
	assert.Equal(t, 2, conv.ZeroPad)

	out, err = g.Conv2D(x, w, b, 5, 4, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 4}, out.Shape())
}

func TestRegistries(t *testing.T) {
	g := New()
	x, err := g.Placeholder("x", tensor.Shape{2})
	require.NoError(t, err)
	v, err := g.Variable("v", lit(t, tensor.Shape{2}, 1, 2))
	require.NoError(t, err)

	got, ok := g.PlaceholderByName("x")
	require.True(t, ok)
	assert.Same(t, x, got)
	got, ok = g.VariableByName("v")
	require.True(t, ok)
	assert.Same(t, v, got)

	_, err = g.Constant(x)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAssign(t *testing.T) {
	g := New()
	v, err := g.Variable("v", lit(t, tensor.Shape{}, 2))
	require.NoError(t, err)

	require.NoError(t, Assign(v, tensor.Scalar(3)))
	vn := v.Node().(*VariableNode)
	assert.InDelta(t, 3.0, vn.Data.Value().Item(), 0)

	err = Assign(v, mustRaw(t, tensor.Shape{2}))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	sq, err := g.Square(v)
	require.NoError(t, err)
	err = Assign(sq, tensor.Scalar(1))
	assert.True(t, errors.Is(err, ErrNotVariable))

	mirror, err := g.Variable("mirror", sq)
	require.NoError(t, err)
	assert.ErrorIs(t, Assign(mirror, tensor.Scalar(1)), ErrInvalidArgument)
}

func TestDense(t *testing.T) {
	g := New()
	x, err := g.Placeholder("x", tensor.Shape{3})
	require.NoError(t, err)

	y, err := g.Dense("fc1", x, 5, ReLUActivation, true)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{5}, y.Shape())
	assert.Equal(t, KindReLU, y.Node().Kind())

	w, ok := g.VariableByName("fc1-w")
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{3, 5}, w.Shape())
	_, ok = g.VariableByName("fc1-b")
	assert.True(t, ok)

	y, err = g.Dense("fc2", y, 2, nil, false)
	require.NoError(t, err)
	assert.Equal(t, KindMatMul, y.Node().Kind())
	_, ok = g.VariableByName("fc2-b")
	assert.False(t, ok)
}

func mustRaw(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	require.NoError(t, err)
	return raw
}

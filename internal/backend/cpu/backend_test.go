package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/graphcodec/internal/tensor"
)

func mustFloat32(t *testing.T, shape tensor.Shape, data ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat32(shape, data)
	if err != nil {
		t.Fatalf("FromFloat32(%v): %v", shape, err)
	}
	return raw
}

func assertValues(t *testing.T, got *tensor.RawTensor, shape tensor.Shape, want ...float32) {
	t.Helper()
	if !got.Shape().Equal(shape) {
		t.Fatalf("shape = %v, want %v", got.Shape(), shape)
	}
	data := got.Float32s()
	for i, w := range want {
		if math.Abs(float64(data[i]-w)) > 1e-5 {
			t.Errorf("[%d] = %v, want %v", i, data[i], w)
		}
	}
}

func TestBackendName(t *testing.T) {
	if got := New().Name(); got != "CPU" {
		t.Errorf("Name() = %q, want CPU", got)
	}
}

func TestArithmetic(t *testing.T) {
	backend := New()
	a := mustFloat32(t, tensor.Shape{3}, 1, 2, 3)
	b := mustFloat32(t, tensor.Shape{3}, 4, 5, 6)
	s := tensor.Scalar(2)

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float32
	}{
		{"add", backend.Add(a, b), []float32{5, 7, 9}},
		{"sub", backend.Sub(b, a), []float32{3, 3, 3}},
		{"mul", backend.Mul(a, b), []float32{4, 10, 18}},
		{"div", backend.Div(b, a), []float32{4, 2.5, 2}},
		{"scalar left", backend.Sub(s, a), []float32{1, 0, -1}},
		{"scalar right", backend.Div(a, s), []float32{0.5, 1, 1.5}},
		{"mul scalar", backend.MulScalar(a, -1), []float32{-1, -2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, tt.got, tensor.Shape{3}, tt.want...)
		})
	}
}

func TestArithmeticShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add with incompatible shapes should panic")
		}
	}()
	New().Add(mustFloat32(t, tensor.Shape{2}, 1, 2), mustFloat32(t, tensor.Shape{3}, 1, 2, 3))
}

func TestArithmeticWidensIntegers(t *testing.T) {
	i, _ := tensor.FromInt32(tensor.Shape{2}, []int32{3, 4})
	got := New().Add(i, tensor.Scalar(0.5))
	if got.DType() != tensor.Float32 {
		t.Errorf("DType = %v, want float32", got.DType())
	}
	assertValues(t, got, tensor.Shape{2}, 3.5, 4.5)
}

func TestActivations(t *testing.T) {
	backend := New()
	x := mustFloat32(t, tensor.Shape{3}, -1, 0, 2)
	e := float32(math.E)

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float32
	}{
		{"exp", backend.Exp(x), []float32{1 / e, 1, e * e}},
		{"square", backend.Square(x), []float32{1, 0, 4}},
		{"relu", backend.ReLU(x), []float32{0, 0, 2}},
		{"elu", backend.Elu(x), []float32{1/e - 1, 0, 2}},
		{"leaky relu", backend.LeakyReLU(x, 0.1), []float32{-0.1, 0, 2}},
		{"prelu", backend.PReLU(x, mustFloat32(t, tensor.Shape{3}, 0.5, 0.5, 0.5)), []float32{-0.5, 0, 2}},
		{"sigmoid", backend.Sigmoid(x), []float32{0.26894142, 0.5, 0.8807971}},
		{"tanh", backend.Tanh(x), []float32{-0.7615942, 0, 0.9640276}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, tt.got, tensor.Shape{3}, tt.want...)
		})
	}

	assertValues(t, backend.Log(mustFloat32(t, tensor.Shape{2}, 1, e)), tensor.Shape{2}, 0, 1)
}

func TestSoftmax(t *testing.T) {
	got := New().Softmax(mustFloat32(t, tensor.Shape{3}, 1, 2, 3))

	// Large inputs must not overflow.
	big := New().Softmax(mustFloat32(t, tensor.Shape{2}, 1000, 1000))
	assertValues(t, big, tensor.Shape{2}, 0.5, 0.5)

	var sum float32
	for _, v := range got.AsFloat32() {
		sum += v
	}
	if math.Abs(float64(sum-1)) > 1e-6 {
		t.Errorf("softmax sum = %v, want 1", sum)
	}
	assertValues(t, got, tensor.Shape{3}, 0.09003057, 0.24472847, 0.66524096)
}

func TestReductions(t *testing.T) {
	backend := New()
	x := mustFloat32(t, tensor.Shape{2, 2}, 1, 7, 3, 7)

	sum := backend.Sum(x)
	assertValues(t, sum, tensor.Shape{}, 18)

	arg := backend.Argmax(x)
	if arg.DType() != tensor.Int32 || arg.Item() != 1 {
		t.Errorf("Argmax = %v %v, want int32 1 (first maximum)", arg.DType(), arg.Item())
	}

	eq := backend.Equal(x, mustFloat32(t, tensor.Shape{2, 2}, 1, 0, 3, 0))
	if eq.DType() != tensor.Bool {
		t.Fatalf("Equal dtype = %v, want bool", eq.DType())
	}
	assertValues(t, eq, tensor.Shape{2, 2}, 1, 0, 1, 0)
}

func TestMatMul(t *testing.T) {
	backend := New()
	a := mustFloat32(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	b := mustFloat32(t, tensor.Shape{3, 2}, 7, 8, 9, 10, 11, 12)
	v := mustFloat32(t, tensor.Shape{3}, 1, 0, -1)

	assertValues(t, backend.MatMul(a, b), tensor.Shape{2, 2}, 58, 64, 139, 154)
	assertValues(t, backend.MatMul(a, v), tensor.Shape{2}, -2, -2)
	assertValues(t, backend.MatMul(v, b), tensor.Shape{2}, -4, -4)
	assertValues(t, backend.MatMul(v, v), tensor.Shape{1}, 2)
}

func TestMatMulShape(t *testing.T) {
	tests := []struct {
		a, b    tensor.Shape
		want    tensor.Shape
		wantErr bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{3, 4}, tensor.Shape{2, 4}, false},
		{tensor.Shape{3}, tensor.Shape{3, 4}, tensor.Shape{4}, false},
		{tensor.Shape{2, 3}, tensor.Shape{3}, tensor.Shape{2}, false},
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, nil, true},
		{tensor.Shape{}, tensor.Shape{3}, nil, true},
		{tensor.Shape{1, 2, 3}, tensor.Shape{3}, nil, true},
	}

	for _, tt := range tests {
		got, err := MatMulShape(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("MatMulShape(%v, %v) should fail", tt.a, tt.b)
			}
			continue
		}
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("MatMulShape(%v, %v) = %v, %v; want %v", tt.a, tt.b, got, err, tt.want)
		}
	}
}

func TestConcat(t *testing.T) {
	backend := New()
	a := mustFloat32(t, tensor.Shape{2, 2}, 1, 2, 3, 4)
	b := mustFloat32(t, tensor.Shape{2, 1}, 5, 6)

	assertValues(t, backend.Concat(a, b, 1), tensor.Shape{2, 3}, 1, 2, 5, 3, 4, 6)
	assertValues(t, backend.Concat(a, a, 0), tensor.Shape{4, 2}, 1, 2, 3, 4, 1, 2, 3, 4)

	i, _ := tensor.FromInt32(tensor.Shape{1}, []int32{9})
	mixed := backend.Concat(mustFloat32(t, tensor.Shape{1}, 1.5), i, 0)
	if mixed.DType() != tensor.Float32 {
		t.Errorf("mixed concat dtype = %v, want float32", mixed.DType())
	}
	assertValues(t, mixed, tensor.Shape{2}, 1.5, 9)

	same := backend.Concat(i, i, 0)
	if same.DType() != tensor.Int32 {
		t.Errorf("int32 concat dtype = %v, want int32", same.DType())
	}

	if _, err := ConcatShape(tensor.Shape{2, 2}, tensor.Shape{3, 1}, 1); err == nil {
		t.Error("ConcatShape with differing non-axis dimensions should fail")
	}
	if _, err := ConcatShape(tensor.Shape{2}, tensor.Shape{2}, 1); err == nil {
		t.Error("ConcatShape with an out of range axis should fail")
	}
}

func TestReshapeAndCast(t *testing.T) {
	backend := New()
	x := mustFloat32(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	r := backend.Reshape(x, tensor.Shape{3, 2})
	assertValues(t, r, tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)
	r.AsFloat32()[0] = 100
	if x.AsFloat32()[0] != 1 {
		t.Error("Reshape should copy its input")
	}

	c := backend.Cast(mustFloat32(t, tensor.Shape{2}, 1.9, -1.9), tensor.Int32)
	if got := c.AsInt32(); got[0] != 1 || got[1] != -1 {
		t.Errorf("Cast to int32 = %v, want [1 -1]", got)
	}
}

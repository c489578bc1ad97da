package serialization

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateTensorOffsets verifies overlap and bounds detection.
func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantType string
	}{
		{
			name: "exact boundary (no overlap)",
			tensors: []TensorMeta{
				{Name: "tensor1", Offset: 0, Size: 100},
				{Name: "tensor2", Offset: 100, Size: 100},
			},
			dataSize: 200,
		},
		{
			name: "partial overlap at boundary",
			tensors: []TensorMeta{
				{Name: "tensor1", Offset: 0, Size: 100},
				{Name: "tensor2", Offset: 99, Size: 100},
			},
			dataSize: 200,
			wantType: "offset_overlap",
		},
		{
			name: "tensor extends beyond data",
			tensors: []TensorMeta{
				{Name: "tensor1", Offset: 0, Size: 100},
				{Name: "tensor2", Offset: 100, Size: 200},
			},
			dataSize: 250,
			wantType: "out_of_bounds",
		},
		{
			name: "negative offset",
			tensors: []TensorMeta{
				{Name: "tensor1", Offset: -1, Size: 10},
			},
			dataSize: 100,
			wantType: "negative_offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if tt.wantType == "" {
				if err != nil {
					t.Errorf("ValidateTensorOffsets() unexpected error = %v", err)
				}
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T (%v)", err, err)
			}
			if validationErr.Type != tt.wantType {
				t.Errorf("Expected %s error, got %s", tt.wantType, validationErr.Type)
			}
		})
	}
}

// TestValidateTensorName rejects traversal patterns, null bytes and huge names.
func TestValidateTensorName(t *testing.T) {
	valid := []string{"v", "fc1-w", "layer.0.weight", "dense/kernel"}
	for _, name := range valid {
		if err := ValidateTensorName(name); err != nil {
			t.Errorf("ValidateTensorName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"../etc/passwd", "a\x00b", strings.Repeat("x", MaxTensorNameLen+1)}
	for _, name := range invalid {
		if err := ValidateTensorName(name); err == nil {
			t.Errorf("ValidateTensorName(%q) = nil, want error", name)
		}
	}
}

func TestValidateHeader(t *testing.T) {
	good := TensorMeta{Name: "w", DType: "float32", Shape: []int{2, 3}, Offset: 0, Size: 24}

	tests := []struct {
		name     string
		tensors  []TensorMeta
		level    ValidationLevel
		wantType string
	}{
		{name: "valid", tensors: []TensorMeta{good}, level: ValidationStrict},
		{
			name:     "size mismatch",
			tensors:  []TensorMeta{{Name: "w", DType: "float32", Shape: []int{2, 3}, Size: 12}},
			level:    ValidationStrict,
			wantType: "size_mismatch",
		},
		{
			name:     "unsupported dtype",
			tensors:  []TensorMeta{{Name: "w", DType: "float64", Shape: []int{1}, Size: 8}},
			level:    ValidationNormal,
			wantType: "unsupported_dtype",
		},
		{
			name:     "duplicate name",
			tensors:  []TensorMeta{good, {Name: "w", DType: "bool", Shape: []int{1}, Offset: 24, Size: 1}},
			level:    ValidationNormal,
			wantType: "duplicate_name",
		},
		{
			name:    "none skips checks",
			tensors: []TensorMeta{{Name: "../w", DType: "float64"}},
			level:   ValidationNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(&Header{Tensors: tt.tensors}, 64, tt.level)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantType, validationErr.Type)
		})
	}
}

func TestValidateChecksum(t *testing.T) {
	sum := ComputeChecksum([]byte("test data"))
	assert.NoError(t, ValidateChecksum(sum, sum))
	assert.ErrorIs(t, ValidateChecksum(sum, ComputeChecksum([]byte("different data"))), ErrChecksumMismatch)
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, Validate(Encode(coverageGraph(t))))

	id := int64(1)
	doc := Document{
		{Output: Output{ID: 0, Shape: []int{1}}},
		{Type: "MysteryNode", Output: Output{ID: 1, Shape: []int{1}}},
		{Type: "ConstantNode", Data: &Ref{Values: []float64{1}, Shape: []int{1}, DType: "complex64"}, Output: Output{ID: 2, Shape: []int{1}}},
		{Type: "ConstantNode", Data: &Ref{ID: &id, DType: "float32"}, Output: Output{ID: 3, Shape: []int{1}}},
		{Type: "PlaceholderNode", Output: Output{ID: 4, Shape: []int{0}}},
	}

	err := Validate(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	msg := err.Error()
	assert.Contains(t, msg, "record 0")
	assert.Contains(t, msg, "record 1 (MysteryNode)")
	assert.Contains(t, msg, "must be one of: float32 int32 bool")
	assert.Contains(t, msg, "cannot be combined with an inline payload")
	assert.Contains(t, msg, "record 4")
}

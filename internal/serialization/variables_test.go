package serialization

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphcodec/internal/eval"
	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

func TestWriteReadVariables(t *testing.T) {
	ints, err := tensor.FromInt32(tensor.Shape{3}, []int32{1, -2, 3})
	require.NoError(t, err)
	flags, err := tensor.FromBool(tensor.Shape{2}, []bool{true, false})
	require.NoError(t, err)
	values := map[string]*tensor.RawTensor{
		"weights": literal(t, tensor.Shape{2, 2}, 0.1, 0.2, 0.3, 0.4).Value(),
		"steps":   ints,
		"mask":    flags,
		"scale":   tensor.Scalar(1.5),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVariables(&buf, values, map[string]string{"source": "test"}))

	data := buf.Bytes()
	assert.Equal(t, MagicBytes, string(data[0:4]))
	assert.Equal(t, uint32(FormatVersion), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, FlagHasMetadata, binary.LittleEndian.Uint32(data[8:12]))
	headerSize := int64(binary.LittleEndian.Uint64(data[16:24]))
	assert.Zero(t, dataOffset(headerSize)%HeaderAlignment)

	got, header, err := ReadVariables(bytes.NewReader(data), DefaultReaderOptions)
	require.NoError(t, err)
	assert.Equal(t, ContentVariables, header.Content)
	assert.Equal(t, "test", header.Metadata["source"])
	require.Len(t, header.Tensors, 4)
	assert.Equal(t, "mask", header.Tensors[0].Name)

	require.Len(t, got, len(values))
	for name, want := range values {
		require.Contains(t, got, name)
		assert.Equal(t, want.DType(), got[name].DType(), name)
		assert.Equal(t, want.Shape(), got[name].Shape(), name)
		assert.Equal(t, want.Data(), got[name].Data(), name)
	}
}

func TestReadVariablesRejectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVariables(&buf, map[string]*tensor.RawTensor{"v": tensor.Scalar(2)}, nil))
	data := buf.Bytes()

	t.Run("checksum", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[len(corrupt)-1] ^= 0xFF
		_, _, err := ReadVariables(bytes.NewReader(corrupt), DefaultReaderOptions)
		assert.ErrorIs(t, err, ErrChecksumMismatch)

		_, _, err = ReadVariables(bytes.NewReader(corrupt), ReaderOptions{SkipChecksumValidation: true})
		assert.NoError(t, err)
	})

	t.Run("magic", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		copy(corrupt, "NOPE")
		_, _, err := ReadVariables(bytes.NewReader(corrupt), DefaultReaderOptions)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		binary.LittleEndian.PutUint32(corrupt[4:8], 1)
		_, _, err := ReadVariables(bytes.NewReader(corrupt), DefaultReaderOptions)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := ReadVariables(bytes.NewReader(data[:len(data)-2]), DefaultReaderOptions)
		assert.Error(t, err)
	})
}

func TestSaveLoadVariables(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{2})
	require.NoError(t, err)
	y, err := g.Dense("fc", x, 2, graph.TanHActivation, true)
	require.NoError(t, err)
	_, err = g.Variable("y", y)
	require.NoError(t, err)

	doc := Encode(g)
	trained, err := Decode(doc, nil)
	require.NoError(t, err)
	fresh, err := Decode(doc, nil)
	require.NoError(t, err)

	w := literal(t, tensor.Shape{2, 2}, 1, -1, 0.5, 2).Value()
	require.NoError(t, graph.Assign(trained.Variables["fc-w"], w))
	require.NoError(t, graph.Assign(trained.Variables["fc-b"], literal(t, tensor.Shape{2}, 0.25, -0.25).Value()))

	path := filepath.Join(t.TempDir(), "vars.born")
	require.NoError(t, SaveVariables(path, trained.Variables, nil))

	header, err := LoadVariables(path, fresh.Variables)
	require.NoError(t, err)
	names := make([]string, 0, len(header.Tensors))
	for _, meta := range header.Tensors {
		names = append(names, meta.Name)
	}
	// "y" mirrors a computed tensor and has no stored value.
	assert.Equal(t, []string{"fc-b", "fc-w"}, names)

	s := eval.NewSession()
	input := literal(t, tensor.Shape{2}, 0.5, -1).Value()
	want, err := s.Eval(trained.Variables["y"], eval.Feeds{trained.Placeholders["x"]: input})
	require.NoError(t, err)
	got, err := s.Eval(fresh.Variables["y"], eval.Feeds{fresh.Placeholders["x"]: input})
	require.NoError(t, err)
	assert.Equal(t, want.AsFloat32(), got.AsFloat32())

	_, err = LoadVariables(path, map[string]*graph.Tensor{})
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

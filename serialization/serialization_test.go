// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package serialization_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphcodec/eval"
	"github.com/born-ml/graphcodec/graph"
	"github.com/born-ml/graphcodec/serialization"
	"github.com/born-ml/graphcodec/tensor"
)

// TestSharedVariable walks the cross-document workflow through the public API:
// G1 holds v = 2, G2 computes result = v*v.
func TestSharedVariable(t *testing.T) {
	g1 := graph.New()
	v, err := g1.Variable("v", graph.Literal(tensor.Scalar(2)))
	require.NoError(t, err)

	g2 := graph.New()
	sq, err := g2.Multiply(v, v)
	require.NoError(t, err)
	_, err = g2.Variable("result", sq)
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, serialization.WriteDocument(&buf1, serialization.Encode(g1, serialization.WithNormalizedIDs(false)), serialization.FormatJSON))
	require.NoError(t, serialization.WriteDocument(&buf2, serialization.Encode(g2, serialization.WithNormalizedIDs(false)), serialization.FormatYAML))

	doc1, err := serialization.ReadDocument(&buf1, serialization.FormatJSON)
	require.NoError(t, err)
	doc2, err := serialization.ReadDocument(&buf2, serialization.FormatYAML)
	require.NoError(t, err)
	require.NoError(t, serialization.Validate(doc2))

	_, err = serialization.Decode(doc2, nil)
	assert.ErrorIs(t, err, serialization.ErrReferenceNotFound)
	var decodeErr *serialization.DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	res1, err := serialization.Decode(doc1, nil)
	require.NoError(t, err)
	require.NoError(t, graph.Assign(res1.Variables["v"], tensor.Scalar(3)))
	res2, err := serialization.Decode(doc2, res1.Tensors)
	require.NoError(t, err)

	got, err := eval.NewSession().EvalScalar(res2.Variables["result"], nil)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, got, 0)
}

func TestVariableFiles(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{2})
	require.NoError(t, err)
	_, err = g.Dense("fc", x, 1, nil, true)
	require.NoError(t, err)

	res, err := serialization.Decode(serialization.Encode(g), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fc.born")
	require.NoError(t, serialization.SaveVariables(path, res.Variables, map[string]string{"epoch": "3"}))

	header, err := serialization.LoadVariables(path, res.Variables)
	require.NoError(t, err)
	assert.Len(t, header.Tensors, 2)
	assert.Equal(t, "3", header.Metadata["epoch"])
}

func TestUnknownType(t *testing.T) {
	doc, err := serialization.Unmarshal([]byte(`[{"type":"UnknownNode","output":{"id":0,"shape":[]}}]`))
	require.NoError(t, err)

	_, err = serialization.Decode(doc, nil)
	assert.ErrorIs(t, err, serialization.ErrUnknownNodeType)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphcodec/eval"
	"github.com/born-ml/graphcodec/graph"
	"github.com/born-ml/graphcodec/tensor"
)

func TestEvalFeeds(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder("x", tensor.Shape{2})
	require.NoError(t, err)
	y, err := g.Square(x)
	require.NoError(t, err)

	s := eval.NewSession()
	_, err = s.Eval(y, nil)
	assert.ErrorIs(t, err, eval.ErrMissingFeed)

	in, err := tensor.FromFloat32(tensor.Shape{2}, []float32{3, -4})
	require.NoError(t, err)
	out, err := s.Eval(y, eval.Feeds{x: in})
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 16}, out.Values())

	wrong, err := tensor.FromFloat32(tensor.Shape{3}, []float32{1, 2, 3})
	require.NoError(t, err)
	_, err = s.Eval(y, eval.Feeds{x: wrong})
	assert.ErrorIs(t, err, eval.ErrFeedShape)
}

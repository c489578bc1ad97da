// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eval computes the values of graph tensors on the CPU.
//
// Evaluation follows tensors to the nodes that produced them, across graph
// boundaries, and reads placeholders from the supplied feeds:
//
//	s := eval.NewSession()
//	out, err := s.Eval(y, eval.Feeds{x: input})
package eval

import (
	"github.com/born-ml/graphcodec/internal/eval"
)

// Session evaluates tensors.
type Session = eval.Session

// Feeds maps placeholder tensors to their values for one evaluation.
type Feeds = eval.Feeds

// Evaluation errors.
var (
	ErrMissingFeed = eval.ErrMissingFeed
	ErrFeedShape   = eval.ErrFeedShape
	ErrKernel      = eval.ErrKernel
)

// NewSession creates a session backed by the CPU kernels.
func NewSession() *Session {
	return eval.NewSession()
}

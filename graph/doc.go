// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph builds computation graphs from a fixed catalog of operations.
//
// A Graph records nodes in creation order. Every operation validates its
// inputs, infers the output shape and appends one node whose output is a
// symbolic *Tensor with a process-unique id. Operations accept symbolic
// tensors from any graph as well as literal tensors wrapping a concrete
// value, so one graph can build on the variables of another.
//
// # Basic Usage
//
//	g := graph.New()
//	x, _ := g.Placeholder("x", tensor.Shape{4})
//	h, _ := g.Dense("hidden", x, 8, graph.ReLUActivation, true)
//	y, _ := g.Dense("out", h, 2, nil, true)
//	cost, _ := g.SoftmaxCrossEntropyCost(y, label)
//
// Failed operations return an error wrapping ErrShapeMismatch,
// ErrInvalidArgument or ErrNilInput and leave the graph unchanged.
//
// # Node Kinds
//
// Each node reports one Kind. Kind.TypeName is the name used in documents,
// for example "AddNode"; ParseKind accepts it with or without the suffix.
// AllKinds lists the whole catalog.
package graph

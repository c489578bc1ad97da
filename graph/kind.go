// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "github.com/born-ml/graphcodec/internal/graph"

// Kind identifies one of the fixed operation kinds.
type Kind = graph.Kind

// Operation kinds.
const (
	KindAdd                     = graph.KindAdd
	KindArgMax                  = graph.KindArgMax
	KindArgMaxEquals            = graph.KindArgMaxEquals
	KindConcat1D                = graph.KindConcat1D
	KindConcat2D                = graph.KindConcat2D
	KindConcat3D                = graph.KindConcat3D
	KindConcat4D                = graph.KindConcat4D
	KindConstant                = graph.KindConstant
	KindConvolution2D           = graph.KindConvolution2D
	KindDivide                  = graph.KindDivide
	KindElu                     = graph.KindElu
	KindExp                     = graph.KindExp
	KindFusedLinearCombination  = graph.KindFusedLinearCombination
	KindLeakyReLU               = graph.KindLeakyReLU
	KindLog                     = graph.KindLog
	KindMatMul                  = graph.KindMatMul
	KindMaxPool                 = graph.KindMaxPool
	KindMeanSquaredCost         = graph.KindMeanSquaredCost
	KindMultiply                = graph.KindMultiply
	KindPlaceholder             = graph.KindPlaceholder
	KindPReLU                   = graph.KindPReLU
	KindReduceSum               = graph.KindReduceSum
	KindReLU                    = graph.KindReLU
	KindReshape                 = graph.KindReshape
	KindSigmoid                 = graph.KindSigmoid
	KindSoftmax                 = graph.KindSoftmax
	KindSoftmaxCrossEntropyCost = graph.KindSoftmaxCrossEntropyCost
	KindSquare                  = graph.KindSquare
	KindSubtract                = graph.KindSubtract
	KindTanH                    = graph.KindTanH
	KindVariable                = graph.KindVariable
)

// ParseKind resolves a document type name such as "AddNode" or "Add".
func ParseKind(typeName string) (Kind, bool) {
	return graph.ParseKind(typeName)
}

// AllKinds returns every operation kind in declaration order.
func AllKinds() []Kind {
	return graph.AllKinds()
}

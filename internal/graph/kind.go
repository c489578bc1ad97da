package graph

import "strings"

// Kind identifies one of the fixed operation kinds a Node can have.
type Kind int

// Operation kinds. The set is closed: every Node in a Graph reports one of
// these values.
const (
	KindAdd Kind = iota
	KindArgMax
	KindArgMaxEquals
	KindConcat1D
	KindConcat2D
	KindConcat3D
	KindConcat4D
	KindConstant
	KindConvolution2D
	KindDivide
	KindElu
	KindExp
	KindFusedLinearCombination
	KindLeakyReLU
	KindLog
	KindMatMul
	KindMaxPool
	KindMeanSquaredCost
	KindMultiply
	KindPlaceholder
	KindPReLU
	KindReduceSum
	KindReLU
	KindReshape
	KindSigmoid
	KindSoftmax
	KindSoftmaxCrossEntropyCost
	KindSquare
	KindSubtract
	KindTanH
	KindVariable

	numKinds
)

var kindNames = [numKinds]string{
	KindAdd:                     "Add",
	KindArgMax:                  "ArgMax",
	KindArgMaxEquals:            "ArgMaxEquals",
	KindConcat1D:                "Concat1D",
	KindConcat2D:                "Concat2D",
	KindConcat3D:                "Concat3D",
	KindConcat4D:                "Concat4D",
	KindConstant:                "Constant",
	KindConvolution2D:           "Convolution2D",
	KindDivide:                  "Divide",
	KindElu:                     "Elu",
	KindExp:                     "Exp",
	KindFusedLinearCombination:  "FusedLinearCombination",
	KindLeakyReLU:               "LeakyReLU",
	KindLog:                     "Log",
	KindMatMul:                  "MatMul",
	KindMaxPool:                 "MaxPool",
	KindMeanSquaredCost:         "MeanSquaredCost",
	KindMultiply:                "Multiply",
	KindPlaceholder:             "Placeholder",
	KindPReLU:                   "PReLU",
	KindReduceSum:               "ReduceSum",
	KindReLU:                    "ReLU",
	KindReshape:                 "Reshape",
	KindSigmoid:                 "Sigmoid",
	KindSoftmax:                 "Softmax",
	KindSoftmaxCrossEntropyCost: "SoftmaxCrossEntropyCost",
	KindSquare:                  "Square",
	KindSubtract:                "Subtract",
	KindTanH:                    "TanH",
	KindVariable:                "Variable",
}

// nodeSuffix is appended to kind names to form document type names.
const nodeSuffix = "Node"

// String returns the short kind name, e.g. "Convolution2D".
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// TypeName returns the document discriminant for the kind, e.g. "AddNode".
func (k Kind) TypeName() string {
	return k.String() + nodeSuffix
}

// ParseKind resolves a document discriminant ("AddNode") to a Kind.
// The bare kind name ("Add") is accepted too.
func ParseKind(typeName string) (Kind, bool) {
	name := strings.TrimSuffix(typeName, nodeSuffix)
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// AllKinds returns every operation kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

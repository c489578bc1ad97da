package serialization

import (
	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

type encodeConfig struct {
	normalizeIDs bool
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// WithNormalizedIDs controls whether ids are rebased so the first node's
// output id is 0. Enabled by default. Disable it when documents of several
// graphs must keep referring to each other's tensors.
func WithNormalizedIDs(enabled bool) EncodeOption {
	return func(c *encodeConfig) {
		c.normalizeIDs = enabled
	}
}

// Encode converts g into a document. The graph is not modified.
func Encode(g *graph.Graph, opts ...EncodeOption) Document {
	cfg := encodeConfig{normalizeIDs: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	nodes := g.Nodes()
	doc := make(Document, 0, len(nodes))
	if len(nodes) == 0 {
		return doc
	}

	e := encoder{}
	if cfg.normalizeIDs {
		e.offset = nodes[0].Output().ID()
	}
	for _, n := range nodes {
		doc = append(doc, e.record(n))
	}
	return doc
}

type encoder struct {
	offset int64
}

func (e encoder) record(n graph.Node) Record {
	out := n.Output()
	rec := Record{
		Type: n.Kind().TypeName(),
		Output: Output{
			ID:    out.ID() - e.offset,
			Shape: out.Shape().Ints(),
		},
	}

	if inputs := n.Inputs(); len(inputs) > 0 {
		rec.Inputs = make(map[string]*Ref, len(inputs))
		for _, in := range inputs {
			rec.Inputs[in.Name] = e.ref(in.Tensor)
		}
	}

	switch node := n.(type) {
	case *graph.ConstantNode:
		rec.Data = e.ref(node.Data)
	case *graph.VariableNode:
		rec.Name = node.Name
		rec.Data = e.ref(node.Data)
	case *graph.PlaceholderNode:
		rec.Name = node.Name
	case *graph.ConcatNode:
		if node.Rank > 1 {
			rec.Axis = intParam(node.Axis)
		}
	case *graph.Convolution2DNode:
		rec.FieldSize = intParam(node.FieldSize)
		rec.OutputDepth = intParam(node.OutputDepth)
		rec.Stride = intParam(node.Stride)
		rec.ZeroPad = intParam(node.ZeroPad)
	case *graph.MaxPoolNode:
		rec.FieldSize = intParam(node.FieldSize)
		rec.Stride = intParam(node.Stride)
		rec.ZeroPad = intParam(node.ZeroPad)
	case *graph.LeakyReLUNode:
		alpha := node.Alpha
		rec.Alpha = &alpha
	}
	return rec
}

func (e encoder) ref(t *graph.Tensor) *Ref {
	if t.IsLiteral() {
		return payload(t.Value())
	}
	return IDRef(t.ID() - e.offset)
}

func payload(raw *tensor.RawTensor) *Ref {
	return &Ref{
		Values: raw.Values(),
		Shape:  raw.Shape().Ints(),
		DType:  raw.DType().String(),
	}
}

func intParam(v int) *int {
	return &v
}

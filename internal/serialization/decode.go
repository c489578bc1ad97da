package serialization

import (
	"fmt"
	"maps"

	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// Table maps document ids to tensors. A table returned by one Decode call
// can seed another, so a document may refer to tensors of a graph decoded
// earlier.
type Table map[int64]*graph.Tensor

// Result is the outcome of a successful Decode.
type Result struct {
	Graph        *graph.Graph
	Placeholders map[string]*graph.Tensor
	Variables    map[string]*graph.Tensor
	// Tensors holds the seed entries plus every output of this document.
	Tensors Table
}

// Decode rebuilds a graph from doc. References not produced by doc itself
// are resolved through seed, which may be nil. seed is copied, never
// modified. On error no partial result is returned.
func Decode(doc Document, seed Table) (*Result, error) {
	d := &decoder{
		graph:        graph.New(),
		tensors:      make(Table, len(seed)+len(doc)),
		placeholders: make(map[string]*graph.Tensor),
		variables:    make(map[string]*graph.Tensor),
	}
	maps.Copy(d.tensors, seed)

	for i := range doc {
		rec := &doc[i]
		if err := d.record(rec); err != nil {
			return nil, &DecodeError{Index: i, Type: rec.Type, Err: err}
		}
	}

	return &Result{
		Graph:        d.graph,
		Placeholders: d.placeholders,
		Variables:    d.variables,
		Tensors:      d.tensors,
	}, nil
}

type decoder struct {
	graph        *graph.Graph
	tensors      Table
	placeholders map[string]*graph.Tensor
	variables    map[string]*graph.Tensor
}

//nolint:gocyclo,cyclop,funlen // One case per node kind.
func (d *decoder) record(rec *Record) error {
	kind, ok := graph.ParseKind(rec.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNodeType, rec.Type)
	}

	var names []string
	switch kind {
	case graph.KindAdd, graph.KindSubtract, graph.KindMultiply, graph.KindDivide:
		names = []string{"t1", "t2"}
	case graph.KindArgMaxEquals, graph.KindConcat1D, graph.KindConcat2D, graph.KindConcat3D,
		graph.KindConcat4D, graph.KindMatMul:
		names = []string{"x1", "x2"}
	case graph.KindConvolution2D:
		names = []string{"x", "w", "b"}
	case graph.KindFusedLinearCombination:
		names = []string{"t1", "t2", "c1", "c2"}
	case graph.KindMeanSquaredCost:
		names = []string{"label", "prediction"}
	case graph.KindPReLU:
		names = []string{"x", "alpha"}
	case graph.KindSoftmaxCrossEntropyCost:
		names = []string{"x", "target"}
	case graph.KindConstant, graph.KindPlaceholder, graph.KindVariable:
	default:
		names = []string{"x"}
	}
	in, err := d.inputs(rec, names...)
	if err != nil {
		return err
	}

	g := d.graph
	var out *graph.Tensor
	switch kind {
	case graph.KindAdd:
		out, err = g.Add(in[0], in[1])
	case graph.KindSubtract:
		out, err = g.Subtract(in[0], in[1])
	case graph.KindMultiply:
		out, err = g.Multiply(in[0], in[1])
	case graph.KindDivide:
		out, err = g.Divide(in[0], in[1])
	case graph.KindArgMax:
		out, err = g.ArgMax(in[0])
	case graph.KindArgMaxEquals:
		out, err = g.ArgMaxEquals(in[0], in[1])
	case graph.KindConcat1D:
		out, err = g.Concat1D(in[0], in[1])
	case graph.KindConcat2D, graph.KindConcat3D, graph.KindConcat4D:
		var axis int
		if axis, err = intValue(rec.Axis, "axis"); err != nil {
			return err
		}
		switch kind {
		case graph.KindConcat2D:
			out, err = g.Concat2D(in[0], in[1], axis)
		case graph.KindConcat3D:
			out, err = g.Concat3D(in[0], in[1], axis)
		default:
			out, err = g.Concat4D(in[0], in[1], axis)
		}
	case graph.KindConstant:
		var data *graph.Tensor
		if data, err = d.data(rec); err != nil {
			return err
		}
		out, err = g.Constant(data)
	case graph.KindConvolution2D:
		var p [4]int
		if p, err = intValues(rec, "fieldSize", "outputDepth", "stride", "zeroPad"); err != nil {
			return err
		}
		out, err = g.Conv2D(in[0], in[1], in[2], p[0], p[1], p[2], p[3])
	case graph.KindElu:
		out, err = g.Elu(in[0])
	case graph.KindExp:
		out, err = g.Exp(in[0])
	case graph.KindFusedLinearCombination:
		out, err = g.FusedLinearCombination(in[0], in[1], in[2], in[3])
	case graph.KindLeakyReLU:
		if rec.Alpha == nil {
			return fmt.Errorf("%w: alpha", ErrMissingParameter)
		}
		out, err = g.LeakyReLU(in[0], *rec.Alpha)
	case graph.KindLog:
		out, err = g.Log(in[0])
	case graph.KindMatMul:
		out, err = g.MatMul(in[0], in[1])
	case graph.KindMaxPool:
		var p [4]int
		if p, err = intValues(rec, "fieldSize", "stride", "zeroPad"); err != nil {
			return err
		}
		out, err = g.MaxPool(in[0], p[0], p[1], p[2])
	case graph.KindMeanSquaredCost:
		out, err = g.MeanSquaredCost(in[0], in[1])
	case graph.KindPlaceholder:
		out, err = g.Placeholder(rec.Name, tensor.Shape(rec.Output.Shape).Clone())
		if err == nil {
			d.placeholders[rec.Name] = out
		}
	case graph.KindPReLU:
		out, err = g.PReLU(in[0], in[1])
	case graph.KindReduceSum:
		out, err = g.ReduceSum(in[0])
	case graph.KindReLU:
		out, err = g.ReLU(in[0])
	case graph.KindReshape:
		out, err = g.Reshape(in[0], tensor.Shape(rec.Output.Shape).Clone())
	case graph.KindSigmoid:
		out, err = g.Sigmoid(in[0])
	case graph.KindSoftmax:
		out, err = g.Softmax(in[0])
	case graph.KindSoftmaxCrossEntropyCost:
		out, err = g.SoftmaxCrossEntropyCost(in[0], in[1])
	case graph.KindSquare:
		out, err = g.Square(in[0])
	case graph.KindTanH:
		out, err = g.TanH(in[0])
	case graph.KindVariable:
		var data *graph.Tensor
		if data, err = d.data(rec); err != nil {
			return err
		}
		out, err = g.Variable(rec.Name, data)
		if err == nil {
			d.variables[rec.Name] = out
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNodeType, rec.Type)
	}
	if err != nil {
		return err
	}

	if !out.Shape().Equal(tensor.Shape(rec.Output.Shape)) {
		return fmt.Errorf("%w: output shape %v, document says %v", ErrInvalidDocument, out.Shape(), rec.Output.Shape)
	}
	d.tensors[rec.Output.ID] = out
	return nil
}

// inputs resolves the named inputs of rec in order.
func (d *decoder) inputs(rec *Record, names ...string) ([]*graph.Tensor, error) {
	resolved := make([]*graph.Tensor, len(names))
	for i, name := range names {
		ref := rec.Inputs[name]
		if ref == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, name)
		}
		t, err := d.resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", name, err)
		}
		resolved[i] = t
	}
	return resolved, nil
}

func (d *decoder) data(rec *Record) (*graph.Tensor, error) {
	if rec.Data == nil {
		return nil, fmt.Errorf("%w: data", ErrMissingParameter)
	}
	t, err := d.resolve(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return t, nil
}

// resolve turns a reference into a tensor: ids are looked up in the table,
// payloads become literal tensors.
func (d *decoder) resolve(ref *Ref) (*graph.Tensor, error) {
	if ref.IsReference() {
		t, ok := d.tensors[*ref.ID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrReferenceNotFound, *ref.ID)
		}
		return t, nil
	}

	raw, err := payloadTensor(ref)
	if err != nil {
		return nil, err
	}
	return graph.Literal(raw), nil
}

func payloadTensor(ref *Ref) (*tensor.RawTensor, error) {
	dtype, ok := tensor.ParseDataType(ref.DType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dtype %q", ErrInvalidPayload, ref.DType)
	}
	shape := tensor.Shape(ref.Shape).Clone()
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	raw, err := tensor.FromValues(shape, dtype, ref.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return raw, nil
}

func intValue(v *int, name string) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return *v, nil
}

// intValues reads up to four integer parameters of rec by name.
func intValues(rec *Record, names ...string) ([4]int, error) {
	var out [4]int
	for i, name := range names {
		var field *int
		switch name {
		case "fieldSize":
			field = rec.FieldSize
		case "outputDepth":
			field = rec.OutputDepth
		case "stride":
			field = rec.Stride
		case "zeroPad":
			field = rec.ZeroPad
		}
		v, err := intValue(field, name)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

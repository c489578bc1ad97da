package serialization

import (
	"encoding/json"
	"fmt"
)

// Document is the portable form of a graph: one record per node, in
// construction order.
type Document []Record

// Record describes one node. Which optional fields are present depends on
// the node type; absent fields are omitted from the encoded form.
type Record struct {
	Type string `json:"type" yaml:"type" validate:"required"`
	Data *Ref   `json:"data,omitempty" yaml:"data,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	FieldSize   *int     `json:"fieldSize,omitempty" yaml:"fieldSize,omitempty" validate:"omitempty,gt=0"`
	OutputDepth *int     `json:"outputDepth,omitempty" yaml:"outputDepth,omitempty" validate:"omitempty,gt=0"`
	Stride      *int     `json:"stride,omitempty" yaml:"stride,omitempty" validate:"omitempty,gt=0"`
	ZeroPad     *int     `json:"zeroPad,omitempty" yaml:"zeroPad,omitempty" validate:"omitempty,gte=0"`
	Alpha       *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Axis        *int     `json:"axis,omitempty" yaml:"axis,omitempty" validate:"omitempty,gte=0"`

	Inputs map[string]*Ref `json:"inputs,omitempty" yaml:"inputs,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`
	Output Output          `json:"output" yaml:"output"`
}

// Output identifies the tensor a record produces.
type Output struct {
	ID    int64 `json:"id" yaml:"id"`
	Shape []int `json:"shape" yaml:"shape" validate:"dive,gt=0"`
}

// Ref is a tensor argument: either a reference to the output of an earlier
// record ({id}) or an inline payload ({values, shape, dtype}).
type Ref struct {
	ID     *int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
	Shape  []int     `json:"shape,omitempty" yaml:"shape,omitempty" validate:"dive,gt=0"`
	DType  string    `json:"dtype,omitempty" yaml:"dtype,omitempty" validate:"omitempty,oneof=float32 int32 bool"`
}

// IDRef returns a reference to the tensor with the given id.
func IDRef(id int64) *Ref {
	return &Ref{ID: &id}
}

// IsReference reports whether r refers to another tensor by id.
func (r *Ref) IsReference() bool {
	return r.ID != nil
}

// String returns a short description of the reference.
func (r *Ref) String() string {
	if r.IsReference() {
		return fmt.Sprintf("#%d", *r.ID)
	}
	return fmt.Sprintf("%s%v", r.DType, r.Shape)
}

type idRef struct {
	ID int64 `json:"id" yaml:"id"`
}

type payloadRef struct {
	Values []float64 `json:"values" yaml:"values,flow"`
	Shape  []int     `json:"shape" yaml:"shape,flow"`
	DType  string    `json:"dtype" yaml:"dtype"`
}

// wire returns the value actually emitted for r: exactly one of the two
// reference forms, with a scalar payload keeping its empty shape.
func (r Ref) wire() any {
	if r.ID != nil {
		return idRef{ID: *r.ID}
	}
	shape := r.Shape
	if shape == nil {
		shape = []int{}
	}
	return payloadRef{Values: r.Values, Shape: shape, DType: r.DType}
}

// MarshalJSON implements json.Marshaler.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (r Ref) MarshalYAML() (any, error) {
	return r.wire(), nil
}

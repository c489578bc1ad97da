// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package serialization

import (
	"io"

	"github.com/born-ml/graphcodec/graph"
	"github.com/born-ml/graphcodec/internal/serialization"
	"github.com/born-ml/graphcodec/tensor"
)

// Document is an ordered list of node records.
type Document = serialization.Document

// Record describes one node.
type Record = serialization.Record

// Output is the id and shape of a record's result.
type Output = serialization.Output

// Ref is a tensor argument: an id reference or an inline payload.
type Ref = serialization.Ref

// Table maps document ids to tensors.
type Table = serialization.Table

// Result is the outcome of a successful Decode.
type Result = serialization.Result

// EncodeOption configures Encode.
type EncodeOption = serialization.EncodeOption

// Format is a textual document encoding.
type Format = serialization.Format

// Header is the metadata block of a variable file.
type Header = serialization.Header

// TensorMeta describes one tensor in a variable file.
type TensorMeta = serialization.TensorMeta

// DecodeError reports the record a decode failure happened at.
type DecodeError = serialization.DecodeError

// Document formats.
const (
	FormatJSON = serialization.FormatJSON
	FormatYAML = serialization.FormatYAML
)

// Decode errors.
var (
	ErrReferenceNotFound = serialization.ErrReferenceNotFound
	ErrUnknownNodeType   = serialization.ErrUnknownNodeType
	ErrMissingInput      = serialization.ErrMissingInput
	ErrMissingParameter  = serialization.ErrMissingParameter
	ErrInvalidPayload    = serialization.ErrInvalidPayload
	ErrInvalidDocument   = serialization.ErrInvalidDocument
)

// Variable file errors.
var (
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
	ErrHeaderTooLarge     = serialization.ErrHeaderTooLarge
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrUnknownVariable    = serialization.ErrUnknownVariable
)

// Encode converts g into a document.
func Encode(g *graph.Graph, opts ...EncodeOption) Document {
	return serialization.Encode(g, opts...)
}

// WithNormalizedIDs controls whether ids are rebased to start at 0.
// It is enabled by default.
func WithNormalizedIDs(enabled bool) EncodeOption {
	return serialization.WithNormalizedIDs(enabled)
}

// Decode rebuilds a graph from doc, resolving foreign references through
// seed. seed is never modified.
func Decode(doc Document, seed Table) (*Result, error) {
	return serialization.Decode(doc, seed)
}

// Validate checks the structure of doc without building a graph.
func Validate(doc Document) error {
	return serialization.Validate(doc)
}

// Marshal encodes doc as compact JSON.
func Marshal(doc Document) ([]byte, error) {
	return serialization.Marshal(doc)
}

// Unmarshal parses a JSON document.
func Unmarshal(data []byte) (Document, error) {
	return serialization.Unmarshal(data)
}

// ParseFormat resolves a format name ("json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	return serialization.ParseFormat(s)
}

// WriteDocument writes doc to w in format.
func WriteDocument(w io.Writer, doc Document, format Format) error {
	return serialization.WriteDocument(w, doc, format)
}

// ReadDocument reads a document in format from r.
func ReadDocument(r io.Reader, format Format) (Document, error) {
	return serialization.ReadDocument(r, format)
}

// SaveVariables writes the stored values of variables to path.
func SaveVariables(path string, variables map[string]*graph.Tensor, metadata map[string]string) error {
	return serialization.SaveVariables(path, variables, metadata)
}

// LoadVariables reads path and assigns each stored value to the variable of
// the same name.
func LoadVariables(path string, variables map[string]*graph.Tensor) (Header, error) {
	return serialization.LoadVariables(path, variables)
}

// WriteVariables writes named values as a variable file to w.
func WriteVariables(w io.Writer, values map[string]*tensor.RawTensor, metadata map[string]string) error {
	return serialization.WriteVariables(w, values, metadata)
}

// ReadVariables reads and verifies a variable file.
func ReadVariables(r io.Reader) (map[string]*tensor.RawTensor, Header, error) {
	return serialization.ReadVariables(r, serialization.DefaultReaderOptions)
}

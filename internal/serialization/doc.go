// Package serialization converts computation graphs to and from portable
// documents.
//
// A document is an ordered list of records, one per graph node:
//
//	[
//	  {"type": "PlaceholderNode", "name": "x", "output": {"id": 0, "shape": [2]}},
//	  {"type": "SquareNode", "inputs": {"x": {"id": 0}}, "output": {"id": 1, "shape": [2]}}
//	]
//
// Inputs refer to earlier outputs by id, or carry an inline payload
// ({"values", "shape", "dtype"}) for literal tensors. Encode walks a graph in
// construction order; Decode replays the records through the graph
// construction API and returns a Table of id → tensor that can seed the
// decoding of further documents sharing tensors with this one.
//
// The package also stores variable values in the binary .born container:
//
//	Format Structure:
//	  [64 bytes: fixed header with magic "BORN", version, sizes, SHA-256]
//	  [Header: JSON metadata]
//	  [Tensor data: raw bytes, 64-byte aligned]
//
// Example usage:
//
//	doc := serialization.Encode(g)
//	data, err := serialization.Marshal(doc)
//
//	res, err := serialization.Decode(doc, nil)
//	if err := serialization.SaveVariables("vars.born", res.Variables, nil); err != nil {
//	    log.Fatal(err)
//	}
package serialization

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization converts graphs to and from portable documents and
// stores variable values in .born files.
//
// # Documents
//
// A Document is an ordered list of records, one per node, in creation order.
// Inputs refer to earlier records by output id or carry their value inline:
//
//	doc := serialization.Encode(g)
//	data, _ := serialization.Marshal(doc)
//
//	parsed, _ := serialization.Unmarshal(data)
//	res, err := serialization.Decode(parsed, nil)
//	x := res.Placeholders["x"]
//
// Ids are rebased so the first record has id 0. Pass
// WithNormalizedIDs(false) to keep the ids of the source graph, which is
// required when another document refers to this one: decode the first
// document, then pass its Tensors table as the seed for the second.
//
// Documents can also be written as YAML with WriteDocument and checked with
// Validate before decoding.
//
// # Variable Files
//
// SaveVariables writes the stored values of a graph's variables to a .born
// file (64-byte header, JSON metadata, 64-byte aligned data, SHA-256
// checksum). LoadVariables verifies the file and assigns the values back by
// name.
package serialization

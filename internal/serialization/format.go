package serialization

import (
	"time"
)

// Variable file (.born container) constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 2    // With SHA-256 checksum of the data section
	HeaderAlignment = 64   // Tensor data starts on a 64-byte boundary
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// FlagHasMetadata is set when the header carries custom metadata.
const FlagHasMetadata uint32 = 1 << 2

// ContentVariables marks files holding graph variable values.
const ContentVariables = "variables"

// producer identifies the writer in file headers.
const producer = "graphcodec"

// Header represents the JSON header of a variable file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the container format
	Producer      string            `json:"producer"`       // Program that created the file
	Content       string            `json:"content"`        // What the tensors are, e.g. "variables"
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`        // Tensor metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata
}

// TensorMeta describes a tensor in the file.
type TensorMeta struct {
	Name   string `json:"name"`   // Variable name
	DType  string `json:"dtype"`  // Data type ("float32", "int32" or "bool")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section (bytes from start of tensor data)
	Size   int64  `json:"size"`   // Size in bytes
}

// dataOffset returns where tensor data starts for a JSON header of n bytes.
func dataOffset(headerSize int64) int64 {
	pos := int64(FixedHeaderSize) + headerSize
	padding := (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
	return pos + padding
}

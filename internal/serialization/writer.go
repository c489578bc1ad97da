package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// WriteVariables writes named tensors to w as a variable file.
//
// Layout:
//
//	[0x00-0x03: Magic "BORN"]
//	[0x04-0x07: Version (uint32 LE)]
//	[0x08-0x0B: Flags (uint32 LE)]
//	[0x10-0x17: Header size (uint64 LE)]
//	[0x18-0x1F: Data size (uint64 LE)]
//	[0x20-0x3F: SHA-256 of the data section]
//	[Header: JSON metadata]
//	[Tensor data: raw little-endian bytes, 64-byte aligned]
//
// Tensors are stored in name order so equal inputs produce equal data sections.
func WriteVariables(w io.Writer, values map[string]*tensor.RawTensor, metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersion,
		Producer:      producer,
		Content:       ContentVariables,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(values)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	// Calculate tensor offsets and collect tensor data
	var currentOffset int64
	var tensorData []byte
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		raw := values[name]
		size := int64(raw.ByteSize())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  raw.DType().String(),
			Shape:  raw.Shape().Ints(),
			Offset: currentOffset,
			Size:   size,
		})
		tensorData = append(tensorData, raw.Data()...)
		currentOffset += size
	}

	checksum := ComputeChecksum(tensorData)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fixedHeader := make([]byte, FixedHeaderSize)
	copy(fixedHeader[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))
	flags := uint32(0)
	if len(metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)
	binary.LittleEndian.PutUint64(fixedHeader[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(len(tensorData)))
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	padding := dataOffset(int64(len(headerJSON))) - int64(FixedHeaderSize+len(headerJSON))
	if _, err := bw.Write(make([]byte, padding)); err != nil {
		return fmt.Errorf("failed to write padding: %w", err)
	}
	if _, err := bw.Write(tensorData); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return bw.Flush()
}

// VariableValues collects the current values of variables. Variables that
// mirror a computed tensor have no stored value and are skipped.
func VariableValues(variables map[string]*graph.Tensor) map[string]*tensor.RawTensor {
	values := make(map[string]*tensor.RawTensor, len(variables))
	for name, v := range variables {
		vn, ok := v.Node().(*graph.VariableNode)
		if !ok || !vn.Data.IsLiteral() {
			continue
		}
		values[name] = vn.Data.Value()
	}
	return values
}

// SaveVariables writes the stored values of variables to a file at path.
func SaveVariables(path string, variables map[string]*graph.Tensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteVariables(file, VariableValues(variables), metadata)
}

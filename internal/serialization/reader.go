package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// ReaderOptions configures how variable files are read.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// DefaultReaderOptions validates checksums and headers strictly.
var DefaultReaderOptions = ReaderOptions{ValidationLevel: ValidationStrict}

// ReadVariables reads a variable file from r.
func ReadVariables(r io.Reader, opts ReaderOptions) (map[string]*tensor.RawTensor, Header, error) {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedHeader); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, Header{}, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	var stored [ChecksumSize]byte
	copy(stored[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, Header{}, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header JSON: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	padding := dataOffset(int64(headerSize)) - int64(FixedHeaderSize) - int64(headerSize)
	if _, err := io.CopyN(io.Discard, r, padding); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read padding: %w", err)
	}

	//nolint:gosec // G115: dataSize is checked against the header before any use
	if err := ValidateHeader(&header, int64(dataSize), opts.ValidationLevel); err != nil {
		return nil, Header{}, fmt.Errorf("validation failed: %w", err)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
			return nil, Header{}, err
		}
	}

	values := make(map[string]*tensor.RawTensor, len(header.Tensors))
	for _, meta := range header.Tensors {
		dtype, ok := tensor.ParseDataType(meta.DType)
		if !ok {
			return nil, Header{}, fmt.Errorf("unsupported dtype: %s", meta.DType)
		}
		raw, err := tensor.NewRaw(tensor.Shape(meta.Shape).Clone(), dtype)
		if err != nil {
			return nil, Header{}, fmt.Errorf("failed to create tensor %s: %w", meta.Name, err)
		}
		if meta.Offset < 0 || int64(len(data)) < meta.Offset+meta.Size || int64(raw.ByteSize()) != meta.Size {
			return nil, Header{}, fmt.Errorf("tensor %s: data out of range", meta.Name)
		}
		copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
		values[meta.Name] = raw
	}

	return values, header, nil
}

// AssignVariables assigns each value to the variable of the same name.
// Every value must name a variable in variables and match its shape.
func AssignVariables(variables map[string]*graph.Tensor, values map[string]*tensor.RawTensor) error {
	for name, value := range values {
		v, ok := variables[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
		if err := graph.Assign(v, value); err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
	}
	return nil
}

// LoadVariables reads the variable file at path and assigns its values to
// variables, typically Result.Variables of a decoded document.
func LoadVariables(path string, variables map[string]*graph.Tensor) (Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	values, header, err := ReadVariables(file, DefaultReaderOptions)
	if err != nil {
		return Header{}, err
	}
	return header, AssignVariables(variables, values)
}

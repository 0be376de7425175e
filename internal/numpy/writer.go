package numpy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Supported dtype descriptors
const (
	DescrUint8   = "<u1"
	DescrFloat32 = "<f4"
)

// Writer handles writing data to NumPy (.npy) files
type Writer struct {
	file *os.File
}

// NewWriter creates a new NumPy writer for the given file
func NewWriter(filepath string) (*Writer, error) {
	file, err := os.Create(filepath)
	if err != nil {
		return nil, fmt.Errorf("error creating npy file: %v", err)
	}
	return &Writer{file: file}, nil
}

// Close closes the underlying file
func (w *Writer) Close() error {
	return w.file.Close()
}

// Write writes data to the NumPy file with the given shape and dtype
// descriptor. data must already be laid out in C order with the dtype's
// byte width.
func (w *Writer) Write(data []byte, shape []int, descr string) error {
	// Create and write the header
	header, err := createHeader(shape, descr)
	if err != nil {
		return fmt.Errorf("error creating numpy header: %v", err)
	}

	if _, err := w.file.Write(header); err != nil {
		return fmt.Errorf("error writing npy header: %v", err)
	}

	// Write the data
	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("error writing npy data: %v", err)
	}

	return nil
}

// WriteChunks splits data along its first axis into chunks of at most
// chunkLen entries and writes each chunk to dir as <name>_<index>.npy.
// The index is zero-padded so lexicographic file order matches chunk
// order. Returns the paths written, in order.
func WriteChunks(dir, name string, chunkLen int, data []byte, shape []int, descr string) ([]string, error) {
	if chunkLen <= 0 {
		return nil, fmt.Errorf("chunk length must be positive, got %d", chunkLen)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("shape must have at least one axis")
	}
	rowBytes := itemSize(descr)
	for _, s := range shape[1:] {
		rowBytes *= s
	}
	if len(data) != shape[0]*rowBytes {
		return nil, fmt.Errorf("data is %d bytes, shape %v implies %d", len(data), shape, shape[0]*rowBytes)
	}

	var paths []string
	numChunks := (shape[0] + chunkLen - 1) / chunkLen
	for i := 0; i < numChunks; i++ {
		start := i * chunkLen
		end := min(start+chunkLen, shape[0])

		chunkShape := append([]int{end - start}, shape[1:]...)
		path := filepath.Join(dir, fmt.Sprintf("%s_%05d.npy", name, i))
		if err := writeFile(path, data[start*rowBytes:end*rowBytes], chunkShape, descr); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte, shape []int, descr string) error {
	writer, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := writer.Write(data, shape, descr); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func itemSize(descr string) int {
	switch descr {
	case DescrFloat32:
		return 4
	default:
		return 1
	}
}

// createHeader creates a NumPy array header with the given shape and dtype
func createHeader(shape []int, descr string) ([]byte, error) {
	// Create the dictionary string
	var shapeStr bytes.Buffer
	shapeStr.WriteString(fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (", descr))
	for i, s := range shape {
		shapeStr.WriteString(fmt.Sprintf("%d", s))
		if i < len(shape)-1 {
			shapeStr.WriteString(", ")
		}
	}
	if len(shape) == 1 {
		// A single-axis shape needs the trailing comma to stay a tuple
		shapeStr.WriteString(",")
	}
	shapeStr.WriteString(")}")

	dictBytes := shapeStr.Bytes()

	// Calculate padding for the dictionary string
	currentHeaderSize := len(dictBytes) + 10 // 10 = len(magic+version) + len(header_len_prefix)
	padding := (16 - (currentHeaderSize % 16)) % 16

	// Create the header
	var fullHeader bytes.Buffer

	// Magic string and version (NPY v1.0) - 8 bytes
	fullHeader.Write([]byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00})

	// Header length (uint16 little-endian) - 2 bytes
	headerDictWithPaddingLen := uint16(len(dictBytes) + padding)
	if err := binary.Write(&fullHeader, binary.LittleEndian, headerDictWithPaddingLen); err != nil {
		return nil, fmt.Errorf("failed to write header dictionary length: %v", err)
	}

	// Dictionary literal string
	fullHeader.Write(dictBytes)

	// Padding bytes
	fullHeader.Write(bytes.Repeat([]byte{' '}, padding))

	return fullHeader.Bytes(), nil
}

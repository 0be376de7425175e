package numpy

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestWriter(t *testing.T) {
	// Create a temporary file for testing
	tmpFile, err := os.CreateTemp("", "test-*.npy")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	// Create a writer
	writer, err := NewWriter(tmpFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	// Test data
	data := []byte{1, 2, 3, 4, 5, 6}
	shape := []int{2, 3}

	// Write the data
	if err := writer.Write(data, shape, DescrUint8); err != nil {
		t.Fatal(err)
	}

	// Read the file back
	fileData, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		t.Fatal(err)
	}

	// Check magic string
	if string(fileData[0:6]) != "\x93NUMPY" {
		t.Error("Invalid magic string in NPY file")
	}

	// Check version
	if fileData[6] != 0x01 || fileData[7] != 0x00 {
		t.Error("Invalid version in NPY file")
	}

	// Check that the data is present
	if len(fileData) <= len(data) {
		t.Error("File is too small to contain the data")
	}
}

func TestHeaderContents(t *testing.T) {
	tests := []struct {
		name     string
		shape    []int
		descr    string
		wantDict string
	}{
		{
			name:     "uint8 2d",
			shape:    []int{2, 3},
			descr:    DescrUint8,
			wantDict: "{'descr': '<u1', 'fortran_order': False, 'shape': (2, 3)}",
		},
		{
			name:     "float32 3d",
			shape:    []int{4, 10, 36},
			descr:    DescrFloat32,
			wantDict: "{'descr': '<f4', 'fortran_order': False, 'shape': (4, 10, 36)}",
		},
		{
			name:     "1d keeps tuple comma",
			shape:    []int{7},
			descr:    DescrFloat32,
			wantDict: "{'descr': '<f4', 'fortran_order': False, 'shape': (7,)}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, err := createHeader(tt.shape, tt.descr)
			if err != nil {
				t.Fatal(err)
			}

			if string(header[0:6]) != "\x93NUMPY" {
				t.Error("createHeader() magic string incorrect")
			}
			headerLen := binary.LittleEndian.Uint16(header[8:10])
			if int(headerLen) != len(header)-10 {
				t.Errorf("createHeader() length field %d, header body is %d", headerLen, len(header)-10)
			}
			if len(header)%16 != 0 {
				t.Errorf("createHeader() total length %d is not 16-byte aligned", len(header))
			}

			dict := string(header[10 : 10+len(tt.wantDict)])
			if dict != tt.wantDict {
				t.Errorf("createHeader() dict = %q, want %q", dict, tt.wantDict)
			}
		})
	}
}

func TestWriteChunks(t *testing.T) {
	dir := t.TempDir()

	// 5 rows of 2 float32 values
	data := make([]byte, 5*2*4)
	for i := range data {
		data[i] = byte(i)
	}

	paths, err := WriteChunks(dir, "frames", 2, data, []int{5, 2}, DescrFloat32)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "frames_00000.npy"),
		filepath.Join(dir, "frames_00001.npy"),
		filepath.Join(dir, "frames_00002.npy"),
	}
	if len(paths) != len(want) {
		t.Fatalf("WriteChunks() wrote %d files, want %d", len(paths), len(want))
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("WriteChunks() path %d = %s, want %s", i, p, want[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("WriteChunks() missing output file %s", p)
		}
	}

	// Last chunk holds the single remaining row
	lastData, err := os.ReadFile(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	headerLen := binary.LittleEndian.Uint16(lastData[8:10])
	body := lastData[10+int(headerLen):]
	if len(body) != 2*4 {
		t.Errorf("last chunk body is %d bytes, want 8", len(body))
	}
	// Rows 0-3 went to earlier chunks, so the last chunk starts at byte 32
	if body[0] != 32 {
		t.Errorf("last chunk starts with byte %d, want 32", body[0])
	}
}

// Chunk file names must sort in chunk order, since downstream sharding
// orders them lexicographically
func TestWriteChunksSortOrder(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 12)

	paths, err := WriteChunks(dir, "frames", 1, data, []int{12}, DescrUint8)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 12 {
		t.Fatalf("WriteChunks() wrote %d files, want 12", len(paths))
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	for i := range paths {
		if paths[i] != sorted[i] {
			t.Fatalf("chunk order diverges from lexicographic order at %d: %s vs %s", i, paths[i], sorted[i])
		}
	}
}

func TestWriteChunksValidation(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteChunks(dir, "x", 0, nil, []int{1}, DescrUint8); err == nil {
		t.Error("WriteChunks() accepted zero chunk length")
	}
	if _, err := WriteChunks(dir, "x", 1, make([]byte, 3), []int{2, 2}, DescrUint8); err == nil {
		t.Error("WriteChunks() accepted mismatched data size")
	}
}

package features

import (
	"encoding/binary"
	"math"
)

// Matrix is the padded output of one extraction run: a zero-initialized
// float32 array of shape (numVideos, maxFrames, featureDim). Video i
// owns rows [0, sampledFrames_i) of its slot; the rest stay zero.
type Matrix struct {
	NumVideos  int
	MaxFrames  int
	FeatureDim int
	Data       []float32
}

// NewMatrix allocates a zeroed feature matrix
func NewMatrix(numVideos, maxFrames, featureDim int) *Matrix {
	return &Matrix{
		NumVideos:  numVideos,
		MaxFrames:  maxFrames,
		FeatureDim: featureDim,
		Data:       make([]float32, numVideos*maxFrames*featureDim),
	}
}

// Row returns the feature vector slot for frame f of video v
func (m *Matrix) Row(v, f int) []float32 {
	off := (v*m.MaxFrames + f) * m.FeatureDim
	return m.Data[off : off+m.FeatureDim]
}

// Shape returns the matrix dimensions, outermost first
func (m *Matrix) Shape() []int {
	return []int{m.NumVideos, m.MaxFrames, m.FeatureDim}
}

// Bytes serializes the matrix as little-endian float32, matching the
// numpy '<f4' dtype
func (m *Matrix) Bytes() []byte {
	out := make([]byte, 4*len(m.Data))
	for i, v := range m.Data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

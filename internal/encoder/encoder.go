package encoder

import (
	"github.com/melody-ding/go-vidfeat/internal/frame"
)

// Encoder turns a batch of preprocessed frames into one feature vector
// per frame. Implementations may be accelerator-resident; the pipeline
// only depends on this interface.
type Encoder interface {
	// FeatureSize returns the length of the vectors Forward produces
	FeatureSize() int
	// Forward encodes every frame in the batch, returning batch.N vectors
	// of FeatureSize() elements each
	Forward(batch *frame.Batch) ([][]float32, error)
}

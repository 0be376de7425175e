package features

import (
	"fmt"
	"io"
	"sort"

	"github.com/cyclopcam/logs"
	"github.com/melody-ding/go-vidfeat/internal/encoder"
	"github.com/melody-ding/go-vidfeat/internal/frame"
	"github.com/melody-ding/go-vidfeat/internal/sampler"
	"github.com/melody-ding/go-vidfeat/internal/types"
)

// Config holds the knobs for one extraction run
type Config struct {
	// Frequency is the target sampling rate as a fraction of the native
	// frame rate, in (0,1]
	Frequency float64
	// MaxFrames is the per-video row capacity of the output matrix
	MaxFrames int
	// Dims is the resolution frames are normalized to before encoding
	Dims frame.Dimensions
}

// Validate rejects bad configs before any video is touched
func (c Config) Validate() error {
	if c.Frequency <= 0 || c.Frequency > 1 {
		return fmt.Errorf("frequency must be in (0,1], got %v", c.Frequency)
	}
	if c.MaxFrames <= 0 {
		return fmt.Errorf("max frames must be a positive integer, got %d", c.MaxFrames)
	}
	if c.Dims.Width <= 0 || c.Dims.Height <= 0 {
		return fmt.Errorf("target dimensions must be positive, got %dx%d", c.Dims.Width, c.Dims.Height)
	}
	return nil
}

// SourceOpener opens a frame source for one video file. The returned
// source is closed after the video is processed if it implements
// io.Closer.
type SourceOpener func(path string) (sampler.Source, error)

// Builder assembles the feature matrix for a set of videos
type Builder struct {
	cfg  Config
	log  logs.Log
	enc  encoder.Encoder
	open SourceOpener
}

// NewBuilder validates cfg and wires up a builder
func NewBuilder(cfg Config, log logs.Log, enc encoder.Encoder, open SourceOpener) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("encoder must not be nil")
	}
	if open == nil {
		return nil, fmt.Errorf("source opener must not be nil")
	}
	return &Builder{cfg: cfg, log: log, enc: enc, open: open}, nil
}

// Build runs the pipeline over every video, in lexicographic path order,
// and returns the padded matrix plus the per-video sampled-frame counts.
// Any failure aborts the whole run; a partially filled matrix is never
// returned.
func (b *Builder) Build(videos []types.Video) (*Matrix, []int, error) {
	if len(videos) == 0 {
		return nil, nil, fmt.Errorf("no videos to process")
	}
	sorted := append([]types.Video(nil), videos...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	matrix := NewMatrix(len(sorted), b.cfg.MaxFrames, b.enc.FeatureSize())
	counts := make([]int, len(sorted))
	for i, vid := range sorted {
		b.log.Infof("Extracting features for %s (%d/%d)", vid.Key, i+1, len(sorted))
		n, err := b.buildOne(vid, matrix, i)
		if err != nil {
			return nil, nil, err
		}
		counts[i] = n
	}
	return matrix, counts, nil
}

func (b *Builder) buildOne(vid types.Video, matrix *Matrix, slot int) (int, error) {
	src, err := b.open(vid.Path)
	if err != nil {
		return 0, fmt.Errorf("error opening video %s: %w", vid.Key, err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	frames, clips, err := sampler.Sample(src, b.cfg.Frequency)
	if err != nil {
		return 0, fmt.Errorf("error sampling video %s: %w", vid.Key, err)
	}
	if len(frames) > b.cfg.MaxFrames {
		return 0, &CapacityError{Video: vid.Key, Frames: len(frames), MaxFrames: b.cfg.MaxFrames}
	}
	b.log.Debugf("Sampled %d frames and %d clips from %s", len(frames), len(clips), vid.Key)

	batch := frame.NewBatch(len(frames), b.cfg.Dims.Height, b.cfg.Dims.Width)
	for j, f := range frames {
		hwc, err := frame.Preprocess(f, b.cfg.Dims)
		if err != nil {
			return 0, fmt.Errorf("error preprocessing frame %d of %s: %w", j, vid.Key, err)
		}
		if err := batch.SetFrame(j, hwc); err != nil {
			return 0, err
		}
	}

	vectors, err := b.enc.Forward(batch)
	if err != nil {
		return 0, fmt.Errorf("error encoding video %s: %w", vid.Key, err)
	}
	if len(vectors) != len(frames) {
		return 0, fmt.Errorf("encoder returned %d vectors for %d frames of %s", len(vectors), len(frames), vid.Key)
	}
	for j, vec := range vectors {
		if len(vec) != matrix.FeatureDim {
			return 0, fmt.Errorf("encoder returned a %d-dim vector, expected %d", len(vec), matrix.FeatureDim)
		}
		copy(matrix.Row(slot, j), vec)
	}
	return len(frames), nil
}

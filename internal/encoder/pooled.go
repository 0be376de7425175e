package encoder

import (
	"fmt"
	"sort"

	"github.com/melody-ding/go-vidfeat/internal/frame"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const histogramBins = 8

// PooledStatsEncoder is a CPU reference encoder. Per channel it pools
// mean, standard deviation, min, max and an 8-bin histogram over the
// whole frame, giving a cheap deterministic embedding that lets the
// pipeline run end to end without an accelerator-backed network.
type PooledStatsEncoder struct{}

func NewPooledStatsEncoder() *PooledStatsEncoder {
	return &PooledStatsEncoder{}
}

// FeatureSize returns 3 channels * (4 moments + histogram bins)
func (e *PooledStatsEncoder) FeatureSize() int {
	return 3 * (4 + histogramBins)
}

// Forward pools each frame's channel planes into one feature vector
func (e *PooledStatsEncoder) Forward(batch *frame.Batch) ([][]float32, error) {
	if batch.C != 3 {
		return nil, fmt.Errorf("pooled encoder expects 3-channel batches, got %d", batch.C)
	}
	features := make([][]float32, batch.N)
	plane := batch.H * batch.W
	values := make([]float64, plane)
	for i := 0; i < batch.N; i++ {
		vec := make([]float32, 0, e.FeatureSize())
		chw := batch.Frame(i)
		for c := 0; c < 3; c++ {
			for p, v := range chw[c*plane : (c+1)*plane] {
				values[p] = float64(v)
			}
			vec = append(vec, poolChannel(values)...)
		}
		features[i] = vec
	}
	return features, nil
}

func poolChannel(values []float64) []float32 {
	mean, std := stat.MeanStdDev(values, nil)
	lo := floats.Min(values)
	hi := floats.Max(values)

	// Histogram over the channel's own range; a flat channel collapses
	// into the first bin. stat.Histogram requires sorted samples.
	counts := make([]float64, histogramBins)
	if hi > lo {
		dividers := make([]float64, histogramBins+1)
		floats.Span(dividers, lo, hi)
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		stat.Histogram(counts, dividers, sorted, nil)
	} else {
		counts[0] = float64(len(values))
	}

	out := make([]float32, 0, 4+histogramBins)
	out = append(out, float32(mean), float32(std), float32(lo), float32(hi))
	total := float64(len(values))
	for _, c := range counts {
		out = append(out, float32(c/total))
	}
	return out
}

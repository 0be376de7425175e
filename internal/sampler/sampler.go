package sampler

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/bmharper/ringbuffer"
	"github.com/melody-ding/go-vidfeat/internal/frame"
)

// MaxClipLen caps the clip window length regardless of sampling period
const MaxClipLen = 16

// Source yields a video's frames in decode order. Next returns io.EOF
// once the stream is exhausted.
type Source interface {
	FPS() float64
	Next() (frame.Frame, error)
}

// ShapeMismatchError reports a frame whose shape disagrees with the
// video's first frame
type ShapeMismatchError struct {
	Index    int
	Shape    string
	Expected string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape of frame %d (%s) does not match starting frame (%s)", e.Index, e.Shape, e.Expected)
}

// Period is the integer frame-index stride between sampled frames:
// round(fps / frequency). frequency must be in (0,1], which keeps the
// period at least round(fps) and therefore >= 1 for any sane stream.
func Period(fps, frequency float64) (int, error) {
	if frequency <= 0 || frequency > 1 {
		return 0, fmt.Errorf("frequency must be in (0,1], got %v", frequency)
	}
	if fps <= 0 {
		return 0, fmt.Errorf("frame rate must be positive, got %v", fps)
	}
	period := int(math.Round(fps / frequency))
	if period < 1 {
		period = 1
	}
	return period, nil
}

// ClipLen returns the clip window length for a sampling period
func ClipLen(period int) int {
	return min(2*period, MaxClipLen)
}

// Sample drains src in one pass, collecting the frames at indices
// 0, period, 2*period, ... and non-overlapping clips of ClipLen(period)
// consecutive frames ending at sampling boundaries.
//
// The clip window only starts emitting once the index has passed the
// first period; the full window sitting at index == period itself is
// deliberately skipped (warm-up), matching the historical behavior this
// pipeline's features were trained against.
func Sample(src Source, frequency float64) (frames []frame.Frame, clips [][]frame.Frame, err error) {
	period, err := Period(src.FPS(), frequency)
	if err != nil {
		return nil, nil, err
	}
	clipLen := ClipLen(period)
	window := ringbuffer.NewRingP[frame.Frame](ringSize(clipLen))

	var first frame.Frame
	for i := 0; ; i++ {
		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading frame %d: %w", i, err)
		}
		if i == 0 {
			first = f
		}

		window.Add(f)
		if i%period == 0 {
			if !f.SameShape(first) {
				return nil, nil, &ShapeMismatchError{Index: i, Shape: f.ShapeString(), Expected: first.ShapeString()}
			}
			frames = append(frames, f)
		}
		if i > period && window.Len() >= clipLen && i%period == 0 {
			clips = append(clips, snapshotWindow(&window, clipLen))
			// Clear by reallocation so the emitted clip never aliases the live window
			window = ringbuffer.NewRingP[frame.Frame](ringSize(clipLen))
		}
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no frames decoded from source")
	}
	return frames, clips, nil
}

// ringSize returns the RingP size needed to retain at least clipLen
// frames: the constructor argument must be a power of two and the ring
// holds one less than that
func ringSize(clipLen int) int {
	size := 2
	for size-1 < clipLen {
		size <<= 1
	}
	return size
}

// snapshotWindow deep-copies the trailing clipLen frames of the window
func snapshotWindow(window *ringbuffer.RingP[frame.Frame], clipLen int) []frame.Frame {
	clip := make([]frame.Frame, 0, clipLen)
	for i := window.Len() - clipLen; i < window.Len(); i++ {
		clip = append(clip, window.Peek(i).Clone())
	}
	return clip
}

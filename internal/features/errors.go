package features

import "fmt"

// CapacityError reports a video whose sampled-frame count exceeds the
// configured matrix capacity
type CapacityError struct {
	Video     string
	Frames    int
	MaxFrames int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot fit video %s with %d frames given max frames %d", e.Video, e.Frames, e.MaxFrames)
}

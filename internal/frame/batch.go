package frame

import "fmt"

// Batch is a float32 tensor of shape (N, 3, H, W) holding preprocessed
// frames in the layout encoders consume
type Batch struct {
	N    int
	C    int
	H    int
	W    int
	Data []float32
}

// NewBatch allocates a zeroed batch for n frames of h*w RGB pixels
func NewBatch(n, h, w int) *Batch {
	return &Batch{
		N:    n,
		C:    3,
		H:    h,
		W:    w,
		Data: make([]float32, n*3*h*w),
	}
}

// SetFrame transposes one HWC frame tensor into CHW at batch index i
func (b *Batch) SetFrame(i int, hwc []float32) error {
	if i < 0 || i >= b.N {
		return fmt.Errorf("batch index %d out of range [0,%d)", i, b.N)
	}
	if len(hwc) != b.C*b.H*b.W {
		return fmt.Errorf("frame tensor has %d elements, batch expects %d", len(hwc), b.C*b.H*b.W)
	}
	plane := b.H * b.W
	dst := b.Data[i*b.C*plane : (i+1)*b.C*plane]
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			for c := 0; c < b.C; c++ {
				dst[c*plane+y*b.W+x] = hwc[(y*b.W+x)*b.C+c]
			}
		}
	}
	return nil
}

// Frame returns the CHW slice for batch index i
func (b *Batch) Frame(i int) []float32 {
	plane := b.C * b.H * b.W
	return b.Data[i*plane : (i+1)*plane]
}

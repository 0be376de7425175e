package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// Frame is one decoded video frame: interleaved row-major pixels with
// either 1 (grayscale) or 3 (RGB) channels.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// NewFrame wraps raw pixels as a Frame, validating the buffer size
func NewFrame(width, height, channels int, pixels []byte) (Frame, error) {
	if channels != 1 && channels != 3 {
		return Frame{}, fmt.Errorf("frame must have 1 or 3 channels, got %d", channels)
	}
	if len(pixels) != width*height*channels {
		return Frame{}, fmt.Errorf("pixel buffer is %d bytes, expected %d for %dx%dx%d",
			len(pixels), width*height*channels, width, height, channels)
	}
	return Frame{Width: width, Height: height, Channels: channels, Pixels: pixels}, nil
}

// SameShape reports whether two frames have identical dimensions and channel count
func (f Frame) SameShape(o Frame) bool {
	return f.Width == o.Width && f.Height == o.Height && f.Channels == o.Channels
}

// ShapeString returns the frame shape as "HxWxC"
func (f Frame) ShapeString() string {
	return fmt.Sprintf("%dx%dx%d", f.Height, f.Width, f.Channels)
}

// Clone returns a deep copy of the frame
func (f Frame) Clone() Frame {
	pixels := make([]byte, len(f.Pixels))
	copy(pixels, f.Pixels)
	return Frame{Width: f.Width, Height: f.Height, Channels: f.Channels, Pixels: pixels}
}

// RGB returns the frame as 3-channel RGB, tiling a grayscale frame's
// single channel across all three
func (f Frame) RGB() (Frame, error) {
	switch f.Channels {
	case 3:
		return f, nil
	case 1:
		pixels := make([]byte, f.Width*f.Height*3)
		for i, v := range f.Pixels {
			pixels[i*3] = v
			pixels[i*3+1] = v
			pixels[i*3+2] = v
		}
		return Frame{Width: f.Width, Height: f.Height, Channels: 3, Pixels: pixels}, nil
	default:
		return Frame{}, fmt.Errorf("cannot convert %d-channel frame to RGB", f.Channels)
	}
}

// Dimensions is a target resolution for resized frames
type Dimensions struct {
	Width  int
	Height int
}

// ParseDimensions parses a size string like "224x224"
func ParseDimensions(size string) (Dimensions, error) {
	parts := strings.Split(size, "x")
	if len(parts) != 2 {
		return Dimensions{}, fmt.Errorf("invalid size format: %s", size)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return Dimensions{}, fmt.Errorf("invalid width: %s", parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return Dimensions{}, fmt.Errorf("invalid height: %s", parts[1])
	}
	if width <= 0 || height <= 0 {
		return Dimensions{}, fmt.Errorf("dimensions must be positive, got %dx%d", width, height)
	}
	return Dimensions{Width: width, Height: height}, nil
}
